package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		markdown     string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "heading gets id",
			markdown:     "# Getting Started",
			wantContains: []string{`<h1 id="getting-started">Getting Started</h1>`},
		},
		{
			name:         "GFM table",
			markdown:     "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "fenced code highlighted with classes",
			markdown:     "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`},
			wantExcludes: []string{"style=\"color"},
		},
		{
			name:         "raw HTML omitted",
			markdown:     "<script>alert(1)</script>",
			wantContains: []string{"raw HTML omitted"},
			wantExcludes: []string{"<script>"},
		},
		{
			name:         "output is a fragment",
			markdown:     "text",
			wantExcludes: []string{"<html", "<body"},
		},
	}

	conv := NewGoldmarkConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.markdown)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

var errFromExtension = errors.New("extension failed")

// failingExtension appends a node that failingRenderer refuses to render.
type failingExtension struct{}

func (failingExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(util.Prioritized(failingTransformer{}, 100)))
}

type failingTransformer struct{}

func (failingTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	doc.AppendChild(doc, newFailingNode())
}

var kindFailing = ast.NewNodeKind("Failing")

type failingNode struct{ ast.BaseBlock }

func newFailingNode() *failingNode { return &failingNode{} }

func (n *failingNode) Kind() ast.NodeKind { return kindFailing }

func (n *failingNode) Dump(source []byte, level int) { ast.DumpHelper(n, source, level, nil, nil) }

// failingRendererExtension renders failingNode by returning errFromExtension.
type failingRendererExtension struct{}

func (failingRendererExtension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(failingRenderer{}, 100)))
}

type failingRenderer struct{}

func (failingRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindFailing, func(util.BufWriter, []byte, ast.Node, bool) (ast.WalkStatus, error) {
		return ast.WalkStop, errFromExtension
	})
}

func TestGoldmarkConverter_ExtensionErrorPropagates(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter(WithExtensions(failingExtension{}, failingRendererExtension{}))

	_, err := conv.ToHTML(context.Background(), "text")
	if !errors.Is(err, ErrHTMLConversion) {
		t.Errorf("ToHTML() error = %v, want ErrHTMLConversion", err)
	}
	if !errors.Is(err, errFromExtension) {
		t.Errorf("ToHTML() error = %v, want wrapped extension error", err)
	}
}

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	t.Run("known style", func(t *testing.T) {
		t.Parallel()

		css, err := HighlightCSS("monokai")
		if err != nil {
			t.Fatalf("HighlightCSS() error = %v", err)
		}
		if !strings.Contains(css, ".chroma") {
			t.Errorf("HighlightCSS() = %q, want .chroma rules", css)
		}
	})

	t.Run("empty uses default", func(t *testing.T) {
		t.Parallel()

		if _, err := HighlightCSS(""); err != nil {
			t.Errorf("HighlightCSS(\"\") error = %v", err)
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		if _, err := HighlightCSS("no-such-style"); !errors.Is(err, ErrUnknownStyle) {
			t.Errorf("HighlightCSS() error = %v, want ErrUnknownStyle", err)
		}
	})
}
