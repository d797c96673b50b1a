package themedimg

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	xlog "github.com/alnah/go-themedimg/internal/log"
	"github.com/alnah/go-themedimg/internal/pipeline"
	"github.com/alnah/go-themedimg/internal/yamlutil"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
)

// Document is a Markdown source to render into a standalone page.
type Document struct {
	// Markdown content, optionally starting with a YAML front matter block
	// declaring title and lang.
	Markdown string

	// Path of the produced page relative to the output root, slash
	// separated (e.g. "guides/setup.html"). Used to rebase relative asset
	// URLs; may be empty for pages at the root.
	Path string
}

// Page is a rendered HTML document.
type Page struct {
	Title string
	HTML  []byte
}

// frontMatter holds the keys read from a document's front matter.
// Unknown keys are ignored.
type frontMatter struct {
	Title string `yaml:"title"`
	Lang  string `yaml:"lang"`
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	highlightStyle string
	stylesheet     bool
	extraCSS       string
	logger         zerolog.Logger
}

// WithHighlightStyle sets the Chroma style for fenced code blocks.
func WithHighlightStyle(style string) RendererOption {
	return func(c *rendererConfig) {
		c.highlightStyle = style
	}
}

// WithStylesheet controls whether the class set stylesheet is embedded in
// every page. Enabled by default; ignored for external class sets.
func WithStylesheet(enabled bool) RendererOption {
	return func(c *rendererConfig) {
		c.stylesheet = enabled
	}
}

// WithExtraCSS appends css to the embedded stylesheet.
func WithExtraCSS(css string) RendererOption {
	return func(c *rendererConfig) {
		c.extraCSS = css
	}
}

// WithRendererLogger sets the logger for render events.
func WithRendererLogger(l zerolog.Logger) RendererOption {
	return func(c *rendererConfig) {
		c.logger = l
	}
}

// Renderer converts Markdown documents to HTML pages, resolving every
// ThemedImage component through a Resolver.
// A Renderer is safe for concurrent use.
type Renderer struct {
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	css           string
	logger        zerolog.Logger
}

// NewRenderer creates a Renderer backed by resolver.
// Returns ErrUnknownHighlightStyle if the configured style does not exist.
func NewRenderer(resolver *Resolver, opts ...RendererOption) (*Renderer, error) {
	if resolver == nil {
		return nil, ErrNilResolver
	}

	cfg := rendererConfig{
		highlightStyle: pipeline.DefaultHighlightStyle,
		stylesheet:     true,
		logger:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	highlightCSS, err := pipeline.HighlightCSS(cfg.highlightStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, cfg.highlightStyle)
	}

	var css strings.Builder
	if cfg.stylesheet {
		css.WriteString(resolver.Classes().Stylesheet())
	}
	css.WriteString(highlightCSS)
	css.WriteString(cfg.extraCSS)

	return &Renderer{
		htmlConverter: pipeline.NewGoldmarkConverter(
			pipeline.WithExtensions(NewExtension(resolver)),
		),
		cssInjector: &pipeline.CSSInjection{},
		css:         css.String(),
		logger:      cfg.logger,
	}, nil
}

// Render converts doc to a standalone HTML page.
// A missing asset fails the whole page: the error wraps ErrHTMLConversion
// and the *MissingAssetError (use errors.As to inspect it).
func (r *Renderer) Render(ctx context.Context, doc Document) (*Page, error) {
	start := time.Now()

	if strings.TrimSpace(doc.Markdown) == "" {
		return nil, ErrEmptyDocument
	}

	fm, body, err := splitDocument(doc.Markdown)
	if err != nil {
		return nil, err
	}

	fragment, err := r.htmlConverter.ToHTML(ctx, body)
	if err != nil {
		return nil, err
	}

	htmlContent, err := pipeline.WrapPage(pipeline.PageData{
		Title: fm.Title,
		Lang:  fm.Lang,
		Body:  fragment,
	})
	if err != nil {
		return nil, err
	}

	htmlContent = r.cssInjector.InjectCSS(ctx, htmlContent, r.css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent, err = pipeline.RebaseAssetURLs(htmlContent, doc.Path)
	if err != nil {
		return nil, fmt.Errorf("rebasing asset URLs: %w", err)
	}

	title := fm.Title
	if title == "" {
		title = pipeline.DefaultTitle
	}

	r.logger.Debug().
		Str(xlog.FieldPath, doc.Path).
		Dur(xlog.FieldDuration, time.Since(start)).
		Msg("document rendered")

	return &Page{Title: title, HTML: []byte(htmlContent)}, nil
}

// splitDocument extracts front matter and returns the body with the front
// matter lines blanked, so reported line numbers match the source file.
func splitDocument(markdown string) (frontMatter, string, error) {
	var fm frontMatter

	raw, body, err := yamlutil.SplitFrontMatter([]byte(markdown))
	if err != nil {
		return fm, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	if len(raw) > 0 {
		if err := yamlutil.Unmarshal(raw, &fm); err != nil {
			return fm, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
		}
	}

	consumed := len(markdown) - len(body)
	if consumed == 0 {
		return fm, markdown, nil
	}
	padding := strings.Repeat("\n", strings.Count(markdown[:consumed], "\n"))
	return fm, padding + string(body), nil
}
