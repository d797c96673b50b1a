package themedimg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// ComponentName is the tag recognized in Markdown documents.
const ComponentName = "ThemedImage"

// Component attributes.
const (
	attrLight = "light"
	attrDark  = "dark"
	attrAlt   = "alt"
)

// Goldmark priorities: the block parser runs before the built-in HTML
// block parser (900) so the component never degrades to raw HTML.
const (
	blockParserPriority = 850
	rendererPriority    = 100
)

// KindThemedImage is the goldmark node kind of a ThemedImage block.
var KindThemedImage = ast.NewNodeKind(ComponentName)

// ThemedImage is the AST node for a <ThemedImage light=".." dark=".." alt=".." />
// block. Its lines hold the raw tag source.
type ThemedImage struct {
	ast.BaseBlock
	Light string
	Dark  string
	Alt   string

	err error // attribute parsing failure, reported at render time
}

// Kind implements ast.Node.
func (n *ThemedImage) Kind() ast.NodeKind { return KindThemedImage }

// IsRaw implements ast.Node. The tag is never parsed as inline Markdown.
func (n *ThemedImage) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *ThemedImage) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Light": n.Light,
		"Dark":  n.Dark,
		"Alt":   n.Alt,
	}, nil)
}

// Extension plugs the themed image component into goldmark.
//
//	md := goldmark.New(goldmark.WithExtensions(themedimg.NewExtension(resolver)))
//
// The tag must start a line and may span several lines up to the next blank
// line. Attribute values are plain strings. A missing asset
// makes goldmark's Convert fail with the *MissingAssetError.
type Extension struct {
	resolver *Resolver
}

// NewExtension returns a goldmark extension resolving components with r.
func NewExtension(r *Resolver) *Extension {
	return &Extension{resolver: r}
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&themedImageParser{}, blockParserPriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&themedImageRenderer{resolver: e.resolver}, rendererPriority),
	))
}

// themedImageParser collects the lines of a ThemedImage tag.
type themedImageParser struct{}

// tagState tracks an open tag across lines.
type tagState struct {
	quote  byte // current attribute quote, 0 outside quotes
	closed bool
}

var tagStateKey = parser.NewContextKey()

func (p *themedImageParser) Trigger() []byte {
	return []byte{'<'}
}

func (p *themedImageParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !isComponentStart(line[pos:]) {
		return nil, parser.NoChildren
	}

	node := &ThemedImage{}
	state := &tagState{}
	state.scan(line[pos:])
	pc.Set(tagStateKey, state)

	node.Lines().Append(segment.WithStart(segment.Start + pos))
	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (p *themedImageParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	state, _ := pc.Get(tagStateKey).(*tagState)
	if state == nil || state.closed {
		return parser.Close
	}

	// A blank line ends an unterminated tag; Close reports it.
	line, segment := reader.PeekLine()
	if line == nil || util.IsBlank(line) {
		return parser.Close
	}
	state.scan(line)
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	if state.closed {
		return parser.Close
	}
	return parser.Continue | parser.NoChildren
}

func (p *themedImageParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	pc.Set(tagStateKey, nil)

	n := node.(*ThemedImage)
	var raw bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		raw.Write(seg.Value(reader.Source()))
	}
	n.err = parseComponent(raw.Bytes(), n)
}

func (p *themedImageParser) CanInterruptParagraph() bool {
	return true
}

func (p *themedImageParser) CanAcceptIndentedLine() bool {
	return false
}

// isComponentStart reports whether line opens a ThemedImage tag.
func isComponentStart(line []byte) bool {
	rest, ok := bytes.CutPrefix(line, []byte("<"+ComponentName))
	if !ok {
		return false
	}
	if len(rest) == 0 {
		return true
	}
	switch rest[0] {
	case ' ', '\t', '\r', '\n', '/', '>':
		return true
	}
	return false
}

// scan advances the state over line, closing on the first '>' outside
// attribute quotes.
func (s *tagState) scan(line []byte) {
	for _, c := range line {
		if s.closed {
			return
		}
		switch {
		case s.quote != 0:
			if c == s.quote {
				s.quote = 0
			}
		case c == '"' || c == '\'':
			s.quote = c
		case c == '>':
			s.closed = true
		}
	}
}

// parseComponent reads the tag attributes into n.
func parseComponent(raw []byte, n *ThemedImage) error {
	z := html.NewTokenizer(bytes.NewReader(raw))

	tt := z.Next()
	if tt != html.SelfClosingTagToken && tt != html.StartTagToken {
		return fmt.Errorf("%w: unterminated <%s> tag", ErrInvalidComponent, ComponentName)
	}

	seen := make(map[string]bool, 3)
	var unknown []string
	for {
		key, val, more := z.TagAttr()
		k := string(key)
		switch k {
		case attrLight:
			n.Light = string(val)
		case attrDark:
			n.Dark = string(val)
		case attrAlt:
			n.Alt = string(val)
		case "":
		default:
			unknown = append(unknown, k)
		}
		seen[k] = true
		if !more {
			break
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown attribute(s) %s (allowed: light, dark, alt)",
			ErrInvalidComponent, strings.Join(unknown, ", "))
	}
	for _, required := range []string{attrLight, attrDark} {
		if !seen[required] {
			return fmt.Errorf("%w: missing %q attribute", ErrInvalidComponent, required)
		}
	}

	// Only whitespace may follow the tag.
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: %v", ErrInvalidComponent, z.Err())
		case html.TextToken:
			if len(bytes.TrimSpace(z.Text())) == 0 {
				continue
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); strings.EqualFold(string(name), ComponentName) {
				continue
			}
		}
		return fmt.Errorf("%w: unexpected content after <%s>", ErrInvalidComponent, ComponentName)
	}
}

// themedImageRenderer renders ThemedImage nodes through a Resolver.
type themedImageRenderer struct {
	resolver *Resolver
}

func (r *themedImageRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindThemedImage, r.render)
}

func (r *themedImageRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ThemedImage)
	if n.err != nil {
		return ast.WalkStop, fmt.Errorf("line %d: %w", lineOf(source, n), n.err)
	}

	f, err := r.resolver.Resolve(n.Light, n.Dark, n.Alt)
	if err != nil {
		return ast.WalkStop, fmt.Errorf("line %d: %w", lineOf(source, n), err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return ast.WalkStop, err
	}
	if err := w.WriteByte('\n'); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

// lineOf returns the 1-based source line where n starts.
func lineOf(source []byte, n ast.Node) int {
	if n.Lines().Len() == 0 {
		return 0
	}
	start := n.Lines().At(0).Start
	return bytes.Count(source[:start], []byte{'\n'}) + 1
}
