package themedimg

import (
	"html/template"
	"io"
	"strings"
)

// Variant names the color scheme an element is meant for.
type Variant string

// Variants, in emission order.
const (
	VariantLight Variant = "light"
	VariantDark  Variant = "dark"
)

// Visibility records under which color-scheme condition an element is shown.
// The two elements of a Fragment always carry complementary values.
type Visibility struct {
	Light bool // shown under the default (light) condition
	Dark  bool // shown under prefers-color-scheme: dark
}

// Element is one rendered image of a themed pair.
type Element struct {
	Variant    Variant
	Source     ImageDescriptor
	Alt        string
	Visibility Visibility
	Class      string // class list conditioning the visibility
}

// Fragment is the markup produced for one themed image: the light element
// first, then the dark element.
type Fragment struct {
	Elements [2]Element
}

// Light returns the element shown under the light condition.
func (f *Fragment) Light() Element { return f.Elements[0] }

// Dark returns the element shown under the dark condition.
func (f *Fragment) Dark() Element { return f.Elements[1] }

var fragmentTemplate = template.Must(template.New("fragment").Parse(
	`{{range $i, $e := .}}{{if $i}}` + "\n" + `{{end}}<img src="{{$e.Source.Src}}"` +
		`{{with $e.Source.Width}} width="{{.}}"{{end}}` +
		`{{with $e.Source.Height}} height="{{.}}"{{end}}` +
		` alt="{{$e.Alt}}" class="{{$e.Class}}" decoding="async" loading="lazy"` +
		` data-theme-variant="{{$e.Variant}}">{{end}}`,
))

// WriteTo renders both img elements to w.
func (f *Fragment) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := fragmentTemplate.Execute(cw, f.Elements[:])
	return cw.n, err
}

// HTML renders both img elements as a string.
func (f *Fragment) HTML() (string, error) {
	var sb strings.Builder
	if _, err := f.WriteTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
