package themedimg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"testing/fstest"
)

// pngBytes returns a w x h PNG filled with c.
func pngBytes(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

const flowSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="300" height="200"></svg>`

// logoFS is the catalog used by most tests: a light/dark logo pair and
// an SVG diagram.
func logoFS(t testing.TB) fstest.MapFS {
	t.Helper()

	return fstest.MapFS{
		"logo-light.png":    {Data: pngBytes(t, 120, 40, color.White)},
		"logo-dark.png":     {Data: pngBytes(t, 120, 40, color.Black)},
		"diagrams/flow.svg": {Data: []byte(flowSVG)},
	}
}

// newLogoCatalog builds a Catalog over logoFS labelled "src/assets".
func newLogoCatalog(t testing.TB, opts ...CatalogOption) Catalog {
	t.Helper()

	all := append([]CatalogOption{WithPatternLabel("src/assets")}, opts...)
	cat, err := NewCatalogFS(logoFS(t), all...)
	if err != nil {
		t.Fatalf("NewCatalogFS() error = %v", err)
	}
	return cat
}

// fakeCatalog is an in-memory Catalog recording Materialize calls.
type fakeCatalog struct {
	assets  map[string]ImageDescriptor
	failing map[string]error
	pattern string

	mu    sync.Mutex
	calls map[string]int
}

func newFakeCatalog(ids ...string) *fakeCatalog {
	f := &fakeCatalog{
		assets:  make(map[string]ImageDescriptor, len(ids)),
		failing: make(map[string]error),
		pattern: "fake/**/*.png",
		calls:   make(map[string]int),
	}
	for _, id := range ids {
		f.assets[id] = ImageDescriptor{ID: id, Width: 10, Height: 10, Format: "png", Src: "/_assets/" + id}
	}
	return f
}

func (f *fakeCatalog) Has(id string) bool {
	_, ok := f.assets[id]
	return ok
}

func (f *fakeCatalog) Materialize(id string) (ImageDescriptor, error) {
	f.mu.Lock()
	f.calls[id]++
	f.mu.Unlock()

	if err, ok := f.failing[id]; ok {
		return ImageDescriptor{}, err
	}
	d, ok := f.assets[id]
	if !ok {
		return ImageDescriptor{}, &MissingAssetError{ID: id, SearchPattern: f.pattern}
	}
	return d, nil
}

func (f *fakeCatalog) Pattern() string { return f.pattern }

func (f *fakeCatalog) IDs() []string {
	ids := make([]string, 0, len(f.assets))
	for id := range f.assets {
		ids = append(ids, id)
	}
	return ids
}

func (f *fakeCatalog) materializeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

var _ Catalog = (*fakeCatalog)(nil)
