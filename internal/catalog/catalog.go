package catalog

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	xlog "github.com/alnah/go-themedimg/internal/log"
)

// DefaultDir is the catalog root used when none is configured.
const DefaultDir = "src/assets"

// DefaultBasePath prefixes the public URL of every emitted asset.
const DefaultBasePath = "/_assets"

// hashLength is the number of hex characters of the content hash kept in
// output names.
const hashLength = 8

// DefaultExtensions lists the image extensions picked up by a scan.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// Descriptor describes a materialized image.
type Descriptor struct {
	ID         string // logical path in the catalog
	Width      int    // intrinsic width in pixels (0 if unknown, e.g. unitless SVG)
	Height     int    // intrinsic height in pixels
	Format     string // "png", "jpeg", "gif", "webp", "svg"
	Hash       string // content hash of the emitted bytes
	OutputPath string // content-addressed path relative to the output directory
	Src        string // public URL of the emitted file
}

// Emitter receives processed asset bytes under their content-addressed name.
// Implementations must be safe for concurrent use.
type Emitter interface {
	Emit(name string, data []byte) error
}

// Option configures a Catalog.
type Option func(*options)

type options struct {
	label         string
	extensions    []string
	basePath      string
	emitter       Emitter
	recompressPNG bool
	logger        zerolog.Logger
	contain       func(id string) error
}

// WithExtensions replaces the extension set (".png" or "png" both accepted).
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = exts
	}
}

// WithBasePath sets the URL prefix of emitted assets. An empty base path
// yields relative URLs.
func WithBasePath(p string) Option {
	return func(o *options) {
		o.basePath = p
	}
}

// WithEmitter sets where processed bytes are written. Without an emitter,
// materialization only computes descriptors.
func WithEmitter(e Emitter) Option {
	return func(o *options) {
		o.emitter = e
	}
}

// WithPNGRecompression enables lossless PNG recompression.
func WithPNGRecompression(enabled bool) Option {
	return func(o *options) {
		o.recompressPNG = enabled
	}
}

// WithLogger sets the logger for scan and materialization events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithLabel sets the directory name reported in the search pattern.
func WithLabel(dir string) Option {
	return func(o *options) {
		o.label = dir
	}
}

// withContainment installs a check run on symlinked entries at scan time.
func withContainment(check func(id string) error) Option {
	return func(o *options) {
		o.contain = check
	}
}

// Catalog maps logical image paths to memoized loaders.
// A Catalog is immutable once New returns and is safe for concurrent use.
type Catalog struct {
	fsys    fs.FS
	opts    options
	entries map[string]*entry
	ids     []string
	pattern string
}

type entry struct {
	load func() (Descriptor, error)
}

// New scans fsys and returns a frozen catalog of every file whose extension
// is in the configured set.
func New(fsys fs.FS, opts ...Option) (*Catalog, error) {
	o := options{
		label:      ".",
		extensions: DefaultExtensions,
		basePath:   DefaultBasePath,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	exts, err := normalizeExtensions(o.extensions)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		fsys:    fsys,
		opts:    o,
		entries: make(map[string]*entry),
		pattern: buildPattern(o.label, exts),
	}

	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrScan, err)
		}
		if d.IsDir() || !exts[strings.ToLower(path.Ext(p))] {
			return nil
		}

		mode := d.Type()
		if mode&fs.ModeSymlink != 0 {
			if o.contain != nil {
				if err := o.contain(p); err != nil {
					o.logger.Warn().Err(err).Str(xlog.FieldAssetID, p).Msg("skipping symlinked asset")
					return nil
				}
			}
		} else if !mode.IsRegular() {
			return nil
		}

		c.add(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(c.ids)
	o.logger.Debug().Int(xlog.FieldCount, c.Len()).Str(xlog.FieldPath, c.pattern).Msg("catalog scanned")

	return c, nil
}

// add registers id with a loader that runs at most once.
func (c *Catalog) add(id string) {
	c.entries[id] = &entry{
		load: sync.OnceValues(func() (Descriptor, error) {
			return c.materialize(id)
		}),
	}
	c.ids = append(c.ids, id)
}

// Has reports whether id is a catalog key.
func (c *Catalog) Has(id string) bool {
	_, ok := c.entries[id]
	return ok
}

// IDs returns the sorted catalog keys.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Pattern describes where the catalog looked, e.g.
// "src/assets/**/*.{gif,jpeg,jpg,png,svg,webp}".
func (c *Catalog) Pattern() string {
	return c.pattern
}

// Materialize returns the descriptor for id, processing the asset on first
// use. Returns ErrNotFound if id is not a catalog key.
func (c *Catalog) Materialize(id string) (Descriptor, error) {
	if err := ValidateID(id); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	e, ok := c.entries[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e.load()
}

// materialize does the actual work behind an entry's loader.
func (c *Catalog) materialize(id string) (Descriptor, error) {
	data, err := fs.ReadFile(c.fsys, id)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %q: %v", ErrAssetRead, id, err)
	}

	format, width, height, err := probe(id, data)
	if err != nil {
		return Descriptor{}, err
	}

	if format == formatPNG && c.opts.recompressPNG {
		data = recompressPNG(data)
	}

	hash := fmt.Sprintf("%016x", xxhash.Sum64(data))[:hashLength]
	out := hashedName(id, hash)

	if c.opts.emitter != nil {
		if err := c.opts.emitter.Emit(out, data); err != nil {
			return Descriptor{}, fmt.Errorf("%w: %q: %v", ErrEmit, id, err)
		}
	}

	d := Descriptor{
		ID:         id,
		Width:      width,
		Height:     height,
		Format:     format,
		Hash:       hash,
		OutputPath: out,
		Src:        joinURL(c.opts.basePath, out),
	}

	c.opts.logger.Debug().
		Str(xlog.FieldAssetID, id).
		Str(xlog.FieldFormat, format).
		Int(xlog.FieldWidth, width).
		Int(xlog.FieldHeight, height).
		Str(xlog.FieldHash, hash).
		Str(xlog.FieldOutputPath, out).
		Msg("asset materialized")

	return d, nil
}

// hashedName inserts hash before the extension: "a/logo.png" -> "a/logo.<hash>.png".
func hashedName(id, hash string) string {
	ext := path.Ext(id)
	return strings.TrimSuffix(id, ext) + "." + hash + ext
}

// joinURL prefixes out with base, avoiding duplicate slashes.
func joinURL(base, out string) string {
	if base == "" {
		return out
	}
	return strings.TrimRight(base, "/") + "/" + out
}

// buildPattern renders the search pattern reported in not-found errors.
func buildPattern(label string, exts map[string]bool) string {
	names := make([]string, 0, len(exts))
	for ext := range exts {
		names = append(names, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(names)

	dir := strings.TrimRight(label, "/")
	if dir == "" {
		dir = "."
	}
	if len(names) == 1 {
		return dir + "/**/*." + names[0]
	}
	return dir + "/**/*.{" + strings.Join(names, ",") + "}"
}
