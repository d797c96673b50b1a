package themedimg

import (
	"errors"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/alnah/go-themedimg/internal/catalog"
)

// Catalog defaults.
const (
	// DefaultCatalogDir is the directory scanned when none is configured.
	DefaultCatalogDir = catalog.DefaultDir

	// DefaultBasePath prefixes the public URL of every emitted asset.
	DefaultBasePath = catalog.DefaultBasePath
)

// DefaultExtensions returns the image extensions recognized by default.
func DefaultExtensions() []string {
	out := make([]string, len(catalog.DefaultExtensions))
	copy(out, catalog.DefaultExtensions)
	return out
}

// ImageDescriptor describes a materialized image asset.
type ImageDescriptor struct {
	ID         string // logical path in the catalog, e.g. "diagrams/flow.svg"
	Width      int    // intrinsic width in pixels, 0 if unknown
	Height     int    // intrinsic height in pixels, 0 if unknown
	Format     string // "png", "jpeg", "gif", "webp" or "svg"
	Hash       string // content hash embedded in OutputPath
	OutputPath string // content-addressed path relative to the output directory
	Src        string // public URL of the emitted file
}

// Catalog defines the read-only mapping from logical image paths to
// processed assets. A Catalog must not change after construction and must
// be safe for concurrent use.
//
// The library provides NewCatalog() for directory-based catalogs.
// Implement this interface for custom backends (embedded files, tests).
type Catalog interface {
	// Has reports whether id is a catalog key.
	Has(id string) bool

	// Materialize processes the asset on first use and returns its
	// descriptor. Repeated calls return the same descriptor.
	Materialize(id string) (ImageDescriptor, error)

	// Pattern describes the directory and extension set that was scanned.
	Pattern() string

	// IDs returns every key in sorted order.
	IDs() []string
}

// CatalogOption configures a catalog built by NewCatalog or NewCatalogFS.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	extensions    *[]string
	basePath      *string
	outputDir     string
	recompressPNG bool
	logger        *zerolog.Logger
	label         string
}

// WithExtensions replaces the recognized image extensions. An empty set
// is rejected with ErrInvalidExtension.
func WithExtensions(exts ...string) CatalogOption {
	return func(c *catalogConfig) {
		c.extensions = &exts
	}
}

// WithBasePath sets the URL prefix of emitted assets. An empty base path
// produces sources relative to the output directory.
func WithBasePath(p string) CatalogOption {
	return func(c *catalogConfig) {
		c.basePath = &p
	}
}

// WithOutputDir writes processed assets below dir. Without it, assets are
// only probed and hashed.
func WithOutputDir(dir string) CatalogOption {
	return func(c *catalogConfig) {
		c.outputDir = dir
	}
}

// WithPNGRecompression enables lossless PNG recompression before hashing.
func WithPNGRecompression(enabled bool) CatalogOption {
	return func(c *catalogConfig) {
		c.recompressPNG = enabled
	}
}

// WithCatalogLogger sets the logger for scan and materialization events.
func WithCatalogLogger(l zerolog.Logger) CatalogOption {
	return func(c *catalogConfig) {
		c.logger = &l
	}
}

// WithPatternLabel sets the directory name reported in MissingAssetError
// for catalogs built with NewCatalogFS.
func WithPatternLabel(label string) CatalogOption {
	return func(c *catalogConfig) {
		c.label = label
	}
}

func (c *catalogConfig) internalOptions() []catalog.Option {
	var opts []catalog.Option
	if c.label != "" {
		opts = append(opts, catalog.WithLabel(c.label))
	}
	if c.extensions != nil {
		opts = append(opts, catalog.WithExtensions(*c.extensions...))
	}
	if c.basePath != nil {
		opts = append(opts, catalog.WithBasePath(*c.basePath))
	}
	if c.outputDir != "" {
		opts = append(opts, catalog.WithEmitter(catalog.NewDirEmitter(c.outputDir)))
	}
	if c.recompressPNG {
		opts = append(opts, catalog.WithPNGRecompression(true))
	}
	if c.logger != nil {
		opts = append(opts, catalog.WithLogger(*c.logger))
	}
	return opts
}

// NewCatalog scans dir on disk and returns the frozen catalog.
// If dir is empty, DefaultCatalogDir is used.
//
// Returns ErrInvalidCatalogDir if dir is not a readable directory and
// ErrInvalidExtension if an extension option is unusable.
func NewCatalog(dir string, opts ...CatalogOption) (Catalog, error) {
	if dir == "" {
		dir = DefaultCatalogDir
	}

	var cfg catalogConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	c, err := catalog.NewFromDir(dir, cfg.internalOptions()...)
	if err != nil {
		return nil, convertCatalogError(err)
	}
	return &catalogAdapter{c: c}, nil
}

// NewCatalogFS scans fsys and returns the frozen catalog.
// Ids are paths relative to the root of fsys.
func NewCatalogFS(fsys fs.FS, opts ...CatalogOption) (Catalog, error) {
	var cfg catalogConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	c, err := catalog.New(fsys, cfg.internalOptions()...)
	if err != nil {
		return nil, convertCatalogError(err)
	}
	return &catalogAdapter{c: c}, nil
}

// catalogAdapter wraps the internal catalog to return public types.
type catalogAdapter struct {
	c *catalog.Catalog
}

func (a *catalogAdapter) Has(id string) bool {
	return a.c.Has(id)
}

func (a *catalogAdapter) Materialize(id string) (ImageDescriptor, error) {
	d, err := a.c.Materialize(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return ImageDescriptor{}, &MissingAssetError{ID: id, SearchPattern: a.c.Pattern()}
		}
		return ImageDescriptor{}, convertCatalogError(err)
	}
	return ImageDescriptor(d), nil
}

func (a *catalogAdapter) Pattern() string {
	return a.c.Pattern()
}

func (a *catalogAdapter) IDs() []string {
	return a.c.IDs()
}

// convertCatalogError maps internal catalog errors to public errors.
func convertCatalogError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, catalog.ErrInvalidRoot):
		return wrapError(ErrInvalidCatalogDir, err)
	case errors.Is(err, catalog.ErrScan):
		return wrapError(ErrInvalidCatalogDir, err)
	case errors.Is(err, catalog.ErrInvalidExtension):
		return wrapError(ErrInvalidExtension, err)
	case errors.Is(err, catalog.ErrAssetRead):
		return wrapError(ErrAssetDecode, err)
	case errors.Is(err, catalog.ErrDecode):
		return wrapError(ErrAssetDecode, err)
	case errors.Is(err, catalog.ErrEmit):
		return wrapError(ErrAssetEmit, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedCatalogError{sentinel: sentinel, original: original}
}

type wrappedCatalogError struct {
	sentinel error
	original error
}

func (e *wrappedCatalogError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedCatalogError) Unwrap() error {
	return e.sentinel
}
