package themedimg

import (
	"time"

	"github.com/rs/zerolog"

	xlog "github.com/alnah/go-themedimg/internal/log"
)

// Resolver turns a pair of catalog identifiers into a themed Fragment.
// A Resolver is safe for concurrent use when its Catalog is.
type Resolver struct {
	catalog Catalog
	classes ClassSet
	logger  zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClasses sets the class pair conditioning visibility.
// Defaults to DefaultClasses.
func WithClasses(c ClassSet) Option {
	return func(r *Resolver) {
		r.classes = c
	}
}

// WithLogger sets the logger for resolution events.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a Resolver reading from catalog.
// Returns ErrNilCatalog without a catalog and ErrInvalidClassSet if the
// configured classes are unusable.
func NewResolver(catalog Catalog, opts ...Option) (*Resolver, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}

	r := &Resolver{
		catalog: catalog,
		classes: DefaultClasses,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.classes.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Classes returns the class pair used for emitted elements.
func (r *Resolver) Classes() ClassSet {
	return r.classes
}

// Catalog returns the catalog the resolver reads from.
func (r *Resolver) Catalog() Catalog {
	return r.catalog
}

// Resolve looks up lightID then darkID and returns the two-element fragment.
// An identifier absent from the catalog yields a *MissingAssetError naming
// it; lightID is checked first. The same identifier may be used for both
// variants and altText may be empty.
func (r *Resolver) Resolve(lightID, darkID, altText string) (*Fragment, error) {
	start := time.Now()

	if !r.catalog.Has(lightID) {
		return nil, r.missing(lightID)
	}
	if !r.catalog.Has(darkID) {
		return nil, r.missing(darkID)
	}

	light, err := r.catalog.Materialize(lightID)
	if err != nil {
		return nil, err
	}
	dark, err := r.catalog.Materialize(darkID)
	if err != nil {
		return nil, err
	}

	f := &Fragment{Elements: [2]Element{
		{
			Variant:    VariantLight,
			Source:     light,
			Alt:        altText,
			Visibility: Visibility{Light: true, Dark: false},
			Class:      r.classes.Light,
		},
		{
			Variant:    VariantDark,
			Source:     dark,
			Alt:        altText,
			Visibility: Visibility{Light: false, Dark: true},
			Class:      r.classes.Dark,
		},
	}}

	r.logger.Debug().
		Str(xlog.FieldLightID, lightID).
		Str(xlog.FieldDarkID, darkID).
		Dur(xlog.FieldDuration, time.Since(start)).
		Msg("themed image resolved")

	return f, nil
}

func (r *Resolver) missing(id string) error {
	err := &MissingAssetError{ID: id, SearchPattern: r.catalog.Pattern()}
	r.logger.Debug().Str(xlog.FieldAssetID, id).Msg("asset not in catalog")
	return err
}
