package themedimg

import (
	"errors"
	"fmt"

	"github.com/alnah/go-themedimg/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrMissingAsset matches every *MissingAssetError via errors.Is.
	ErrMissingAsset = errors.New("missing asset")

	// Catalog construction errors.
	ErrInvalidCatalogDir = errors.New("invalid catalog directory")
	ErrInvalidExtension  = errors.New("invalid image extension")

	// Materialization errors. The file exists but could not be processed.
	ErrAssetDecode = errors.New("failed to decode asset")
	ErrAssetEmit   = errors.New("failed to emit asset")

	// Constructor errors.
	ErrNilCatalog      = errors.New("catalog cannot be nil")
	ErrNilResolver     = errors.New("resolver cannot be nil")
	ErrInvalidClassSet = errors.New("invalid class set")

	// Document rendering errors.
	ErrInvalidComponent      = errors.New("invalid ThemedImage component")
	ErrEmptyDocument         = errors.New("document content cannot be empty")
	ErrFrontMatter           = errors.New("invalid front matter")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")

	// ErrHTMLConversion wraps every Markdown conversion failure, including
	// component errors such as *MissingAssetError.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
)

// MissingAssetError reports an identifier that is not a key of the catalog.
// Resolution stops at the first missing identifier, light before dark.
type MissingAssetError struct {
	ID            string // identifier as given by the caller
	SearchPattern string // where the catalog looked, e.g. "src/assets/**/*.{png,svg}"
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("missing asset: %q not found in %s", e.ID, e.SearchPattern)
}

// Is reports whether target is ErrMissingAsset.
func (e *MissingAssetError) Is(target error) bool {
	return target == ErrMissingAsset
}
