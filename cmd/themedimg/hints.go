package main

import (
	"context"
	"errors"

	themedimg "github.com/alnah/go-themedimg"
	"github.com/alnah/go-themedimg/internal/browser"
	"github.com/alnah/go-themedimg/internal/config"
	"github.com/alnah/go-themedimg/internal/hints"
)

// catalogIDs is the part of a catalog used for suggestions.
type catalogIDs interface {
	IDs() []string
}

// hintFor returns an actionable hint for err, or "".
// cat, when non-nil, feeds did-you-mean suggestions for missing assets.
func hintFor(err error, cat catalogIDs) string {
	var missing *themedimg.MissingAssetError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &missing):
		if cat == nil {
			return ""
		}
		return hints.ForMissingAsset(missing.ID, cat.IDs())
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchedPaths(err))
	case errors.Is(err, themedimg.ErrInvalidCatalogDir):
		return hints.ForCatalogDir()
	case errors.Is(err, browser.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, browser.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, themedimg.ErrAssetEmit), errors.Is(err, ErrWritePage):
		return hints.ForOutputDirectory()
	}
	return ""
}
