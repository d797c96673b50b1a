package main

import (
	"errors"
	"os"

	themedimg "github.com/alnah/go-themedimg"
	"github.com/alnah/go-themedimg/internal/browser"
	"github.com/alnah/go-themedimg/internal/config"
)

// Exit codes for the themedimg CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitAsset   = 5 // A referenced image is not in the catalog
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Authoring errors (exit 5)
	if errors.Is(err, themedimg.ErrMissingAsset) {
		return ExitAsset
	}

	// Browser errors (exit 4)
	if errors.Is(err, browser.ErrBrowserConnect) ||
		errors.Is(err, browser.ErrPageCreate) ||
		errors.Is(err, browser.ErrPageLoad) ||
		errors.Is(err, browser.ErrEmulation) ||
		errors.Is(err, browser.ErrInspect) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, themedimg.ErrInvalidCatalogDir) ||
		errors.Is(err, themedimg.ErrAssetDecode) ||
		errors.Is(err, themedimg.ErrAssetEmit) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, themedimg.ErrInvalidExtension) ||
		errors.Is(err, themedimg.ErrInvalidClassSet) ||
		errors.Is(err, themedimg.ErrInvalidComponent) ||
		errors.Is(err, themedimg.ErrEmptyDocument) ||
		errors.Is(err, themedimg.ErrFrontMatter) ||
		errors.Is(err, themedimg.ErrUnknownHighlightStyle) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidInputExtension) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
