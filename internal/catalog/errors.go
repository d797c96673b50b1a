package catalog

import "errors"

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates the requested id is not in the catalog.
	ErrNotFound = errors.New("asset not found")

	// ErrInvalidID indicates the id is empty or not a clean relative path.
	ErrInvalidID = errors.New("invalid asset id")

	// ErrInvalidRoot indicates the configured root is not a readable directory.
	ErrInvalidRoot = errors.New("invalid catalog root")

	// ErrInvalidExtension indicates a configured extension is unusable.
	ErrInvalidExtension = errors.New("invalid image extension")

	// ErrScan indicates the catalog root could not be walked.
	ErrScan = errors.New("failed to scan catalog root")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrDecode indicates the asset bytes are not a decodable image.
	ErrDecode = errors.New("failed to decode image")

	// ErrEmit indicates the processed asset could not be written.
	ErrEmit = errors.New("failed to emit asset")

	// ErrPathTraversal indicates an attempt to access files outside the root.
	ErrPathTraversal = errors.New("path traversal detected")
)
