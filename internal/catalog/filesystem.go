package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NewFromDir scans the directory dir on disk.
// Returns ErrInvalidRoot if dir is not a valid, readable directory.
func NewFromDir(dir string, opts ...Option) (*Catalog, error) {
	root, err := resolveRoot(dir)
	if err != nil {
		return nil, err
	}

	// Caller options win over the defaults derived from dir.
	all := append([]Option{
		WithLabel(filepath.ToSlash(filepath.Clean(dir))),
		withContainment(containedIn(root)),
	}, opts...)

	return New(os.DirFS(root), all...)
}

// resolveRoot returns the absolute, symlink-free form of dir after checking
// it is a readable directory.
func resolveRoot(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}

	// Resolve symlinks in the root for consistent containment checks
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: directory does not exist: %s", ErrInvalidRoot, absPath)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: not a directory: %s", ErrInvalidRoot, absPath)
	}

	if _, err := os.ReadDir(absPath); err != nil {
		return "", fmt.Errorf("%w: cannot read directory: %v", ErrInvalidRoot, err)
	}

	return absPath, nil
}

// containedIn returns a check that the real path of an id stays under root.
func containedIn(root string) func(id string) error {
	return func(id string) error {
		filePath := filepath.Join(root, filepath.FromSlash(id))

		realPath, err := filepath.EvalSymlinks(filePath)
		if err != nil {
			return fmt.Errorf("%w: cannot resolve %q", ErrPathTraversal, id)
		}

		// Separator suffix prevents /base/path matching /base/pathevil
		if !strings.HasPrefix(realPath, root+string(filepath.Separator)) {
			return fmt.Errorf("%w: %q escapes catalog root", ErrPathTraversal, id)
		}
		return nil
	}
}
