package catalog

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/alnah/go-themedimg/internal/fileutil"
)

// ValidateID checks that id is usable as a catalog key.
// Returns ErrInvalidID if the id is empty, absolute, contains backslashes or
// traversal elements.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if strings.Contains(id, "\\") || !fs.ValidPath(id) || id == "." {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// normalizeExtensions lowercases exts, adds the leading dot and rejects
// anything that could not be a plain file extension.
func normalizeExtensions(exts []string) (map[string]bool, error) {
	if len(exts) == 0 {
		return nil, fmt.Errorf("%w: empty extension set", ErrInvalidExtension)
	}

	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		bare := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if err := fileutil.ValidateExtension(bare); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidExtension, ext, err)
		}
		if strings.Contains(bare, ".") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
		set["."+bare] = true
	}
	return set, nil
}
