package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/alnah/go-themedimg/internal/fileutil"
)

// DirEmitter writes processed assets below a directory on disk.
type DirEmitter struct {
	dir string
}

// NewDirEmitter creates a DirEmitter rooted at dir. The directory is created
// lazily on first emit.
func NewDirEmitter(dir string) *DirEmitter {
	return &DirEmitter{dir: dir}
}

// Emit writes data to {dir}/{name}. Names are content-addressed, so an
// existing file is left untouched.
func (e *DirEmitter) Emit(name string, data []byte) error {
	if !fs.ValidPath(name) {
		return fmt.Errorf("%w: %q", ErrPathTraversal, name)
	}

	target := filepath.Join(e.dir, filepath.FromSlash(name))
	if fileutil.FileExists(target) {
		return nil
	}
	return fileutil.WriteFileAtomic(target, data)
}

// Compile-time interface check.
var _ Emitter = (*DirEmitter)(nil)
