package filesystem

import (
	"io/fs"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/arthur-debert/vuegen/pkg/types"
)

// billyFS implements types.FS on top of a billy.Filesystem
type billyFS struct {
	fs billy.Filesystem
}

// NewOS creates an FS backed by the OS filesystem. Paths are absolute.
func NewOS() types.FS {
	return &billyFS{fs: osfs.New("/")}
}

// NewMemory creates an empty in-memory FS
func NewMemory() types.FS {
	return &billyFS{fs: memfs.New()}
}

// NewBilly wraps an existing billy filesystem
func NewBilly(fsys billy.Filesystem) types.FS {
	return &billyFS{fs: fsys}
}

func (b *billyFS) Stat(name string) (fs.FileInfo, error) {
	return b.fs.Stat(name)
}

func (b *billyFS) ReadFile(name string) ([]byte, error) {
	info, err := b.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return util.ReadFile(b.fs, name)
}

func (b *billyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := b.fs.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	return util.WriteFile(b.fs, name, data, perm)
}

func (b *billyFS) MkdirAll(path string, perm fs.FileMode) error {
	return b.fs.MkdirAll(path, perm)
}

func (b *billyFS) Walk(root string, fn filepath.WalkFunc) error {
	return util.Walk(b.fs, root, fn)
}

func (b *billyFS) Exists(name string) bool {
	_, err := b.fs.Stat(name)
	return err == nil
}
