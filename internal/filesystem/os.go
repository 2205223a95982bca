package filesystem

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// OSFileSystem implements FileSystem on the real disk through go-billy,
// rooted at "/" so absolute paths resolve as they are.
type OSFileSystem struct {
	fs billy.Filesystem
}

// NewOSFileSystem creates a new OSFileSystem
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{fs: osfs.New("/")}
}

func (o *OSFileSystem) ReadFile(path string) ([]byte, error) {
	data, err := util.ReadFile(o.fs, path)
	if err != nil {
		return nil, fmt.Errorf("osfs: readfile %q: %w", path, err)
	}
	return data, nil
}

func (o *OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	info, err := o.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("osfs: stat %q: %w", path, err)
	}
	return info, nil
}

func (o *OSFileSystem) Exists(path string) bool {
	_, err := o.fs.Stat(path)
	return err == nil
}

func (o *OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	infos, err := o.fs.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("osfs: readdir %q: %w", path, err)
	}

	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

func (o *OSFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := util.WriteFile(o.fs, path, data, perm); err != nil {
		return fmt.Errorf("osfs: writefile %q: %w", path, err)
	}
	if err := o.chmod(path, perm); err != nil {
		return fmt.Errorf("osfs: chmod %q: %w", path, err)
	}
	return nil
}

// chmod goes through billy when the filesystem supports it.
func (o *OSFileSystem) chmod(path string, perm fs.FileMode) error {
	if c, ok := o.fs.(interface {
		Chmod(name string, mode os.FileMode) error
	}); ok {
		return c.Chmod(path, perm)
	}
	return os.Chmod(path, perm)
}

func (o *OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	if err := o.fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("osfs: mkdirall %q: %w", path, err)
	}
	return nil
}

func (o *OSFileSystem) RemoveAll(path string) error {
	if err := util.RemoveAll(o.fs, path); err != nil {
		return fmt.Errorf("osfs: removeall %q: %w", path, err)
	}
	return nil
}

func (o *OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}
