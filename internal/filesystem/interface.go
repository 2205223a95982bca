package filesystem

import (
	"io/fs"
)

// FileSystem is the workspace storage a staged tree reads through and
// commits into. Paths are absolute.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	ReadDir(path string) ([]fs.DirEntry, error)

	// WriteFile creates or replaces path with mode perm, also when the
	// file already exists with another mode.
	WriteFile(path string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	RemoveAll(path string) error

	// Getwd is where workspace detection starts.
	Getwd() (string, error)
}
