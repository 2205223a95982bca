package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem is an in-memory workspace used by tests as both the
// read-through base of a staged tree and the target of its commit.
type MockFileSystem struct {
	files      map[string]*MockFile
	currentDir string

	// Hooks for testing error scenarios
	WriteFileError error
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem rooted at /workspace.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string]*MockFile),
		currentDir: "/workspace",
	}
}

// AddFile adds a file and any missing parent directories.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	mfs.addFileMode(path, content, 0644)
}

// AddExecutable adds a file with mode 0755.
func (mfs *MockFileSystem) AddExecutable(path string, content []byte) {
	mfs.addFileMode(path, content, 0755)
}

func (mfs *MockFileSystem) addFileMode(path string, content []byte, mode fs.FileMode) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    mode,
		ModTime: time.Now(),
	}
	mfs.addParents(cleanPath)
}

// AddDir adds a directory and any missing parent directories.
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	mfs.addParents(cleanPath)
}

func (mfs *MockFileSystem) addParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.files[dir] = &MockFile{
				Mode:    0755 | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
		dir = filepath.Dir(dir)
	}
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if mfs.WriteFileError != nil {
		return mfs.WriteFileError
	}

	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if dir != "." && dir != "/" {
		if _, exists := mfs.files[dir]; !exists {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}

	mfs.files[cleanPath] = &MockFile{
		Content: data,
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

// RemoveAll removes path and everything below it. A missing path is not an error.
func (mfs *MockFileSystem) RemoveAll(path string) error {
	cleanPath := filepath.Clean(path)
	for p := range mfs.files {
		if p == cleanPath || strings.HasPrefix(p, cleanPath+string(filepath.Separator)) {
			delete(mfs.files, p)
		}
	}
	return nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	cleanPath := filepath.Clean(path)

	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDir {
		return nil, errors.New("not a directory")
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if p == cleanPath || filepath.Dir(p) != cleanPath {
			continue
		}
		entries = append(entries, &mockDirEntry{info: mfs.info(p, f)})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	parts := strings.Split(cleanPath, string(filepath.Separator))

	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if current == "" {
			current = string(filepath.Separator) + part
		} else {
			current = filepath.Join(current, part)
		}

		if existing, exists := mfs.files[current]; exists {
			if !existing.IsDir {
				return &fs.PathError{Op: "mkdir", Path: current, Err: errors.New("not a directory")}
			}
			continue
		}
		mfs.files[current] = &MockFile{
			Mode:    perm | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	cleanPath := filepath.Clean(path)
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return mfs.info(cleanPath, file), nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

func (mfs *MockFileSystem) info(p string, f *MockFile) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(p),
		size:    int64(len(f.Content)),
		mode:    f.Mode,
		modTime: f.ModTime,
		isDir:   f.IsDir,
	}
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = dir
}

// GetFiles returns all entries in the mock filesystem
func (mfs *MockFileSystem) GetFiles() map[string]*MockFile {
	return mfs.files
}

// FilePaths returns the sorted paths of all regular files below root.
func (mfs *MockFileSystem) FilePaths(root string) []string {
	cleanRoot := filepath.Clean(root)
	var paths []string
	for p, f := range mfs.files {
		if f.IsDir {
			continue
		}
		if strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
