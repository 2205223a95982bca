package tree

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/jakoblorz/go-scaffold/internal/filesystem"
)

// ChangeType is the kind of pending change recorded for a path.
type ChangeType string

const (
	ChangeCreate ChangeType = "CREATE"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// Change is a single pending change, relative to the workspace root.
type Change struct {
	Type    ChangeType
	Path    string
	Content []byte
	Mode    fs.FileMode
}

const defaultFileMode fs.FileMode = 0644

// Tree stages file changes in memory on top of a read-through base
// filesystem. Nothing reaches the base until Commit.
//
// Paths passed to a Tree are relative to the workspace root and use
// forward slashes.
type Tree struct {
	base    filesystem.FileSystem
	root    string
	stage   billy.Filesystem
	deleted map[string]struct{}
}

// Option configures a Tree.
type Option func(*Tree)

// WithStage stages changes in fs instead of a fresh memfs.
func WithStage(fs billy.Filesystem) Option {
	return func(t *Tree) {
		t.stage = fs
	}
}

// New creates an empty Tree over base, rooted at the absolute path root.
func New(base filesystem.FileSystem, root string, options ...Option) *Tree {
	t := &Tree{
		base:    base,
		root:    filepath.Clean(root),
		stage:   memfs.New(),
		deleted: make(map[string]struct{}),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Root returns the absolute workspace root.
func (t *Tree) Root() string {
	return t.root
}

// Abs maps a tree path onto the base filesystem.
func (t *Tree) Abs(p string) string {
	return filepath.Join(t.root, filepath.FromSlash(clean(p)))
}

// Exists reports whether p is a file or a non-empty directory.
func (t *Tree) Exists(p string) bool {
	p = clean(p)
	if t.isStagedFile(p) {
		return true
	}
	if !t.hidden(p) && t.base.Exists(t.Abs(p)) {
		return true
	}
	return len(t.Children(p)) > 0
}

// IsFile reports whether p is a readable file.
func (t *Tree) IsFile(p string) bool {
	p = clean(p)
	if t.isStagedFile(p) {
		return true
	}
	if t.hidden(p) {
		return false
	}
	info, err := t.base.Stat(t.Abs(p))
	return err == nil && !info.IsDir()
}

// Read returns the content of p, staged content first.
func (t *Tree) Read(p string) ([]byte, error) {
	p = clean(p)
	if t.isStagedFile(p) {
		data, err := util.ReadFile(t.stage, stagePath(p))
		if err != nil {
			return nil, fmt.Errorf("tree: read %q: %w", p, err)
		}
		return data, nil
	}
	if t.hidden(p) {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	data, err := t.base.ReadFile(t.Abs(p))
	if err != nil {
		return nil, fmt.Errorf("tree: read %q: %w", p, err)
	}
	return data, nil
}

// Mode returns the file mode p will be committed with.
func (t *Tree) Mode(p string) fs.FileMode {
	p = clean(p)
	if t.isStagedFile(p) {
		if info, err := t.stage.Stat(stagePath(p)); err == nil {
			return info.Mode().Perm()
		}
	}
	if !t.hidden(p) {
		if info, err := t.base.Stat(t.Abs(p)); err == nil && !info.IsDir() {
			return info.Mode().Perm()
		}
	}
	return defaultFileMode
}

// Write stages content for p, keeping the mode of an existing file.
func (t *Tree) Write(p string, data []byte) error {
	mode := defaultFileMode
	if t.IsFile(p) {
		mode = t.Mode(p)
	}
	return t.WriteMode(p, data, mode)
}

// WriteMode stages content for p with an explicit mode.
func (t *Tree) WriteMode(p string, data []byte, mode fs.FileMode) error {
	p = clean(p)
	if p == "." || strings.HasPrefix(p, "../") || p == ".." {
		return fmt.Errorf("tree: path %q is outside the workspace", p)
	}

	sp := stagePath(p)
	if t.isStagedFile(p) {
		// memfs keeps the original mode on truncate
		if err := t.stage.Remove(sp); err != nil {
			return fmt.Errorf("tree: write %q: %w", p, err)
		}
	}
	if err := t.stage.MkdirAll(path.Dir(sp), 0755); err != nil {
		return fmt.Errorf("tree: write %q: %w", p, err)
	}
	if err := util.WriteFile(t.stage, sp, data, mode.Perm()); err != nil {
		return fmt.Errorf("tree: write %q: %w", p, err)
	}

	delete(t.deleted, p)
	return nil
}

// SetExecutable marks an existing file as 0755.
func (t *Tree) SetExecutable(p string) error {
	data, err := t.Read(p)
	if err != nil {
		return err
	}
	return t.WriteMode(p, data, 0755)
}

// Delete removes p and everything below it. Deleting a missing path is a no-op.
func (t *Tree) Delete(p string) error {
	p = clean(p)

	for _, staged := range t.stagedFiles() {
		if staged == p || isUnder(staged, p) {
			if err := t.stage.Remove(stagePath(staged)); err != nil {
				return fmt.Errorf("tree: delete %q: %w", staged, err)
			}
		}
	}

	if !t.hidden(p) && t.base.Exists(t.Abs(p)) {
		t.deleted[p] = struct{}{}
	}
	return nil
}

// Rename moves the file at from to to.
func (t *Tree) Rename(from, to string) error {
	if !t.IsFile(from) {
		return fmt.Errorf("tree: rename %q: %w", clean(from), fs.ErrNotExist)
	}
	data, err := t.Read(from)
	if err != nil {
		return err
	}
	if err := t.WriteMode(to, data, t.Mode(from)); err != nil {
		return err
	}
	return t.Delete(from)
}

// Children lists the names directly under dir, merged from stage and base.
func (t *Tree) Children(dir string) []string {
	dir = clean(dir)
	names := make(map[string]struct{})

	if !t.hidden(dir) {
		if entries, err := t.base.ReadDir(t.Abs(dir)); err == nil {
			for _, entry := range entries {
				child := join(dir, entry.Name())
				if !t.hidden(child) {
					names[entry.Name()] = struct{}{}
				}
			}
		}
	}

	for _, staged := range t.stagedFiles() {
		rel := staged
		if dir != "." {
			if !isUnder(staged, dir) {
				continue
			}
			rel = strings.TrimPrefix(staged, dir+"/")
		}
		name, _, _ := strings.Cut(rel, "/")
		names[name] = struct{}{}
	}

	children := make([]string, 0, len(names))
	for name := range names {
		children = append(children, name)
	}
	sort.Strings(children)
	return children
}

// ListChanges returns the pending changes sorted by path. Files staged with
// the same content and mode they already have on disk are not reported.
func (t *Tree) ListChanges() []Change {
	var changes []Change

	for _, p := range t.stagedFiles() {
		data, err := util.ReadFile(t.stage, stagePath(p))
		if err != nil {
			continue
		}
		mode := t.Mode(p)

		abs := t.Abs(p)
		info, statErr := t.base.Stat(abs)
		if statErr != nil || info.IsDir() {
			changes = append(changes, Change{Type: ChangeCreate, Path: p, Content: data, Mode: mode})
			continue
		}

		existing, err := t.base.ReadFile(abs)
		if err == nil && !t.hidden(p) && bytes.Equal(existing, data) && info.Mode().Perm() == mode {
			continue
		}
		changes = append(changes, Change{Type: ChangeUpdate, Path: p, Content: data, Mode: mode})
	}

	for p := range t.deleted {
		if t.isStagedFile(p) {
			continue
		}
		changes = append(changes, Change{Type: ChangeDelete, Path: p})
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes
}

// Commit applies all pending changes to the base filesystem and resets the
// stage. Deletions are applied before writes.
func (t *Tree) Commit() error {
	changes := t.ListChanges()

	deleted := make([]string, 0, len(t.deleted))
	for p := range t.deleted {
		deleted = append(deleted, p)
	}
	sort.Strings(deleted)
	for _, p := range deleted {
		if err := t.base.RemoveAll(t.Abs(p)); err != nil {
			return fmt.Errorf("failed to delete %s: %w", p, err)
		}
	}

	for _, change := range changes {
		if change.Type == ChangeDelete {
			continue
		}
		abs := t.Abs(change.Path)
		if err := t.base.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", change.Path, err)
		}
		if err := t.base.WriteFile(abs, change.Content, change.Mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", change.Path, err)
		}
	}

	t.stage = memfs.New()
	t.deleted = make(map[string]struct{})
	return nil
}

func (t *Tree) isStagedFile(p string) bool {
	info, err := t.stage.Stat(stagePath(p))
	return err == nil && !info.IsDir()
}

// hidden reports whether p or one of its ancestors was deleted.
func (t *Tree) hidden(p string) bool {
	for cur := p; cur != "." && cur != "/"; cur = path.Dir(cur) {
		if _, ok := t.deleted[cur]; ok {
			return true
		}
	}
	return false
}

func (t *Tree) stagedFiles() []string {
	var files []string
	_ = util.Walk(t.stage, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			files = append(files, clean(filepath.ToSlash(p)))
		}
		return nil
	})
	sort.Strings(files)
	return files
}

func clean(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

func stagePath(p string) string {
	return "/" + p
}

func join(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}

func isUnder(p, dir string) bool {
	if dir == "." {
		return true
	}
	return strings.HasPrefix(p, dir+"/")
}
