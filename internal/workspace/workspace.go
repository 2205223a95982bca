package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-scaffold/internal/filesystem"
	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

// Workspace represents an Nx-style workspace and the projects registered in it.
type Workspace struct {
	fs          filesystem.FileSystem
	RootPath    string
	Projects    []*models.Project
	rootMarkers []string
}

// Option configures workspace behavior.
type Option func(*Workspace)

// WithRootMarkers overrides the files that mark the workspace root.
func WithRootMarkers(markers ...string) Option {
	return func(w *Workspace) {
		w.rootMarkers = markers
	}
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem, options ...Option) *Workspace {
	ws := &Workspace{
		fs:          fs,
		Projects:    []*models.Project{},
		rootMarkers: []string{"nx.json", "package.json"},
	}

	for _, option := range options {
		option(ws)
	}

	return ws
}

// Detect finds the workspace from the current directory and loads its projects.
func (w *Workspace) Detect() error {
	root, err := w.findWorkspaceRoot()
	if err != nil {
		return err
	}
	w.RootPath = root

	projects, err := DiscoverProjects(w.Tree())
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	w.Projects = projects

	return nil
}

// Tree returns a fresh staged tree over the workspace root.
func (w *Workspace) Tree() *tree.Tree {
	return tree.New(w.fs, w.RootPath)
}

// findWorkspaceRoot walks up the directory tree once per root marker, in
// order. An nx.json anywhere above cwd wins over a closer package.json.
func (w *Workspace) findWorkspaceRoot() (string, error) {
	cwd, err := w.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for _, marker := range w.rootMarkers {
		if dir, ok := w.walkUp(cwd, marker); ok {
			return dir, nil
		}
	}
	return "", fmt.Errorf("workspace not found")
}

func (w *Workspace) walkUp(start, marker string) (string, bool) {
	dir := start
	for {
		if w.fs.Exists(filepath.Join(dir, marker)) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// GetProject returns a project by name.
func (w *Workspace) GetProject(name string) (*models.Project, error) {
	for _, p := range w.Projects {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project %s not found in workspace", name)
}

// GetProjectNames returns a list of all project names.
func (w *Workspace) GetProjectNames() []string {
	names := make([]string, len(w.Projects))
	for i, p := range w.Projects {
		names[i] = p.Name
	}
	return names
}
