package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-scaffold/internal/filesystem"
	"github.com/jakoblorz/go-scaffold/internal/models"
)

// WorkspaceBuilder helps create test workspaces
type WorkspaceBuilder struct {
	fs       *filesystem.MockFileSystem
	root     string
	projects []ProjectConfig
}

// ProjectConfig represents a project registered by the builder
type ProjectConfig struct {
	Name string
	Root string
	Type models.ProjectType
}

// NewWorkspaceBuilder creates a new WorkspaceBuilder with nx.json and a
// root package.json in place.
func NewWorkspaceBuilder(root string) *WorkspaceBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.AddFile(filepath.Join(root, "nx.json"), []byte("{\n  \"npmScope\": \"workspace\"\n}\n"))
	fs.AddFile(filepath.Join(root, "package.json"), []byte("{\n  \"name\": \"workspace\",\n  \"private\": true\n}\n"))
	fs.SetCurrentDir(root)

	return &WorkspaceBuilder{
		fs:   fs,
		root: root,
	}
}

// AddProject adds a project with a minimal project.json
func (wb *WorkspaceBuilder) AddProject(name, root string, projectType models.ProjectType) *WorkspaceBuilder {
	wb.projects = append(wb.projects, ProjectConfig{
		Name: name,
		Root: root,
		Type: projectType,
	})

	manifest := fmt.Sprintf("{\n  \"name\": %q,\n  \"root\": %q,\n  \"projectType\": %q,\n  \"tags\": [],\n  \"targets\": {}\n}\n",
		name, root, projectType)
	wb.fs.AddFile(filepath.Join(wb.root, root, ManifestFile), []byte(manifest))

	return wb
}

// AddFile adds an arbitrary file relative to the workspace root
func (wb *WorkspaceBuilder) AddFile(rel, content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, rel), []byte(content))
	return wb
}

// AddGitIgnore writes the root .gitignore
func (wb *WorkspaceBuilder) AddGitIgnore(lines ...string) *WorkspaceBuilder {
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	return wb.AddFile(".gitignore", content)
}

// Build finalizes the workspace and returns the filesystem
func (wb *WorkspaceBuilder) Build() *filesystem.MockFileSystem {
	wb.fs.AddDir(filepath.Join(wb.root, "apps"))
	wb.fs.AddDir(filepath.Join(wb.root, "libs"))
	return wb.fs
}

// FileSystem returns the mock filesystem
func (wb *WorkspaceBuilder) FileSystem() *filesystem.MockFileSystem {
	return wb.fs
}

// Root returns the workspace root
func (wb *WorkspaceBuilder) Root() string {
	return wb.root
}
