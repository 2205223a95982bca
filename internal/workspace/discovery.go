package workspace

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/tidwall/gjson"

	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

// ManifestFile is the per-project manifest name.
const ManifestFile = "project.json"

var alwaysSkipped = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".nx":          {},
}

// DiscoverProjects finds every project.json in the tree, staged files
// included. Directories matched by the root .gitignore are skipped.
func DiscoverProjects(t *tree.Tree) ([]*models.Project, error) {
	ignore, err := loadRootGitIgnore(t)
	if err != nil {
		return nil, err
	}

	var projects []*models.Project
	var walk func(dir string) error
	walk = func(dir string) error {
		for _, name := range t.Children(dir) {
			rel := name
			if dir != "." {
				rel = dir + "/" + name
			}

			isFile := t.IsFile(rel)
			if !isFile {
				if _, skip := alwaysSkipped[name]; skip {
					continue
				}
			}
			if ignore != nil {
				if match := ignore.Relative(rel, !isFile); match != nil && match.Ignore() {
					continue
				}
			}

			if !isFile {
				if err := walk(rel); err != nil {
					return err
				}
				continue
			}

			if name != ManifestFile {
				continue
			}

			project, err := loadProject(t, rel)
			if err != nil {
				return err
			}
			projects = append(projects, project)
		}
		return nil
	}

	if err := walk("."); err != nil {
		return nil, err
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}

func loadProject(t *tree.Tree, manifestPath string) (*models.Project, error) {
	data, err := t.Read(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse %s: invalid JSON", manifestPath)
	}

	root := path.Dir(manifestPath)
	name := gjson.GetBytes(data, "name").String()
	if strings.TrimSpace(name) == "" {
		name = path.Base(root)
	}

	projectType := models.ProjectType(gjson.GetBytes(data, "projectType").String())
	if projectType != models.ProjectTypeApplication && projectType != models.ProjectTypeLibrary {
		projectType = models.ProjectTypeLibrary
		if strings.HasPrefix(root, "apps/") {
			projectType = models.ProjectTypeApplication
		}
	}

	return models.NewProject(name, root, manifestPath, projectType), nil
}

func loadRootGitIgnore(t *tree.Tree) (gitignore.GitIgnore, error) {
	if !t.IsFile(".gitignore") {
		return nil, nil
	}

	data, err := t.Read(".gitignore")
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), t.Root(), nil), nil
}
