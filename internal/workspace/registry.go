package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

// ErrProjectExists is returned when a project name or manifest is already taken.
var ErrProjectExists = errors.New("project already exists")

// ErrProjectNotFound is returned when no manifest carries the requested name.
var ErrProjectNotFound = errors.New("project not found")

const projectSchemaPath = "node_modules/nx/schemas/project-schema.json"

// AddProjectConfiguration validates cfg and stages <root>/project.json.
func AddProjectConfiguration(t *tree.Tree, cfg models.ProjectConfiguration) error {
	projects, err := DiscoverProjects(t)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if p.Name == cfg.Name {
			return fmt.Errorf("%w: %s is registered at %s", ErrProjectExists, cfg.Name, p.Root)
		}
	}

	manifestPath := path.Join(cfg.Root, ManifestFile)
	if t.Exists(manifestPath) {
		return fmt.Errorf("%w: cannot create %s, file already exists", ErrProjectExists, manifestPath)
	}

	if cfg.Schema == "" {
		cfg.Schema = OffsetFromRoot(cfg.Root) + projectSchemaPath
	}
	if cfg.Tags == nil {
		cfg.Tags = []string{}
	}
	if cfg.Targets == nil {
		cfg.Targets = models.NewTargets()
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project configuration: %w", err)
	}
	if err := ValidateManifest(data); err != nil {
		return fmt.Errorf("%s: %w", cfg.Name, err)
	}

	return t.Write(manifestPath, append(data, '\n'))
}

// ReadProjectConfiguration loads the manifest of the named project.
func ReadProjectConfiguration(t *tree.Tree, name string) (models.ProjectConfiguration, error) {
	project, err := FindProject(t, name)
	if err != nil {
		return models.ProjectConfiguration{}, err
	}

	data, err := t.Read(project.ManifestPath)
	if err != nil {
		return models.ProjectConfiguration{}, fmt.Errorf("failed to read %s: %w", project.ManifestPath, err)
	}

	var cfg models.ProjectConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.ProjectConfiguration{}, fmt.Errorf("failed to parse %s: %w", project.ManifestPath, err)
	}
	if cfg.Targets == nil {
		cfg.Targets = models.NewTargets()
	}
	return cfg, nil
}

// FindProject returns the project with the given name.
func FindProject(t *tree.Tree, name string) (*models.Project, error) {
	projects, err := DiscoverProjects(t)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
}

// SetTarget adds or replaces one target in an existing manifest. The raw
// document is edited in place so keys it already has keep their order.
func SetTarget(t *tree.Tree, manifestPath, name string, target models.TargetConfiguration) error {
	data, err := t.Read(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	raw, err := json.Marshal(target)
	if err != nil {
		return fmt.Errorf("failed to marshal target %s: %w", name, err)
	}

	if !gjson.GetBytes(data, "targets").IsObject() {
		data, err = sjson.SetRawBytes(data, "targets", []byte("{}"))
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", manifestPath, err)
		}
	}

	data, err = sjson.SetRawBytes(data, "targets."+escapePathKey(name), raw)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", manifestPath, err)
	}

	return t.Write(manifestPath, data)
}

// OffsetFromRoot returns the relative path from root back to the workspace root.
func OffsetFromRoot(root string) string {
	root = strings.Trim(path.Clean(root), "/")
	if root == "." || root == "" {
		return ""
	}
	return strings.Repeat("../", strings.Count(root, "/")+1)
}

func escapePathKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
