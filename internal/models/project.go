package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// ProjectType is the Nx project kind recorded in project.json.
type ProjectType string

const (
	ProjectTypeApplication ProjectType = "application"
	ProjectTypeLibrary     ProjectType = "library"
)

// Project is a project discovered in the workspace.
type Project struct {
	// Name is the project identifier (unique within the workspace)
	Name string

	// Root is the project root relative to the workspace root
	Root string

	// ManifestPath is the workspace-relative path to project.json
	ManifestPath string

	// Type indicates the project type.
	Type ProjectType
}

// NewProject creates a new Project instance
func NewProject(name, root, manifestPath string, projectType ProjectType) *Project {
	return &Project{
		Name:         name,
		Root:         root,
		ManifestPath: manifestPath,
		Type:         projectType,
	}
}

// ProjectConfiguration is the content of a project.json manifest.
type ProjectConfiguration struct {
	Name        string      `json:"name"`
	Schema      string      `json:"$schema,omitempty"`
	Root        string      `json:"root"`
	ProjectType ProjectType `json:"projectType"`
	SourceRoot  string      `json:"sourceRoot,omitempty"`
	Tags        []string    `json:"tags"`
	Targets     *Targets    `json:"targets"`
}

// TargetConfiguration describes one runnable target.
type TargetConfiguration struct {
	Executor string         `json:"executor"`
	Outputs  []string       `json:"outputs,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

// RunCommand builds an nx:run-commands target running a single command.
func RunCommand(command, cwd string) TargetConfiguration {
	options := map[string]any{"command": command}
	if cwd != "" {
		options["cwd"] = cwd
	}
	return TargetConfiguration{
		Executor: "nx:run-commands",
		Options:  options,
	}
}

// RunCommands builds an nx:run-commands target running commands in sequence.
func RunCommands(commands []string, cwd string) TargetConfiguration {
	options := map[string]any{
		"commands": commands,
		"parallel": false,
	}
	if cwd != "" {
		options["cwd"] = cwd
	}
	return TargetConfiguration{
		Executor: "nx:run-commands",
		Options:  options,
	}
}

// Targets is an insertion-ordered set of named targets.
type Targets struct {
	names  []string
	byName map[string]TargetConfiguration
}

// NewTargets creates an empty Targets.
func NewTargets() *Targets {
	return &Targets{byName: make(map[string]TargetConfiguration)}
}

// Set adds or replaces a target. New targets are appended.
func (t *Targets) Set(name string, target TargetConfiguration) {
	if t.byName == nil {
		t.byName = make(map[string]TargetConfiguration)
	}
	if _, exists := t.byName[name]; !exists {
		t.names = append(t.names, name)
	}
	t.byName[name] = target
}

// Get returns the target with the given name.
func (t *Targets) Get(name string) (TargetConfiguration, bool) {
	target, ok := t.byName[name]
	return target, ok
}

// Has reports whether a target with the given name exists.
func (t *Targets) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Names returns target names in insertion order.
func (t *Targets) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of targets.
func (t *Targets) Len() int {
	return len(t.names)
}

// MarshalJSON writes targets as an object in insertion order.
func (t *Targets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(t.byName[name])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal target %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads targets keeping the document order.
func (t *Targets) UnmarshalJSON(data []byte) error {
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return fmt.Errorf("targets must be an object")
	}

	*t = Targets{byName: make(map[string]TargetConfiguration)}
	var err error
	result.ForEach(func(key, value gjson.Result) bool {
		var target TargetConfiguration
		if err = json.Unmarshal([]byte(value.Raw), &target); err != nil {
			err = fmt.Errorf("failed to parse target %s: %w", key.String(), err)
			return false
		}
		t.Set(key.String(), target)
		return true
	})
	return err
}
