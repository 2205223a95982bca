package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/jakoblorz/go-scaffold/internal/tree"
)

//go:embed all:files
var filesFS embed.FS

// Vars are the substitutions available to templates and path segments.
type Vars map[string]any

const templateSuffix = ".tmpl"

var pathVar = regexp.MustCompile(`__([a-zA-Z][a-zA-Z0-9]*)__`)

// HasSet reports whether a template set exists, e.g. "app/python/flask".
func HasSet(set string) bool {
	info, err := fs.Stat(filesFS, path.Join("files", set))
	return err == nil && info.IsDir()
}

// Sets lists every template set: directories that directly hold a file
// and are not nested inside another set.
func Sets() []string {
	dirs := make(map[string]struct{})
	_ = fs.WalkDir(filesFS, "files", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		dirs[strings.TrimPrefix(path.Dir(p), "files/")] = struct{}{}
		return nil
	})

	var sets []string
	for dir := range dirs {
		nested := false
		for parent := path.Dir(dir); parent != "."; parent = path.Dir(parent) {
			if _, ok := dirs[parent]; ok {
				nested = true
				break
			}
		}
		if !nested {
			sets = append(sets, dir)
		}
	}
	sort.Strings(sets)
	return sets
}

// Generate materializes a template set into dst within the tree. Files
// ending in .tmpl are rendered with text/template and sprig and lose the
// suffix, everything else is copied verbatim. Path segments of the form
// __name__ are replaced from vars; unknown names are kept as they are.
// It returns the written paths in walk order.
func Generate(t *tree.Tree, set, dst string, vars Vars) ([]string, error) {
	root := path.Join("files", set)
	if !HasSet(set) {
		return nil, fmt.Errorf("template set %q not found", set)
	}

	var written []string
	err := fs.WalkDir(filesFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, root+"/")
		data, err := fs.ReadFile(filesFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		if strings.HasSuffix(rel, templateSuffix) {
			rel = strings.TrimSuffix(rel, templateSuffix)
			data, err = Render(p, data, vars)
			if err != nil {
				return err
			}
		}

		target := path.Join(dst, SubstitutePath(rel, vars))
		if err := t.Write(target, data); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		written = append(written, target)
		return nil
	})
	if err != nil {
		return written, err
	}
	return written, nil
}

// Render executes a single template body against vars.
func Render(name string, body []byte, vars Vars) ([]byte, error) {
	tmpl, err := template.New(path.Base(name)).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(vars)); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// SubstitutePath replaces __name__ segments with values from vars.
func SubstitutePath(p string, vars Vars) string {
	return pathVar.ReplaceAllStringFunc(p, func(m string) string {
		key := m[2 : len(m)-2]
		if v, ok := vars[key]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}
