package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
)

//go:embed notes
var notesFS embed.FS

// Note is the next-steps text shown after a template set was generated.
type Note struct {
	Title string
	Body  string
}

type noteMatter struct {
	Title string `yaml:"title"`
}

// Notes renders notes/<set>.md for a template set. Sets without notes
// return nil.
func Notes(set string, vars Vars) (*Note, error) {
	p := path.Join("notes", set+".md")
	data, err := fs.ReadFile(notesFS, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading notes %s: %w", p, err)
	}

	var matter noteMatter
	rest, err := frontmatter.Parse(bytes.NewReader(data), &matter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter in %s: %w", p, err)
	}

	body, err := Render(p, rest, vars)
	if err != nil {
		return nil, err
	}

	title, err := Render(p+"#title", []byte(matter.Title), vars)
	if err != nil {
		return nil, err
	}

	return &Note{
		Title: strings.TrimSpace(string(title)),
		Body:  strings.TrimSpace(string(body)),
	}, nil
}
