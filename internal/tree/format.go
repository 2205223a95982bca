package tree

import (
	"bytes"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var jsonOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// FormatFiles re-indents every created or updated JSON file in the tree.
// Invalid JSON is left as it is. It returns the paths it rewrote.
func FormatFiles(t *Tree) ([]string, error) {
	var formatted []string
	for _, change := range t.ListChanges() {
		if change.Type == ChangeDelete || !strings.HasSuffix(change.Path, ".json") {
			continue
		}
		if !gjson.ValidBytes(change.Content) {
			continue
		}

		out := pretty.PrettyOptions(change.Content, jsonOptions)
		if bytes.Equal(out, change.Content) {
			continue
		}
		if err := t.WriteMode(change.Path, out, change.Mode); err != nil {
			return formatted, err
		}
		formatted = append(formatted, change.Path)
	}
	return formatted, nil
}
