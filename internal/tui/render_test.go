package tui

import (
	"errors"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

func TestRenderChanges(t *testing.T) {
	out := RenderChanges([]tree.Change{
		{Type: tree.ChangeCreate, Path: "apps/web/project.json", Content: []byte("{}\n")},
		{Type: tree.ChangeUpdate, Path: "package.json", Content: []byte("{\"name\":\"x\"}")},
		{Type: tree.ChangeDelete, Path: "apps/ios/App"},
	})

	require.Contains(t, out, "apps/web/project.json")
	require.Contains(t, out, "(3 bytes)")
	require.Contains(t, out, "apps/ios/App\n")
	snaps.MatchSnapshot(t, out)
}

func TestRenderChanges_Empty(t *testing.T) {
	require.Empty(t, RenderChanges(nil))
}

func TestRenderNote(t *testing.T) {
	require.Empty(t, RenderNote(nil))

	out := RenderNote(&templates.Note{Title: "Created library utils", Body: "- Build: nx build utils"})
	require.Contains(t, out, "Created library utils")
	require.Contains(t, out, "nx build utils")
}

func TestRenderFrameworks(t *testing.T) {
	out := RenderFrameworks(map[models.AppType][]string{
		models.AppTypeWeb:    {"angular", "react"},
		models.AppTypePython: {"django", "fastapi", "flask"},
	})

	require.Contains(t, out, "angular, react")
	require.Contains(t, out, "none")
	snaps.MatchSnapshot(t, out)
}

func TestRenderError(t *testing.T) {
	require.Contains(t, RenderError(errors.New("boom")), "boom")
}
