package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

// RenderChanges lists pending changes the way Nx prints them:
// one "CREATE path (n bytes)" line per change.
func RenderChanges(changes []tree.Change) string {
	var b strings.Builder

	for _, change := range changes {
		var label string
		switch change.Type {
		case tree.ChangeCreate:
			label = CreateStyle.Render(string(change.Type))
		case tree.ChangeUpdate:
			label = UpdateStyle.Render(string(change.Type))
		default:
			label = DeleteStyle.Render(string(change.Type))
		}

		if change.Type == tree.ChangeDelete {
			fmt.Fprintf(&b, "%s %s\n", label, change.Path)
			continue
		}
		fmt.Fprintf(&b, "%s %s %s\n", label, change.Path, SubtleStyle.Render(fmt.Sprintf("(%d bytes)", len(change.Content))))
	}

	return b.String()
}

// RenderDryRun renders the notice printed instead of committing.
func RenderDryRun() string {
	return DescStyle.Render("NOTE: The \"dryRun\" flag means no changes were made.") + "\n"
}

// RenderNote renders next-steps notes inside a bordered box.
func RenderNote(note *templates.Note) string {
	if note == nil {
		return ""
	}

	body := TitleStyle.Render("✓ "+note.Title) + "\n" + note.Body
	return BorderStyle.Render(body) + "\n"
}

// RenderFrameworks renders the supported frameworks grouped by
// application type.
func RenderFrameworks(frameworks map[models.AppType][]string) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Supported frameworks"))
	b.WriteString("\n")

	width := 0
	for _, appType := range models.AppTypes {
		width = max(width, len(appType.String()))
	}

	label := lipgloss.NewStyle().Width(width + 2)
	for _, appType := range models.AppTypes {
		list := frameworks[appType]
		value := strings.Join(list, ", ")
		if len(list) == 0 {
			value = SubtleStyle.Render("none")
		}
		b.WriteString(SelectedStyle.Inherit(label).Render(appType.String()))
		b.WriteString(value)
		b.WriteString("\n")
	}

	return b.String()
}

// RenderError renders a failure summary.
func RenderError(err error) string {
	return ErrorStyle.Render("✗ "+err.Error()) + "\n"
}
