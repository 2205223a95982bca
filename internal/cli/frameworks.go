package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-scaffold/internal/generators/app"
	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/tui"
)

// FrameworksCommand handles the frameworks command
type FrameworksCommand struct {
	json      bool
	templates bool
}

// NewFrameworksCommand creates a new frameworks command
func NewFrameworksCommand() *cobra.Command {
	cmd := &FrameworksCommand{}

	cobraCmd := &cobra.Command{
		Use:   "frameworks",
		Short: "List supported frameworks",
		Long:  `List the frameworks each application type can be generated with.`,
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.json, "json", false, "Output as JSON")
	cobraCmd.Flags().BoolVar(&cmd.templates, "templates", false, "Also list the embedded template sets")

	return cobraCmd
}

// FrameworksOutput is the JSON shape of the frameworks command.
type FrameworksOutput struct {
	Frameworks map[models.AppType][]string `json:"frameworks"`
	Inferred   map[models.AppType][]string `json:"inferred"`
	Templates  []string                    `json:"templates,omitempty"`
}

// Run executes the frameworks command
func (c *FrameworksCommand) Run(cmd *cobra.Command, args []string) error {
	output := FrameworksOutput{
		Frameworks: make(map[models.AppType][]string),
		Inferred:   app.Frameworks(),
	}
	for _, at := range models.AppTypes {
		output.Frameworks[at] = app.Scaffoldable(at)
	}
	if c.templates {
		output.Templates = templates.Sets()
	}

	out := outWriter(cmd)

	if c.json {
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	_, _ = fmt.Fprint(out, tui.RenderFrameworks(output.Frameworks))

	if c.templates {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, tui.TitleStyle.Render("Template sets"))
		for _, set := range output.Templates {
			_, _ = fmt.Fprintf(out, "  %s\n", set)
		}
	}

	return nil
}
