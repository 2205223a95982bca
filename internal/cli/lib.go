package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-scaffold/internal/filesystem"
	"github.com/jakoblorz/go-scaffold/internal/generators/lib"
	"github.com/jakoblorz/go-scaffold/internal/tui"
)

// LibCommand handles the lib command
type LibCommand struct {
	fs          filesystem.FileSystem
	prompter    Prompter
	raw         lib.RawOptions
	dryRun      bool
	interactive bool
}

// NewLibCommand creates a new lib command
func NewLibCommand(fs filesystem.FileSystem, prompter Prompter) *cobra.Command {
	cmd := &LibCommand{
		fs:       fs,
		prompter: prompter,
	}

	cobraCmd := &cobra.Command{
		Use:   "lib <name>",
		Short: "Create a new library",
		Long:  `Create a new library under libs/ and register it with the workspace.`,
		Example: `  # TypeScript utility library
  scaffold lib shared-utils

  # Publishable UI library with a custom import path
  scaffold lib design-system --type=ui --publishable --import-path=@acme/ui`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&cmd.raw.Type, "type", "", "Library type (ui, networking, utility, python, php, ios-native, android-native)")
	flags.StringVar(&cmd.raw.Directory, "directory", "", "Parent directory under libs/")
	flags.StringVar(&cmd.raw.Tags, "tags", "", "Comma-separated project tags")
	flags.BoolVar(&cmd.raw.Publishable, "publishable", false, "Generate a publishable package")
	flags.StringVar(&cmd.raw.ImportPath, "import-path", "", "Package import path (default: @<npmScope>/<directory>)")
	flags.BoolVar(&cmd.dryRun, "dry-run", false, "List the changes without writing them")
	flags.BoolVarP(&cmd.interactive, "interactive", "i", false, "Prompt for missing options")

	return cobraCmd
}

// Run executes the lib command
func (c *LibCommand) Run(cmd *cobra.Command, args []string) error {
	raw := c.raw
	if len(args) > 0 {
		raw.Name = args[0]
	}

	if c.interactive && c.prompter != nil {
		completed, err := c.prompter.CompleteLib(raw)
		if err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		if completed == nil {
			return nil
		}
		raw = *completed
	}

	sess, err := newSession(cmd, c.fs)
	if err != nil {
		return err
	}

	gen := lib.New(lib.Deps{Log: sess.log, Config: sess.cfg})

	t := sess.ws.Tree()
	if err := gen.Generate(cmdContext(cmd), t, raw); err != nil {
		return fmt.Errorf("failed to generate library: %w", err)
	}

	out := outWriter(cmd)
	_, _ = fmt.Fprint(out, tui.RenderChanges(t.ListChanges()))

	if c.dryRun {
		_, _ = fmt.Fprint(out, "\n"+tui.RenderDryRun())
		return nil
	}

	if err := t.Commit(); err != nil {
		return fmt.Errorf("failed to write changes: %w", err)
	}

	note, err := gen.Notes(raw)
	if err != nil {
		return fmt.Errorf("failed to render notes: %w", err)
	}
	_, _ = fmt.Fprint(out, "\n"+tui.RenderNote(note))

	return nil
}
