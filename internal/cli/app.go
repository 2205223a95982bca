package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-scaffold/internal/filesystem"
	"github.com/jakoblorz/go-scaffold/internal/generators/app"
	"github.com/jakoblorz/go-scaffold/internal/generators/lib"
	"github.com/jakoblorz/go-scaffold/internal/toolchain"
	"github.com/jakoblorz/go-scaffold/internal/tui"
)

// Prompter asks for options left out on the command line. A nil result
// means the user aborted.
type Prompter interface {
	CompleteApp(raw app.RawOptions) (*app.RawOptions, error)
	CompleteLib(raw lib.RawOptions) (*lib.RawOptions, error)
}

// AppCommand handles the app command
type AppCommand struct {
	fs          filesystem.FileSystem
	runner      toolchain.Runner
	prompter    Prompter
	raw         app.RawOptions
	docker      bool
	dryRun      bool
	skipInstall bool
	interactive bool
}

// NewAppCommand creates a new app command
func NewAppCommand(fs filesystem.FileSystem, runner toolchain.Runner, prompter Prompter) *cobra.Command {
	cmd := &AppCommand{
		fs:       fs,
		runner:   runner,
		prompter: prompter,
	}

	cobraCmd := &cobra.Command{
		Use:   "app <name>",
		Short: "Create a new application",
		Long: `Create a new application under apps/ and register it with the workspace.

The type is inferred from --framework when --type is omitted:
  react, angular, nextjs, nestjs, express, fastify, vue, svelte -> web
  flask, django, fastapi                                       -> python
  symfony, laravel                                             -> php`,
		Example: `  # Plain TypeScript + Vite application
  scaffold app dashboard --type=web

  # Flask service, type inferred
  scaffold app orders --framework=flask --tags=scope:orders

  # Android application without containers
  scaffold app field-notes --type=android-native --docker=false

  # Preview the files without writing them
  scaffold app shop --framework=react --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&cmd.raw.Type, "type", "", "Application type (web, python, php, ios-native, android-native)")
	flags.StringVar(&cmd.raw.Framework, "framework", "", "Framework; also used to infer --type")
	flags.StringVar(&cmd.raw.AppType, "app-type", "", "Web application kind for containers (frontend, backend)")
	flags.StringVar(&cmd.raw.Directory, "directory", "", "Parent directory under apps/")
	flags.StringVar(&cmd.raw.Tags, "tags", "", "Comma-separated project tags")
	flags.BoolVar(&cmd.docker, "docker", false, "Add Docker support (default: every type except ios-native)")
	flags.StringVar(&cmd.raw.OrganizationIdentifier, "org-id", "", "iOS organization identifier (default: com.<organization>)")
	flags.StringVar(&cmd.raw.PackageName, "package-name", "", "Android package name (default: com.<organization>.<name>)")
	flags.BoolVar(&cmd.dryRun, "dry-run", false, "List the changes without writing them")
	flags.BoolVar(&cmd.skipInstall, "skip-install", false, "Do not install packages after generation")
	flags.BoolVarP(&cmd.interactive, "interactive", "i", false, "Prompt for missing options")

	return cobraCmd
}

// Run executes the app command
func (c *AppCommand) Run(cmd *cobra.Command, args []string) error {
	raw := c.raw
	if len(args) > 0 {
		raw.Name = args[0]
	}
	if cmd != nil && cmd.Flags().Changed("docker") {
		docker := c.docker
		raw.Docker = &docker
	}

	if c.interactive && c.prompter != nil {
		completed, err := c.prompter.CompleteApp(raw)
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

	frameworks := app.NewNxFrameworkGenerator(c.runner, sess.log)
	frameworks.DryRun = c.dryRun

	gen := app.New(app.Deps{
		Log:        sess.log,
		Runner:     c.runner,
		Config:     sess.cfg,
		Frameworks: frameworks,
		DryRun:     c.dryRun,
	})

	t := sess.ws.Tree()
	callback, err := gen.Generate(cmdContext(cmd), t, raw)
	if err != nil {
		return fmt.Errorf("failed to generate application: %w", err)
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

	if note, err := gen.Notes(raw); err != nil {
		sess.log.Debugf("no notes: %v", err)
	} else if note != nil {
		_, _ = fmt.Fprint(out, "\n"+tui.RenderNote(note))
	}

	if callback == nil || c.skipInstall {
		return nil
	}
	if err := callback(cmdContext(cmd)); err != nil {
		return fmt.Errorf("failed to install packages: %w", err)
	}

	return nil
}
