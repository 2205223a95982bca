package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-scaffold/internal/filesystem"
	"github.com/jakoblorz/go-scaffold/internal/toolchain"
	"github.com/jakoblorz/go-scaffold/internal/tui/prompt"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, runner toolchain.Runner) *cobra.Command {
	return newRootCommand(fs, runner, prompt.NewFlow())
}

func newRootCommand(fs filesystem.FileSystem, runner toolchain.Runner, prompter Prompter) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Scaffold applications and libraries in Nx workspaces",
		Long: `A CLI tool for scaffolding projects in Nx-style monorepos.

Applications are created under apps/, libraries under libs/. Each project is
registered with a project.json so the build graph picks it up.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP(verboseFlag, "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String(configFlag, "", "Path to a scaffold.yaml (default: <workspace>/scaffold.yaml)")

	// Add subcommands
	rootCmd.AddCommand(NewAppCommand(fs, runner, prompter))
	rootCmd.AddCommand(NewLibCommand(fs, prompter))
	rootCmd.AddCommand(NewFrameworksCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	runner := toolchain.NewOSRunner()

	rootCmd := NewRootCommand(fs, runner)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
