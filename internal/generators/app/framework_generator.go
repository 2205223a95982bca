package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jakoblorz/go-scaffold/internal/generators"
	"github.com/jakoblorz/go-scaffold/internal/toolchain"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

// FrameworkOptions is the fixed parameter shape handed to framework
// generators.
type FrameworkOptions struct {
	Framework     string
	Name          string
	Directory     string
	Style         string
	Routing       bool
	Bundler       string
	Tags          []string
	SkipFormat    bool
	E2ETestRunner string
	Linter        string
}

// FrameworkGenerator scaffolds a web application with a framework's own
// generator. It is expected to leave <Directory>/project.json behind.
type FrameworkGenerator interface {
	Generate(ctx context.Context, t *tree.Tree, opts FrameworkOptions) error
}

// frameworkOptions builds the parameters for a delegated framework.
func frameworkOptions(opts Options) (FrameworkOptions, error) {
	fo := FrameworkOptions{
		Framework:  opts.Framework,
		Name:       opts.FileName,
		Directory:  opts.ProjectRoot,
		Tags:       opts.Tags,
		SkipFormat: true,
	}

	switch opts.Framework {
	case FrameworkReact:
		fo.Style = "css"
		fo.Routing = true
		fo.Bundler = "vite"
		fo.E2ETestRunner = "none"
		fo.Linter = "eslint"
	case FrameworkAngular:
		fo.Style = "css"
		fo.Routing = true
	case FrameworkNextJS:
		fo.Style = "css"
	case FrameworkNestJS:
	default:
		return FrameworkOptions{}, generators.Configuration("Framework %s is not supported for web applications", opts.Framework)
	}
	return fo, nil
}

// Args renders the options as generator flags.
func (o FrameworkOptions) Args() []string {
	args := []string{
		"--name=" + o.Name,
		"--directory=" + o.Directory,
	}
	if o.Style != "" {
		args = append(args, "--style="+o.Style)
	}
	if o.Routing {
		args = append(args, "--routing")
	}
	if o.Bundler != "" {
		args = append(args, "--bundler="+o.Bundler)
	}
	if len(o.Tags) > 0 {
		args = append(args, "--tags="+strings.Join(o.Tags, ","))
	}
	if o.SkipFormat {
		args = append(args, "--skipFormat")
	}
	if o.E2ETestRunner != "" {
		args = append(args, "--e2eTestRunner="+o.E2ETestRunner)
	}
	if o.Linter != "" {
		args = append(args, "--linter="+o.Linter)
	}
	return args
}

// NxFrameworkGenerator runs the Nx plugin application generators in the
// workspace root. The plugin writes to disk itself, so its files show up
// in the tree through the base filesystem.
type NxFrameworkGenerator struct {
	runner toolchain.Runner
	log    logrus.FieldLogger

	// DryRun forwards --dry-run so the plugin only reports its changes.
	DryRun bool
}

// NewNxFrameworkGenerator creates a FrameworkGenerator backed by npx.
func NewNxFrameworkGenerator(runner toolchain.Runner, log logrus.FieldLogger) *NxFrameworkGenerator {
	return &NxFrameworkGenerator{runner: runner, log: log}
}

func (n *NxFrameworkGenerator) Generate(ctx context.Context, t *tree.Tree, opts FrameworkOptions) error {
	plugin, ok := externalFrameworks[opts.Framework]
	if !ok {
		return generators.Configuration("Framework %s is not supported for web applications", opts.Framework)
	}

	if _, err := n.runner.LookPath("npx"); err != nil {
		return generators.ExternalTool(err, "npx not found. Please install Node.js to generate %s applications", opts.Framework)
	}

	args := append([]string{"nx", "generate", fmt.Sprintf("%s:application", plugin)}, opts.Args()...)
	args = append(args, "--no-interactive")
	if n.DryRun {
		args = append(args, "--dry-run")
	}

	n.log.Debugf("Running: npx %s", strings.Join(args, " "))
	if _, err := n.runner.Run(ctx, t.Root(), "npx", args...); err != nil {
		return generators.ExternalTool(err, "Failed to generate %s application", opts.Framework)
	}
	return nil
}
