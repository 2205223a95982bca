package app

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

func (g *Generator) scaffoldPython(t *tree.Tree, opts Options) error {
	profile := pythonProfiles[opts.Framework]
	root := opts.ProjectRoot

	targets := models.NewTargets()
	targets.Set("build", models.TargetConfiguration{
		Executor: "@nxlv/python:build",
		Outputs:  []string{"{projectRoot}/dist"},
		Options: map[string]any{
			"outputPath": "dist/" + root,
			"publish":    false,
		},
	})
	targets.Set("serve", models.RunCommands(pythonServeCommands(opts, profile), root))
	targets.Set("test", withOutputs(
		models.RunCommand("docker-compose exec app poetry run pytest tests/ --cov=src --cov-report=xml --cov-report=html", root),
		"{workspaceRoot}/coverage/{projectRoot}"))
	targets.Set("lint", models.RunCommand("docker-compose exec app poetry run ruff check src/", root))
	targets.Set("install", models.RunCommand("docker-compose build", root))

	vars := g.vars(opts)
	if _, err := templates.Generate(t, "app/python/"+opts.Framework, root, vars); err != nil {
		return err
	}

	if opts.Docker {
		if err := g.addDockerSupport(t, opts, vars, targets); err != nil {
			return err
		}
	}

	return register(t, opts, root+"/src", targets)
}

// pythonServeCommands prints where the app is reachable, then starts it.
func pythonServeCommands(opts Options, p Profile) []string {
	base := fmt.Sprintf("http://localhost:%d", p.Port)

	cmds := []string{
		fmt.Sprintf("echo '🚀 Starting %s (%s)...'", opts.ProjectName, strings.ToUpper(opts.Framework)),
		fmt.Sprintf(`echo "📡 Application will be available at: %s"`, base),
		fmt.Sprintf(`echo "🔍 Health Check: %s%s"`, base, p.HealthPath),
	}
	if p.AdminPath != "" {
		cmds = append(cmds, fmt.Sprintf(`echo "👤 Admin Interface: %s%s"`, base, p.AdminPath))
	}
	if p.DocsPath != "" {
		cmds = append(cmds,
			fmt.Sprintf(`echo "📚 API Docs: %s%s"`, base, p.DocsPath),
			fmt.Sprintf(`echo "📖 ReDoc: %s/redoc"`, base),
		)
	}
	if opts.Framework == FrameworkFlask {
		cmds = append(cmds, fmt.Sprintf(`echo "⚠️  Note: Flask shows port %d (internal), but external port is %d"`, p.InternalPort, p.Port))
	}
	return append(cmds, `echo ""`, "docker-compose up --build")
}
