package app

import (
	"fmt"
	"path"
	"strings"

	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

// phpRenames restores dotfiles that are stored without their dot.
var phpRenames = [][2]string{
	{"dotenv", ".env"},
	{"dockerignore", ".dockerignore"},
}

func (g *Generator) scaffoldPHP(t *tree.Tree, opts Options) error {
	profile := phpProfiles[opts.Framework]
	root := opts.ProjectRoot

	targets := models.NewTargets()
	targets.Set("build", withOutputs(
		models.RunCommand("composer install --no-dev --optimize-autoloader", root),
		"{projectRoot}/vendor"))
	targets.Set("serve", models.RunCommands(phpServeCommands(opts, profile), root))
	targets.Set("test", withOutputs(
		models.RunCommand("docker-compose exec app composer test", root),
		"{workspaceRoot}/coverage/{projectRoot}"))
	targets.Set("lint", models.RunCommand("docker-compose exec app composer lint", root))
	targets.Set("lint:fix", models.RunCommand("docker-compose exec app composer lint:fix", root))
	targets.Set("install", models.RunCommand("docker-compose build", root))

	vars := g.vars(opts)
	if _, err := templates.Generate(t, "app/php/"+opts.Framework, root, vars); err != nil {
		return err
	}

	for _, rename := range phpRenames {
		from, to := path.Join(root, rename[0]), path.Join(root, rename[1])
		if !t.IsFile(from) {
			continue
		}
		if err := t.Rename(from, to); err != nil {
			return fmt.Errorf("failed to rename %s: %w", from, err)
		}
	}

	if opts.Docker {
		if err := g.addDockerSupport(t, opts, vars, targets); err != nil {
			return err
		}
	}

	return register(t, opts, root+"/src", targets)
}

func phpServeCommands(opts Options, p Profile) []string {
	base := fmt.Sprintf("http://localhost:%d", p.Port)

	cmds := []string{
		fmt.Sprintf("echo '🚀 Starting %s (%s)...'", opts.ProjectName, strings.ToUpper(opts.Framework)),
		fmt.Sprintf(`echo "📡 Application will be available at: %s"`, base),
		fmt.Sprintf(`echo "🔍 Health Check: %s%s"`, base, p.HealthPath),
	}
	if opts.Framework == FrameworkSymfony {
		cmds = append(cmds, fmt.Sprintf(`echo "🛠️  Symfony Web Profiler: %s/_profiler (dev mode)"`, base))
	}
	return append(cmds,
		`echo "💾 Database: PostgreSQL on port 5435"`,
		`echo "🗄️  Redis Cache: Redis on port 6382"`,
		`echo "🔧 PhpMyAdmin: http://localhost:8081 (run with --profile admin)"`,
		`echo ""`,
		"docker-compose up --build",
	)
}
