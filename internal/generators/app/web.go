package app

import (
	"context"

	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

func (g *Generator) scaffoldWeb(ctx context.Context, t *tree.Tree, opts Options) error {
	if opts.Framework != FrameworkNone {
		return g.scaffoldWebFramework(ctx, t, opts)
	}

	root := opts.ProjectRoot
	targets := models.NewTargets()
	targets.Set("build", withOutputs(models.RunCommand("npm run build", root), "{workspaceRoot}/dist/{projectRoot}"))
	targets.Set("serve", models.RunCommand("npm run serve", root))
	targets.Set("preview", models.RunCommand("npm run preview", root))
	targets.Set("test", withOutputs(models.RunCommand("npm run test", root), "{workspaceRoot}/coverage/{projectRoot}"))
	targets.Set("test:watch", models.RunCommand("npm run test:watch", root))
	targets.Set("test:coverage", models.RunCommand("npm run test:coverage", root))
	targets.Set("lint", withOutputs(models.RunCommand("npm run lint", root), "{options.outputFile}"))
	targets.Set("lint:fix", models.RunCommand("npm run lint:fix", root))
	targets.Set("type-check", models.RunCommand("npm run type-check", root))
	targets.Set("install", models.RunCommand("npm install", root))

	vars := g.vars(opts)
	if _, err := templates.Generate(t, "app/web/basic", root, vars); err != nil {
		return err
	}

	if opts.Docker {
		if err := g.addDockerSupport(t, opts, vars, targets); err != nil {
			return err
		}
	}

	if err := register(t, opts, root+"/src", targets); err != nil {
		return err
	}

	g.log.Info("✅ Created TypeScript web application with:")
	g.log.Info("   📦 Modern tooling: TypeScript, Vitest, ESLint")
	g.log.Info("   🧪 Testing setup: Vitest with jsdom and coverage")
	g.log.Info("   🔧 Development server: npm run serve")
	g.log.Info("   🏗️  Production build: npm run build")
	return nil
}

func (g *Generator) scaffoldWebFramework(ctx context.Context, t *tree.Tree, opts Options) error {
	fo, err := frameworkOptions(opts)
	if err != nil {
		return err
	}

	g.log.Infof("🔧 Delegating to the %s application generator", opts.Framework)
	if err := g.frameworks.Generate(ctx, t, fo); err != nil {
		return err
	}

	if opts.Docker {
		return g.addDockerSupport(t, opts, g.vars(opts), nil)
	}
	return nil
}

func withOutputs(target models.TargetConfiguration, outputs ...string) models.TargetConfiguration {
	target.Outputs = outputs
	return target
}
