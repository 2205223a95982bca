package app

import (
	"fmt"
	"path"
	"slices"

	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/tree"
	"github.com/jakoblorz/go-scaffold/internal/workspace"
)

const (
	TargetDockerBuild = "docker-build"
	TargetDockerRun   = "docker-run"
)

// addDockerSupport materializes the container template for the project
// and adds the docker-build and docker-run targets. With targets set the
// routine still owns the manifest and registers it later; with nil the
// manifest already exists and is edited in place.
func (g *Generator) addDockerSupport(t *tree.Tree, opts Options, vars templates.Vars, targets *models.Targets) error {
	var kind models.WebAppKind
	if opts.Type == models.AppTypeWeb {
		kind = resolveWebKind(g.log, opts.WebKind, opts.Framework)
	}

	set := g.dockerTemplateSet(opts, kind)
	switch {
	case set == "":
	case !templates.HasSet(set):
		g.log.Warnf("⚠️  No Docker template for %s applications, adding targets only", opts.Type)
	default:
		if _, err := templates.Generate(t, set, opts.ProjectRoot, vars); err != nil {
			return fmt.Errorf("failed to generate Docker files: %w", err)
		}
	}

	build := models.RunCommand(fmt.Sprintf("docker build -t %s:latest .", opts.ProjectName), opts.ProjectRoot)
	run := models.RunCommand(fmt.Sprintf("docker run -p %s %s:latest", dockerPortMap(opts, kind), opts.ProjectName), opts.ProjectRoot)

	if targets != nil {
		targets.Set(TargetDockerBuild, build)
		targets.Set(TargetDockerRun, run)
		return nil
	}

	manifest := path.Join(opts.ProjectRoot, workspace.ManifestFile)
	if !t.IsFile(manifest) {
		g.log.Warnf("⚠️  %s not found, skipping Docker targets", manifest)
		return nil
	}
	if err := workspace.SetTarget(t, manifest, TargetDockerBuild, build); err != nil {
		return err
	}
	return workspace.SetTarget(t, manifest, TargetDockerRun, run)
}

// dockerTemplateSet returns the container template set, or "" when the
// framework templates already carry their own Docker files.
func (g *Generator) dockerTemplateSet(opts Options, kind models.WebAppKind) string {
	if slices.Contains(frameworksWithDocker[opts.Type], opts.Framework) {
		g.log.Infof("📦 Using %s Docker template (framework-specific)", opts.Framework)
		return ""
	}

	switch opts.Type {
	case models.AppTypeWeb:
		framework := opts.Framework
		if framework == FrameworkNone {
			framework = FrameworkBasic
		}
		g.log.Infof("📦 Using %s Docker template for %s application", kind, framework)
		return "docker/web/" + string(kind)
	case models.AppTypePython:
		g.log.Infof("📦 Using generic Python Docker template for %s application", opts.Framework)
		return "docker/python"
	case models.AppTypePHP:
		g.log.Infof("📦 Using generic PHP Docker template for %s application", opts.Framework)
		return "docker/php"
	case models.AppTypeAndroid:
		g.log.Info("📦 Using Android Docker template with Java 17 and Android SDK")
		return "docker/android"
	}
	return "docker/" + string(opts.Type)
}

func dockerPortMap(opts Options, kind models.WebAppKind) string {
	switch opts.Type {
	case models.AppTypePython:
		switch opts.Framework {
		case FrameworkDjango:
			return "8001:8000"
		case FrameworkFastAPI:
			return "8002:8000"
		}
		return "5001:5000"
	case models.AppTypePHP:
		if opts.Framework == FrameworkLaravel {
			return "8004:80"
		}
		return "8003:80"
	case models.AppTypeWeb:
		if kind == models.WebAppBackend {
			return "3000:3000"
		}
		return "8080:80"
	case models.AppTypeAndroid:
		return "8005:8080"
	}
	return "3000:3000"
}
