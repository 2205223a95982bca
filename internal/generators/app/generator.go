package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jakoblorz/go-scaffold/internal/config"
	"github.com/jakoblorz/go-scaffold/internal/generators"
	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/tasks"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/toolchain"
	"github.com/jakoblorz/go-scaffold/internal/tree"
	"github.com/jakoblorz/go-scaffold/internal/workspace"
)

// Callback runs after the staged tree was committed. It may be nil.
type Callback func(ctx context.Context) error

// Deps are the collaborators of a Generator.
type Deps struct {
	Log    logrus.FieldLogger
	Runner toolchain.Runner
	Config config.Config

	// Frameworks scaffolds react, angular, nextjs and nestjs applications.
	// Defaults to running the Nx plugin generators through Runner.
	Frameworks FrameworkGenerator

	// DryRun only logs the external commands that would create files
	// outside the tree.
	DryRun bool
}

// Generator scaffolds applications under apps/.
type Generator struct {
	log        logrus.FieldLogger
	runner     toolchain.Runner
	cfg        config.Config
	frameworks FrameworkGenerator
	installer  *tasks.Installer
	dryRun     bool
}

// New creates a Generator.
func New(deps Deps) *Generator {
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	runner := deps.Runner
	if runner == nil {
		runner = toolchain.NewOSRunner()
	}
	frameworks := deps.Frameworks
	if frameworks == nil {
		frameworks = NewNxFrameworkGenerator(runner, log)
	}

	return &Generator{
		log:        log,
		runner:     runner,
		cfg:        deps.Config,
		frameworks: frameworks,
		installer:  tasks.NewInstaller(runner, log, deps.Config.InstallCommand),
		dryRun:     deps.DryRun,
	}
}

// Generate stages a new application in t. The caller commits the tree and
// then runs the returned callback to install packages.
func (g *Generator) Generate(ctx context.Context, t *tree.Tree, raw RawOptions) (Callback, error) {
	opts, err := Normalize(g.log, g.cfg, raw)
	if err != nil {
		g.log.Errorf("❌ Error creating application: %v", err)
		return nil, err
	}

	g.log.Infof("Creating %s application: %s", opts.Type, opts.ProjectName)

	if err := g.checkAvailable(t, opts); err != nil {
		g.log.Errorf("❌ Error creating application: %v", err)
		return nil, err
	}
	if err := g.scaffold(ctx, t, opts); err != nil {
		g.log.Errorf("❌ Error creating application: %v", err)
		return nil, err
	}

	if _, err := tree.FormatFiles(t); err != nil {
		return nil, fmt.Errorf("failed to format files: %w", err)
	}

	g.log.Infof("✅ Successfully created %s application: %s", opts.Type, opts.ProjectName)
	g.log.Infof("📁 Location: %s", opts.ProjectRoot)
	if opts.Docker {
		g.log.Info("🐳 Docker support added")
	}

	if task := g.installer.Task(t); task != nil {
		return Callback(task), nil
	}
	return nil, nil
}

// Notes renders the next-steps notes for the application raw describes.
// It returns nil when the template set has none, as for applications
// generated by a framework plugin.
func (g *Generator) Notes(raw RawOptions) (*templates.Note, error) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	opts, err := Normalize(log, g.cfg, raw)
	if err != nil {
		return nil, err
	}

	set := TemplateSet(opts)
	if set == "" {
		return nil, nil
	}
	return templates.Notes(set, g.vars(opts))
}

// TemplateSet returns the template set the options materialize, used for
// next-steps notes.
func TemplateSet(opts Options) string {
	switch opts.Type {
	case models.AppTypeWeb:
		if opts.Framework == FrameworkNone {
			return "app/web/basic"
		}
		return ""
	case models.AppTypePython:
		return "app/python/" + opts.Framework
	case models.AppTypePHP:
		return "app/php/" + opts.Framework
	case models.AppTypeIOS:
		return "app/ios"
	case models.AppTypeAndroid:
		return "app/android"
	}
	return ""
}

func (g *Generator) scaffold(ctx context.Context, t *tree.Tree, opts Options) error {
	switch opts.Type {
	case models.AppTypeWeb:
		return g.scaffoldWeb(ctx, t, opts)
	case models.AppTypePython:
		return g.scaffoldPython(t, opts)
	case models.AppTypePHP:
		return g.scaffoldPHP(t, opts)
	case models.AppTypeIOS:
		return g.scaffoldIOS(ctx, t, opts)
	case models.AppTypeAndroid:
		return g.scaffoldAndroid(t, opts)
	}
	return generators.Configuration("Application type %s is not supported", opts.Type)
}

// checkAvailable rejects a project name or root that is already taken.
func (g *Generator) checkAvailable(t *tree.Tree, opts Options) error {
	if _, err := workspace.FindProject(t, opts.ProjectName); err == nil {
		return &generators.Error{
			Kind: generators.ErrConfiguration,
			Msg:  fmt.Sprintf("cannot create %s", opts.ProjectName),
			Err:  workspace.ErrProjectExists,
		}
	} else if !errors.Is(err, workspace.ErrProjectNotFound) {
		return err
	}

	manifest := path.Join(opts.ProjectRoot, workspace.ManifestFile)
	if t.Exists(manifest) {
		return &generators.Error{
			Kind: generators.ErrConfiguration,
			Msg:  fmt.Sprintf("cannot create %s, %s already exists", opts.ProjectName, manifest),
			Err:  workspace.ErrProjectExists,
		}
	}
	return nil
}

// baseVars are available to every application template.
func (g *Generator) baseVars(opts Options) templates.Vars {
	return templates.Vars{
		"name":             opts.Name,
		"className":        opts.ClassName,
		"propertyName":     opts.PropertyName,
		"constantName":     opts.ConstantName,
		"fileName":         opts.FileName,
		"projectName":      opts.ProjectName,
		"projectRoot":      opts.ProjectRoot,
		"projectDirectory": opts.ProjectDirectory,
		"offsetFromRoot":   workspace.OffsetFromRoot(opts.ProjectRoot),
		"framework":        opts.Framework,
		"tags":             opts.Tags,
		"npmScope":         g.cfg.NpmScope,
		"organization":     g.cfg.Organization,
	}
}

// vars returns the template variables of the application type.
func (g *Generator) vars(opts Options) templates.Vars {
	vars := g.baseVars(opts)

	switch opts.Type {
	case models.AppTypePython:
		profile := pythonProfiles[opts.Framework]
		return merge(vars, templates.Vars{
			"moduleName":    models.Underscored(opts.FileName),
			"pythonVersion": g.cfg.PythonVersion,
			"port":          profile.Port,
			"internalPort":  profile.InternalPort,
			"healthPath":    profile.HealthPath,
			"adminPath":     profile.AdminPath,
			"docsPath":      profile.DocsPath,
		})
	case models.AppTypePHP:
		profile := phpProfiles[opts.Framework]
		return merge(vars, templates.Vars{
			"phpVersion":   g.cfg.PHPVersion,
			"port":         profile.Port,
			"internalPort": profile.InternalPort,
			"healthPath":   profile.HealthPath,
		})
	case models.AppTypeIOS:
		return merge(vars, templates.Vars{
			"uiFramework":      "SwiftUI",
			"architecture":     "MVVM",
			"iosVersion":       g.cfg.IOS.MinVersion,
			"swiftVersion":     g.cfg.IOS.SwiftVersion,
			"bundleIdentifier": bundleIdentifier(opts),
		})
	case models.AppTypeAndroid:
		android := g.cfg.Android
		return merge(vars, templates.Vars{
			"packageName":   opts.PackageName,
			"packagePath":   strings.ReplaceAll(opts.PackageName, ".", "/"),
			"minSdk":        android.MinSdk,
			"compileSdk":    android.CompileSdk,
			"targetSdk":     android.TargetSdk,
			"kotlinVersion": android.KotlinVersion,
			"gradleVersion": android.GradleVersion,
			"agpVersion":    android.AGPVersion,
		})
	}
	return vars
}

// register writes the manifest once all targets, Docker ones included,
// are known.
func register(t *tree.Tree, opts Options, sourceRoot string, targets *models.Targets) error {
	return workspace.AddProjectConfiguration(t, models.ProjectConfiguration{
		Name:        opts.ProjectName,
		Root:        opts.ProjectRoot,
		ProjectType: models.ProjectTypeApplication,
		SourceRoot:  sourceRoot,
		Tags:        opts.Tags,
		Targets:     targets,
	})
}

func merge(base templates.Vars, extra templates.Vars) templates.Vars {
	out := make(templates.Vars, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}
