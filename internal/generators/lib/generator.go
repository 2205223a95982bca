package lib

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jakoblorz/go-scaffold/internal/config"
	"github.com/jakoblorz/go-scaffold/internal/generators"
	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/tree"
	"github.com/jakoblorz/go-scaffold/internal/workspace"
)

// Deps are the collaborators of a Generator.
type Deps struct {
	Log    logrus.FieldLogger
	Config config.Config
}

// Generator scaffolds libraries under libs/.
type Generator struct {
	log logrus.FieldLogger
	cfg config.Config
}

// New creates a Generator.
func New(deps Deps) *Generator {
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{log: log, cfg: deps.Config}
}

// Generate stages a new library in t.
func (g *Generator) Generate(_ context.Context, t *tree.Tree, raw RawOptions) error {
	opts, err := Normalize(g.cfg, raw)
	if err != nil {
		return err
	}

	if _, err := workspace.FindProject(t, opts.ProjectName); err == nil {
		return &generators.Error{
			Kind: generators.ErrConfiguration,
			Msg:  fmt.Sprintf("cannot create %s", opts.ProjectName),
			Err:  workspace.ErrProjectExists,
		}
	} else if !errors.Is(err, workspace.ErrProjectNotFound) {
		return err
	}

	g.log.Infof("Creating %s library: %s", opts.Type, opts.ProjectName)

	err = workspace.AddProjectConfiguration(t, models.ProjectConfiguration{
		Name:        opts.ProjectName,
		Root:        opts.ProjectRoot,
		ProjectType: models.ProjectTypeLibrary,
		SourceRoot:  path.Join(opts.ProjectRoot, "src"),
		Tags:        opts.Tags,
		Targets:     targetsFor(opts.Type),
	})
	if err != nil {
		return err
	}

	vars := g.vars(opts)
	if _, err := templates.Generate(t, TemplateSet(opts.Type), opts.ProjectRoot, vars); err != nil {
		return err
	}
	if _, err := templates.Generate(t, "lib/common", opts.ProjectRoot, vars); err != nil {
		return err
	}

	if _, err := tree.FormatFiles(t); err != nil {
		return fmt.Errorf("failed to format files: %w", err)
	}

	g.log.Infof("✅ Successfully created %s library: %s", opts.Type, opts.ProjectName)
	g.log.Infof("📁 Location: %s", opts.ProjectRoot)
	return nil
}

// Notes renders the next-steps notes for the library raw describes.
func (g *Generator) Notes(raw RawOptions) (*templates.Note, error) {
	opts, err := Normalize(g.cfg, raw)
	if err != nil {
		return nil, err
	}
	return templates.Notes("lib/common", g.vars(opts))
}

// TemplateSet returns the type-specific template set of a library type.
func TemplateSet(libType models.LibType) string {
	if libType.IsTypeScript() {
		return "lib/typescript"
	}
	return "lib/" + strings.TrimSuffix(string(libType), "-native")
}

func (g *Generator) vars(opts Options) templates.Vars {
	pkg := packageName(g.cfg, opts.FileName)

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
		"description":      description(opts),
		"importPath":       opts.ImportPath,
		"publishable":      opts.Publishable,
		"npmScope":         g.cfg.NpmScope,
		"moduleName":       models.Underscored(opts.FileName),
		"pythonVersion":    g.cfg.PythonVersion,
		"namespace":        opts.ClassName,
		"phpVersion":       g.cfg.PHPVersion,
		"swiftVersion":     g.cfg.IOS.SwiftVersion,
		"iosVersion":       g.cfg.IOS.MinVersion,
		"bundleIdentifier": g.cfg.IOSOrganizationIdentifier() + "." + opts.FileName,
		"packageName":      pkg,
		"packagePath":      strings.ReplaceAll(pkg, ".", "/"),
		"agpVersion":       g.cfg.Android.AGPVersion,
		"kotlinVersion":    g.cfg.Android.KotlinVersion,
		"compileSdk":       g.cfg.Android.CompileSdk,
		"minSdk":           g.cfg.Android.MinSdk,
	}
}

var languages = map[models.LibType]string{
	models.LibTypePython:  "Python",
	models.LibTypePHP:     "PHP",
	models.LibTypeIOS:     "iOS",
	models.LibTypeAndroid: "Android",
}

func description(opts Options) string {
	lang, ok := languages[opts.Type]
	if !ok {
		lang = "TypeScript " + opts.Type.String()
	}
	return fmt.Sprintf("%s - %s library", opts.Name, lang)
}
