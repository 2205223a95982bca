package lib

import (
	"path"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jakoblorz/go-scaffold/internal/config"
	"github.com/jakoblorz/go-scaffold/internal/generators"
	"github.com/jakoblorz/go-scaffold/internal/models"
)

// RawOptions are the options as the caller passed them. An empty type
// creates a TypeScript utility library.
type RawOptions struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=ui networking utility python php ios-native android-native"`
	Directory   string `json:"directory"`
	Tags        string `json:"tags"`
	Publishable bool   `json:"publishable"`
	ImportPath  string `json:"importPath" validate:"omitempty,excludesall= "`
}

// Options are the normalized library options.
type Options struct {
	models.Names

	Type             models.LibType
	ProjectDirectory string
	ProjectName      string
	ProjectRoot      string
	Tags             []string
	Publishable      bool
	ImportPath       string
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}()

// Normalize validates raw options and derives the library layout.
func Normalize(cfg config.Config, raw RawOptions) (Options, error) {
	raw.Name = strings.TrimSpace(raw.Name)
	if err := validate.Struct(raw); err != nil {
		return Options{}, generators.FromValidation(err)
	}

	libType := models.LibTypeUtility
	if raw.Type != "" {
		t, err := models.ParseLibType(raw.Type)
		if err != nil {
			return Options{}, generators.Configuration("%s", err.Error())
		}
		libType = t
	}

	projectDirectory, err := generators.ProjectDirectory(raw.Name, raw.Directory)
	if err != nil {
		return Options{}, err
	}

	names := models.NewNames(raw.Name)
	if libType == models.LibTypeAndroid {
		if err := generators.ValidatePackageName(packageName(cfg, names.FileName)); err != nil {
			return Options{}, err
		}
	}

	importPath := raw.ImportPath
	if importPath == "" {
		importPath = "@" + cfg.NpmScope + "/" + projectDirectory
	}

	return Options{
		Names:            names,
		Type:             libType,
		ProjectDirectory: projectDirectory,
		ProjectName:      strings.ReplaceAll(projectDirectory, "/", "-"),
		ProjectRoot:      path.Join("libs", projectDirectory),
		Tags:             models.ParseTags(raw.Tags),
		Publishable:      raw.Publishable,
		ImportPath:       importPath,
	}, nil
}

// packageName is the Android package of a library, com.<org>.<name>.
func packageName(cfg config.Config, fileName string) string {
	return cfg.AndroidPackagePrefix() + "." + models.Underscored(fileName)
}
