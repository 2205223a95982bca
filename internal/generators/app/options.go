package app

import (
	"path"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/jakoblorz/go-scaffold/internal/config"
	"github.com/jakoblorz/go-scaffold/internal/generators"
	"github.com/jakoblorz/go-scaffold/internal/models"
)

// RawOptions are the options as the caller passed them.
type RawOptions struct {
	Name                   string `json:"name" validate:"required"`
	Type                   string `json:"type" validate:"omitempty,oneof=web python php ios-native android-native"`
	Framework              string `json:"framework"`
	AppType                string `json:"appType" validate:"omitempty,oneof=frontend backend"`
	Directory              string `json:"directory"`
	Tags                   string `json:"tags"`
	Docker                 *bool  `json:"docker"`
	OrganizationIdentifier string `json:"organizationIdentifier"`
	PackageName            string `json:"packageName"`
}

// Options are the normalized options every routine works from.
type Options struct {
	models.Names

	Type      models.AppType
	Framework string
	WebKind   models.WebAppKind

	ProjectDirectory string
	ProjectName      string
	ProjectRoot      string
	Tags             []string
	Docker           bool

	OrganizationIdentifier string
	PackageName            string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Normalize validates raw options and derives everything the routines
// need. It never touches the tree.
func Normalize(log logrus.FieldLogger, cfg config.Config, raw RawOptions) (Options, error) {
	raw.Name = strings.TrimSpace(raw.Name)
	if err := validate.Struct(raw); err != nil {
		return Options{}, generators.FromValidation(err)
	}

	at, err := ResolveType(log, raw.Type, raw.Framework)
	if err != nil {
		return Options{}, err
	}
	framework, err := resolveFramework(log, at, raw.Framework)
	if err != nil {
		return Options{}, err
	}

	projectDirectory, err := generators.ProjectDirectory(raw.Name, raw.Directory)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Names:            models.NewNames(raw.Name),
		Type:             at,
		Framework:        framework,
		WebKind:          models.WebAppKind(raw.AppType),
		ProjectDirectory: projectDirectory,
		ProjectName:      strings.ReplaceAll(projectDirectory, "/", "-"),
		ProjectRoot:      path.Join("apps", projectDirectory),
		Tags:             models.ParseTags(raw.Tags),
		Docker:           at.DockerByDefault(),
	}
	if raw.Docker != nil {
		opts.Docker = *raw.Docker
	}

	switch at {
	case models.AppTypeIOS:
		opts.OrganizationIdentifier = raw.OrganizationIdentifier
		if opts.OrganizationIdentifier == "" {
			opts.OrganizationIdentifier = cfg.IOSOrganizationIdentifier()
		}
	case models.AppTypeAndroid:
		opts.PackageName = raw.PackageName
		if opts.PackageName == "" {
			opts.PackageName = cfg.AndroidPackagePrefix() + "." + opts.PropertyName
		}
		if err := generators.ValidatePackageName(opts.PackageName); err != nil {
			return Options{}, err
		}
	}

	return opts, nil
}
