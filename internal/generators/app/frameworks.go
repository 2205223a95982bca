package app

import (
	"maps"
	"slices"

	"github.com/jakoblorz/go-scaffold/internal/models"
)

const (
	FrameworkNone    = "none"
	FrameworkBasic   = "basic"
	FrameworkReact   = "react"
	FrameworkAngular = "angular"
	FrameworkNextJS  = "nextjs"
	FrameworkNestJS  = "nestjs"
	FrameworkFlask   = "flask"
	FrameworkDjango  = "django"
	FrameworkFastAPI = "fastapi"
	FrameworkSymfony = "symfony"
	FrameworkLaravel = "laravel"
)

// frameworkTypes maps every known framework to the type it implies.
var frameworkTypes = map[string]models.AppType{
	FrameworkReact:   models.AppTypeWeb,
	FrameworkAngular: models.AppTypeWeb,
	FrameworkNextJS:  models.AppTypeWeb,
	FrameworkNestJS:  models.AppTypeWeb,
	"express":        models.AppTypeWeb,
	"fastify":        models.AppTypeWeb,
	"vue":            models.AppTypeWeb,
	"svelte":         models.AppTypeWeb,
	FrameworkFlask:   models.AppTypePython,
	FrameworkDjango:  models.AppTypePython,
	FrameworkFastAPI: models.AppTypePython,
	FrameworkSymfony: models.AppTypePHP,
	FrameworkLaravel: models.AppTypePHP,
}

// externalFrameworks are web frameworks scaffolded by their own generator.
var externalFrameworks = map[string]string{
	FrameworkReact:   "@nx/react",
	FrameworkAngular: "@nx/angular",
	FrameworkNextJS:  "@nx/next",
	FrameworkNestJS:  "@nx/nest",
}

var (
	frontendFrameworks = []string{"react", "angular", "vue", "svelte"}
	backendFrameworks  = []string{"nestjs", "express", "fastify", "koa"}
)

// frameworksWithDocker ship their own container files, so the generic
// docker template set is skipped for them.
var frameworksWithDocker = map[models.AppType][]string{
	models.AppTypePython: {FrameworkDjango, FrameworkFastAPI},
	models.AppTypePHP:    {FrameworkSymfony, FrameworkLaravel},
}

// Profile describes how a server framework is exposed.
type Profile struct {
	Port         int
	InternalPort int
	HealthPath   string
	AdminPath    string
	DocsPath     string
}

var pythonProfiles = map[string]Profile{
	FrameworkFlask:   {Port: 5001, InternalPort: 5000, HealthPath: "/api/health"},
	FrameworkDjango:  {Port: 8001, InternalPort: 8000, HealthPath: "/api/health/", AdminPath: "/admin/"},
	FrameworkFastAPI: {Port: 8002, InternalPort: 8000, HealthPath: "/api/health", DocsPath: "/docs"},
	FrameworkBasic:   {Port: 5001, InternalPort: 5000, HealthPath: "/health"},
}

var phpProfiles = map[string]Profile{
	FrameworkSymfony: {Port: 8003, InternalPort: 80, HealthPath: "/api/health"},
	FrameworkLaravel: {Port: 8004, InternalPort: 80, HealthPath: "/api/health"},
}

// Frameworks lists the frameworks that imply each application type.
func Frameworks() map[models.AppType][]string {
	out := make(map[models.AppType][]string)
	for fw, at := range frameworkTypes {
		out[at] = append(out[at], fw)
	}
	for _, names := range out {
		slices.Sort(names)
	}
	return out
}

// SupportedFrameworks lists every framework that implies a type, sorted.
func SupportedFrameworks() []string {
	return slices.Sorted(maps.Keys(frameworkTypes))
}

// IsExternal reports whether a web framework is delegated to its own
// generator.
func IsExternal(framework string) bool {
	_, ok := externalFrameworks[framework]
	return ok
}

// Scaffoldable lists the frameworks an application type can be generated
// with, default first. Native types take no framework.
func Scaffoldable(at models.AppType) []string {
	switch at {
	case models.AppTypeWeb:
		return []string{FrameworkNone, FrameworkReact, FrameworkAngular, FrameworkNextJS, FrameworkNestJS}
	case models.AppTypePython:
		return []string{FrameworkBasic, FrameworkFlask, FrameworkDjango, FrameworkFastAPI}
	case models.AppTypePHP:
		return []string{FrameworkSymfony, FrameworkLaravel}
	}
	return nil
}
