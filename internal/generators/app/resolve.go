package app

import (
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jakoblorz/go-scaffold/internal/generators"
	"github.com/jakoblorz/go-scaffold/internal/models"
)

// InferType maps a framework to the application type it implies.
func InferType(framework string) (models.AppType, bool) {
	at, ok := frameworkTypes[strings.ToLower(strings.TrimSpace(framework))]
	return at, ok
}

// ResolveType decides the application type: an explicit type always wins,
// otherwise it is inferred from the framework.
func ResolveType(log logrus.FieldLogger, explicit, framework string) (models.AppType, error) {
	if explicit != "" {
		at, err := models.ParseAppType(explicit)
		if err != nil {
			return "", generators.Configuration("%s", err.Error())
		}
		if inferred, ok := InferType(framework); ok && inferred != at {
			log.Warnf("⚠️  Framework '%s' usually implies type '%s', using explicit type '%s'", framework, inferred, at)
		}
		return at, nil
	}

	if framework == "" {
		return "", generators.Configuration("Application type must be specified. Please provide --type=web|python|php|ios-native|android-native or use --framework to auto-detect type.")
	}

	at, ok := InferType(framework)
	if !ok {
		return "", generators.Configuration("Unknown framework '%s'. Supported frameworks: %s", framework, strings.Join(SupportedFrameworks(), ", "))
	}
	log.Infof("🎯 Auto-detected type '%s' from framework '%s'", at, framework)
	return at, nil
}

// resolveFramework settles the framework for a resolved type and rejects
// combinations no routine can scaffold.
func resolveFramework(log logrus.FieldLogger, at models.AppType, framework string) (string, error) {
	framework = strings.ToLower(strings.TrimSpace(framework))

	switch at {
	case models.AppTypeIOS, models.AppTypeAndroid:
		if framework != "" && framework != FrameworkNone {
			log.Warnf("⚠️  Framework '%s' is ignored for %s applications", framework, at)
		}
		return FrameworkNone, nil

	case models.AppTypeWeb:
		if framework == "" || framework == FrameworkNone || framework == FrameworkBasic {
			return FrameworkNone, nil
		}
		if !IsExternal(framework) {
			return "", generators.Configuration("Framework %s is not supported for web applications", framework)
		}
		return framework, nil

	case models.AppTypePython:
		if framework == "" || framework == FrameworkNone {
			return FrameworkBasic, nil
		}
		if _, ok := pythonProfiles[framework]; !ok {
			return "", generators.Configuration("Framework %s is not supported for python applications", framework)
		}
		return framework, nil

	case models.AppTypePHP:
		if framework == "" || framework == FrameworkNone {
			return FrameworkSymfony, nil
		}
		if _, ok := phpProfiles[framework]; !ok {
			return "", generators.Configuration("Framework %s is not supported for php applications", framework)
		}
		return framework, nil
	}

	return "", generators.Configuration("Application type %s is not supported", at)
}

// resolveWebKind classifies a web application for container selection.
func resolveWebKind(log logrus.FieldLogger, explicit models.WebAppKind, framework string) models.WebAppKind {
	if explicit != "" {
		log.Infof("🎯 Using explicit app type: %s", explicit)
		return explicit
	}

	switch {
	case slices.Contains(frontendFrameworks, framework):
		log.Infof("🎯 Auto-detected frontend app (framework: %s)", framework)
		return models.WebAppFrontend
	case slices.Contains(backendFrameworks, framework):
		log.Infof("🎯 Auto-detected backend app (framework: %s)", framework)
		return models.WebAppBackend
	case framework == FrameworkNextJS:
		log.Warn("⚠️  Next.js detected - defaulting to backend (SSR/API). Use --app-type=frontend for static export.")
		return models.WebAppBackend
	case framework == "" || framework == FrameworkNone:
		log.Info("🎯 Basic web app detected - using frontend (static assets)")
		return models.WebAppFrontend
	}

	log.Warnf("⚠️  Unknown framework '%s' - defaulting to frontend. Use --app-type=backend if this is a server application.", framework)
	return models.WebAppFrontend
}
