package lib

import (
	"github.com/jakoblorz/go-scaffold/internal/models"
)

const projectRootToken = "{projectRoot}"

// targetsFor returns the target table for a library type.
func targetsFor(libType models.LibType) *models.Targets {
	targets := models.NewTargets()

	switch libType {
	case models.LibTypePython:
		targets.Set("build", models.TargetConfiguration{
			Executor: "@nxlv/python:build",
			Outputs:  []string{"{projectRoot}/dist"},
			Options: map[string]any{
				"ignorePaths": []string{".venv", ".tox", "tests/"},
			},
		})
		targets.Set("test", models.RunCommand("poetry run pytest tests/", projectRootToken))
		targets.Set("lint", models.RunCommand("poetry run ruff check src/", projectRootToken))
		targets.Set("install", models.RunCommand("poetry install", projectRootToken))

	case models.LibTypePHP:
		targets.Set("test", models.RunCommand("composer exec phpunit", projectRootToken))
		targets.Set("lint", models.RunCommand("composer exec php-cs-fixer fix --dry-run --diff", projectRootToken))
		targets.Set("lint:fix", models.RunCommand("composer exec php-cs-fixer fix", projectRootToken))

	case models.LibTypeIOS:
		targets.Set("build", models.RunCommand("swift build", projectRootToken))
		targets.Set("test", models.RunCommand("swift test", projectRootToken))
		targets.Set("lint", models.RunCommand("swiftlint", projectRootToken))

	case models.LibTypeAndroid:
		targets.Set("build", models.TargetConfiguration{
			Executor: "@nx/gradle:gradle",
			Options:  map[string]any{"task": "assembleDebug"},
		})
		targets.Set("test", models.TargetConfiguration{
			Executor: "@nx/gradle:gradle",
			Options:  map[string]any{"task": "testDebugUnitTest"},
		})
		targets.Set("lint", models.RunCommand("./gradlew ktlintCheck", projectRootToken))

	default:
		targets.Set("build", models.TargetConfiguration{
			Executor: "@nx/js:tsc",
			Outputs:  []string{"{options.outputPath}"},
			Options: map[string]any{
				"outputPath": "dist/{projectRoot}",
				"main":       "{projectRoot}/src/index.ts",
				"tsConfig":   "{projectRoot}/tsconfig.lib.json",
			},
		})
		targets.Set("test", models.TargetConfiguration{
			Executor: "@nx/vite:test",
			Outputs:  []string{"{workspaceRoot}/coverage/{projectRoot}"},
		})
		targets.Set("lint", models.TargetConfiguration{
			Executor: "@nx/eslint:lint",
			Outputs:  []string{"{options.outputFile}"},
			Options: map[string]any{
				"lintFilePatterns": []string{"{projectRoot}/**/*.{ts,tsx,js,jsx}"},
			},
		})
	}

	return targets
}
