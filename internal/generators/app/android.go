package app

import (
	"path"

	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

func (g *Generator) scaffoldAndroid(t *tree.Tree, opts Options) error {
	g.log.Infof("📱 Creating Android application: %s", opts.ProjectName)

	g.checkAndroidEnvironment()

	root := opts.ProjectRoot
	targets := models.NewTargets()
	targets.Set("build", withOutputs(models.RunCommand("./gradlew assembleDebug", root), "{projectRoot}/app/build/outputs"))
	targets.Set("build:release", withOutputs(models.RunCommand("./gradlew assembleRelease", root), "{projectRoot}/app/build/outputs"))
	targets.Set("test", withOutputs(models.RunCommand("./gradlew testDebugUnitTest", root), "{projectRoot}/app/build/reports"))
	targets.Set("lint", models.RunCommand("./gradlew lint", root))
	targets.Set("install", models.RunCommand("./gradlew installDebug", root))
	targets.Set("clean", models.RunCommand("./gradlew clean", root))

	vars := g.vars(opts)

	g.log.Info("🏗️  Generating Android project structure...")
	if _, err := templates.Generate(t, "app/android", root, vars); err != nil {
		return err
	}
	g.log.Info("📦 Includes: Gradle build, Kotlin source, Jetpack Compose UI, unit tests")

	g.setupGradleWrapper(t, opts)

	if opts.Docker {
		if err := g.addDockerSupport(t, opts, vars, targets); err != nil {
			return err
		}
	}

	if err := register(t, opts, path.Join(root, "app/src/main"), targets); err != nil {
		return err
	}

	g.log.Info("✅ Android application created successfully!")
	g.log.Infof("📁 Location: %s", root)
	g.log.Infof("🎯 Build from command line: cd %s && ./gradlew assembleDebug", root)
	if opts.Docker {
		g.log.Info("🐳 Docker build: docker-compose up --build")
	}
	return nil
}

// checkAndroidEnvironment only reports; a missing SDK does not stop
// generation.
func (g *Generator) checkAndroidEnvironment() {
	g.log.Info("🔍 Checking Android development environment...")

	sdk := g.runner.Getenv("ANDROID_HOME")
	if sdk == "" {
		sdk = g.runner.Getenv("ANDROID_SDK_ROOT")
	}
	if sdk == "" {
		g.log.Warn("⚠️  ANDROID_HOME or ANDROID_SDK_ROOT not found. Please install Android SDK.")
		g.log.Info("💡 Install Android Studio from: https://developer.android.com/studio")
		return
	}
	g.log.Infof("✅ Android SDK found at: %s", sdk)
}

func (g *Generator) setupGradleWrapper(t *tree.Tree, opts Options) {
	g.log.Info("🔧 Setting up Gradle wrapper...")

	gradlew := path.Join(opts.ProjectRoot, "gradlew")
	if err := t.SetExecutable(gradlew); err != nil {
		g.log.Warnf("⚠️  Could not setup Gradle wrapper: %v", err)
		g.log.Warn("⚠️  Run 'chmod +x gradlew' for local builds")
		return
	}
	g.log.Info("✅ Gradle wrapper marked executable")
}
