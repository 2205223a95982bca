package app

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/jakoblorz/go-scaffold/internal/generators"
	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/templates"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

const xcnewFormula = "manicmaniac/tap/xcnew"

// scaffoldIOS creates the Xcode project with xcnew, which must succeed,
// and then overlays the SwiftUI templates on a best effort basis.
func (g *Generator) scaffoldIOS(ctx context.Context, t *tree.Tree, opts Options) error {
	g.log.Info("📱 Creating iOS application with integrated xcnew workflow...")

	if err := g.createXcodeProject(ctx, t, opts); err != nil {
		return err
	}

	root := opts.ProjectRoot
	project := opts.Name + ".xcodeproj"
	destination := "-destination 'generic/platform=iOS Simulator'"

	targets := models.NewTargets()
	targets.Set("open", models.RunCommand("open "+project, root))
	targets.Set("build", models.RunCommand(
		fmt.Sprintf("xcodebuild -project %s -scheme %s %s build", project, opts.Name, destination), root))
	targets.Set("test", models.RunCommand(
		fmt.Sprintf("xcodebuild -project %s -scheme %s -destination 'platform=iOS Simulator,name=iPhone 15' test", project, opts.Name), root))
	targets.Set("lint", models.RunCommand("swiftlint --config swiftlint.yml", root))

	if opts.Docker {
		if err := g.addDockerSupport(t, opts, g.vars(opts), targets); err != nil {
			return err
		}
	}

	if err := register(t, opts, path.Join(root, opts.Name), targets); err != nil {
		return err
	}

	g.enhanceXcodeProject(t, opts)

	g.log.Info("✅ iOS application created successfully!")
	g.log.Infof("📁 Location: %s", root)
	g.log.Infof("🚀 Ready to open: open %s/%s", root, project)
	g.log.Info("🎯 Then build and run with ⌘+R in Xcode")
	return nil
}

func (g *Generator) createXcodeProject(ctx context.Context, t *tree.Tree, opts Options) error {
	g.log.Info("🔨 Creating Xcode project with xcnew...")

	args := []string{
		opts.Name,
		"-i", bundleIdentifier(opts),
		"-S",
		"-t",
		opts.ProjectDirectory,
	}

	_, lookErr := g.runner.LookPath("xcnew")
	if g.dryRun {
		if lookErr != nil {
			g.log.Infof("Would run: brew install %s", xcnewFormula)
		}
		g.log.Infof("Would run: xcnew %s", strings.Join(args, " "))
		return nil
	}

	if lookErr != nil {
		g.log.Warn("⚠️  xcnew not found. Installing via Homebrew...")
		if _, err := g.runner.Run(ctx, t.Root(), "brew", "install", xcnewFormula); err != nil {
			return generators.ExternalTool(err, "Failed to install xcnew. Please install manually: brew install %s", xcnewFormula)
		}
	}

	g.log.Debugf("Running: xcnew %v", args)

	if _, err := g.runner.Run(ctx, t.Abs("apps"), "xcnew", args...); err != nil {
		return generators.ExternalTool(err, "Failed to create Xcode project")
	}
	g.log.Info("✅ Xcode project created successfully")
	return nil
}

// enhanceXcodeProject materializes the iOS templates and splices the App
// entry point and ContentView over the files xcnew generated. Every source
// is read before anything is written, and failures only warn.
func (g *Generator) enhanceXcodeProject(t *tree.Tree, opts Options) {
	g.log.Info("🎨 Enhancing project with templates...")

	if _, err := templates.Generate(t, "app/ios", opts.ProjectRoot, g.vars(opts)); err != nil {
		g.log.Warnf("⚠️  Could not generate iOS templates: %v", err)
		return
	}

	appPath := path.Join(opts.ProjectRoot, opts.Name)
	templateDir := path.Join(appPath, "App")
	overlay := []struct{ from, to string }{
		{path.Join(templateDir, opts.Name+"App.swift"), path.Join(appPath, models.Underscored(opts.Name)+"App.swift")},
		{path.Join(templateDir, "ContentView.swift"), path.Join(appPath, "ContentView.swift")},
	}

	contents := make([][]byte, len(overlay))
	for i, o := range overlay {
		data, err := t.Read(o.from)
		if err != nil {
			g.log.Warnf("⚠️  Could not replace some xcnew files: %v", err)
			g.log.Info("✅ Templates available in App/ subdirectory")
			return
		}
		contents[i] = data
	}

	for i, o := range overlay {
		if err := t.Write(o.to, contents[i]); err != nil {
			g.log.Warnf("⚠️  Could not replace some xcnew files: %v", err)
			return
		}
		if err := t.Delete(o.from); err != nil {
			g.log.Warnf("⚠️  Could not remove %s: %v", o.from, err)
			return
		}
	}
	g.log.Info("✅ Replaced App entry point and ContentView with templates")

	if len(t.Children(templateDir)) == 0 {
		if err := t.Delete(templateDir); err == nil {
			g.log.Info("🧹 Cleaned up empty App/ directory")
		}
	}
}

func bundleIdentifier(opts Options) string {
	return opts.OrganizationIdentifier + "." + opts.PropertyName
}
