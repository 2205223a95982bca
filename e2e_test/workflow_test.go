package e2e_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jakoblorz/go-scaffold/internal/cli"
	"github.com/jakoblorz/go-scaffold/internal/config"
	"github.com/jakoblorz/go-scaffold/internal/filesystem"
	"github.com/jakoblorz/go-scaffold/internal/generators/app"
	"github.com/jakoblorz/go-scaffold/internal/generators/lib"
	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/toolchain"
	"github.com/jakoblorz/go-scaffold/internal/tree"
	"github.com/jakoblorz/go-scaffold/internal/workspace"
)

func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()

	// Setup mock workspace
	wb := workspace.NewWorkspaceBuilder("/test-workspace")
	wb.AddProject("shared", "libs/shared", models.ProjectTypeLibrary)
	fs := wb.Build()

	log, _ := test.NewNullLogger()
	runner := toolchain.NewMockRunner()
	apps := app.New(app.Deps{Log: log, Runner: runner, Config: config.Default()})
	libs := lib.New(lib.Deps{Log: log, Config: config.Default()})

	// Test: Workspace detection
	ws := workspace.New(fs)
	require.NoError(t, ws.Detect())
	require.Equal(t, []string{"shared"}, ws.GetProjectNames())

	// Test: Web application without framework
	tr := ws.Tree()
	callback, err := apps.Generate(ctx, tr, app.RawOptions{Name: "storefront", Type: "web"})
	require.NoError(t, err)
	require.False(t, fs.Exists("/test-workspace/apps/storefront/project.json"), "nothing is written before commit")
	require.NoError(t, tr.Commit())

	for _, file := range []string{"project.json", "src/main.ts", "index.html"} {
		require.True(t, fs.Exists(filepath.Join("/test-workspace/apps/storefront", file)), file)
	}

	require.NotNil(t, callback)
	require.NoError(t, callback(ctx))
	require.Equal(t, []string{"npm install"}, runner.CommandLines())

	// Test: Flask application, type inferred from the framework
	tr = ws.Tree()
	_, err = apps.Generate(ctx, tr, app.RawOptions{Name: "orders", Framework: "flask", Tags: "a, b ,c"})
	require.NoError(t, err)
	require.NoError(t, tr.Commit())

	manifest, err := fs.ReadFile("/test-workspace/apps/orders/project.json")
	require.NoError(t, err)
	require.Equal(t, "apps/orders", gjson.GetBytes(manifest, "root").String())
	require.Equal(t, []string{"a", "b", "c"}, stringSlice(gjson.GetBytes(manifest, "tags")))
	require.Contains(t, gjson.GetBytes(manifest, "targets.serve.options.commands").Raw, "http://localhost:5001")
	require.True(t, fs.Exists("/test-workspace/apps/orders/src/app.py"))

	// Test: Library
	tr = ws.Tree()
	require.NoError(t, libs.Generate(ctx, tr, lib.RawOptions{Name: "ui-kit", Type: "ui"}))
	require.NoError(t, tr.Commit())

	// Test: New projects are discovered
	ws = workspace.New(fs)
	require.NoError(t, ws.Detect())
	require.ElementsMatch(t, []string{"shared", "storefront", "orders", "ui-kit"}, ws.GetProjectNames())

	// Test: Names are taken
	_, err = apps.Generate(ctx, ws.Tree(), app.RawOptions{Name: "orders", Type: "python"})
	require.ErrorIs(t, err, workspace.ErrProjectExists)
	require.ErrorIs(t, libs.Generate(ctx, ws.Tree(), lib.RawOptions{Name: "shared"}), workspace.ErrProjectExists)
}

func TestKitchensink(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS("../kitchensink")))
	t.Chdir(filepath.Join(dir, "apps"))

	runner := toolchain.NewMockRunner()
	execute := func(args ...string) string {
		t.Helper()

		var out bytes.Buffer
		cmd := cli.NewRootCommand(filesystem.NewOSFileSystem(), runner)
		cmd.SetArgs(args)
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	out := execute("app", "orders", "--framework=django", "--skip-install")
	require.Contains(t, out, "CREATE apps/orders/manage.py")

	manifest, err := os.ReadFile(filepath.Join(dir, "apps/orders/project.json"))
	require.NoError(t, err)
	require.Equal(t, "docker run -p 8001:8000 orders:latest",
		gjson.GetBytes(manifest, "targets.docker-run.options.command").String())

	pyproject, err := os.ReadFile(filepath.Join(dir, "apps/orders/pyproject.toml"))
	require.NoError(t, err)
	require.Contains(t, string(pyproject), `python = "^3.12"`)

	execute("app", "field-notes", "--type=android-native")
	gradlew, err := os.Stat(filepath.Join(dir, "apps/field-notes/gradlew"))
	require.NoError(t, err)
	require.NotZero(t, gradlew.Mode().Perm()&0100)
	require.DirExists(t, filepath.Join(dir, "apps/field-notes/app/src/main/java/com/kitchen_sink/fieldNotes"))

	execute("lib", "ui-kit", "--type=ui")
	pkg, err := os.ReadFile(filepath.Join(dir, "libs/ui-kit/package.json"))
	require.NoError(t, err)
	require.Equal(t, "@kitchensink/ui-kit", gjson.GetBytes(pkg, "name").String())

	require.Empty(t, runner.Calls())
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name  string
		raw   app.RawOptions
		files []string
	}{
		{
			name:  "web without framework",
			raw:   app.RawOptions{Name: "test-web-app", Type: "web", Framework: "none"},
			files: []string{"apps/test-web-app/project.json", "apps/test-web-app/src/main.ts", "apps/test-web-app/index.html"},
		},
		{
			name:  "flask",
			raw:   app.RawOptions{Name: "flask-app", Type: "python", Framework: "flask"},
			files: []string{"apps/flask-app/project.json", "apps/flask-app/pyproject.toml", "apps/flask-app/src/app.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := workspace.NewWorkspaceBuilder("/test-workspace")
			tr := tree.New(wb.Build(), wb.Root())

			log, _ := test.NewNullLogger()
			gen := app.New(app.Deps{Log: log, Runner: toolchain.NewMockRunner(), Config: config.Default()})

			_, err := gen.Generate(context.Background(), tr, tt.raw)
			require.NoError(t, err)
			for _, file := range tt.files {
				require.True(t, tr.IsFile(file), file)
			}
		})
	}
}

func stringSlice(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}
