package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jakoblorz/go-scaffold/internal/filesystem"
	"github.com/jakoblorz/go-scaffold/internal/generators/app"
	"github.com/jakoblorz/go-scaffold/internal/generators/lib"
	"github.com/jakoblorz/go-scaffold/internal/toolchain"
	"github.com/jakoblorz/go-scaffold/internal/workspace"
)

const testWorkspaceRoot = "/test-workspace"

// fakePrompter answers prompts with fixed values; a nil answer aborts.
type fakePrompter struct {
	app   func(app.RawOptions) *app.RawOptions
	lib   func(lib.RawOptions) *lib.RawOptions
	calls int
}

func (p *fakePrompter) CompleteApp(raw app.RawOptions) (*app.RawOptions, error) {
	p.calls++
	return p.app(raw), nil
}

func (p *fakePrompter) CompleteLib(raw lib.RawOptions) (*lib.RawOptions, error) {
	p.calls++
	return p.lib(raw), nil
}

type cliResult struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	err    error
}

func buildWorkspace(t *testing.T, setup func(*workspace.WorkspaceBuilder)) *filesystem.MockFileSystem {
	t.Helper()

	wb := workspace.NewWorkspaceBuilder(testWorkspaceRoot)
	if setup != nil {
		setup(wb)
	}
	return wb.Build()
}

func run(fs filesystem.FileSystem, runner toolchain.Runner, prompter Prompter, args ...string) *cliResult {
	res := &cliResult{}

	root := newRootCommand(fs, runner, prompter)
	root.SetArgs(args)
	root.SetOut(&res.stdout)
	root.SetErr(&res.stderr)
	res.err = root.Execute()

	return res
}

func workspacePath(rel string) string {
	return filepath.Join(testWorkspaceRoot, rel)
}

func TestApp_WebBasic(t *testing.T) {
	fs := buildWorkspace(t, nil)
	runner := toolchain.NewMockRunner()

	res := run(fs, runner, nil, "app", "dashboard", "--type=web", "--tags=scope:web, type:app")
	require.NoError(t, res.err)

	require.True(t, fs.Exists(workspacePath("apps/dashboard/project.json")))
	require.True(t, fs.Exists(workspacePath("apps/dashboard/src/main.ts")))
	require.True(t, fs.Exists(workspacePath("apps/dashboard/index.html")))
	require.True(t, fs.Exists(workspacePath("apps/dashboard/Dockerfile")))

	manifest, err := fs.ReadFile(workspacePath("apps/dashboard/project.json"))
	require.NoError(t, err)
	require.Equal(t, "apps/dashboard", gjson.GetBytes(manifest, "root").String())
	require.Equal(t, "scope:web", gjson.GetBytes(manifest, "tags.0").String())
	require.Equal(t, "type:app", gjson.GetBytes(manifest, "tags.1").String())

	require.Contains(t, res.stdout.String(), "CREATE apps/dashboard/project.json")
	require.Contains(t, res.stdout.String(), "Created TypeScript web application dashboard")
	require.Contains(t, res.stderr.String(), "Successfully created web application: dashboard")

	calls := runner.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "npm install", calls[0].String())
	require.Equal(t, workspacePath("apps/dashboard"), calls[0].Dir)
}

func TestApp_DryRun(t *testing.T) {
	fs := buildWorkspace(t, nil)
	runner := toolchain.NewMockRunner()

	res := run(fs, runner, nil, "app", "orders", "--framework=flask", "--dry-run")
	require.NoError(t, res.err)

	require.Contains(t, res.stdout.String(), "CREATE apps/orders/project.json")
	require.Contains(t, res.stdout.String(), `no changes were made`)
	require.False(t, fs.Exists(workspacePath("apps/orders/project.json")))
	require.Empty(t, runner.Calls())
}

func TestApp_DryRunIOS(t *testing.T) {
	fs := buildWorkspace(t, nil)
	runner := toolchain.NewMockRunner()

	res := run(fs, runner, nil, "app", "Phone", "--type=ios-native", "--dry-run")
	require.NoError(t, res.err)

	require.Empty(t, runner.Calls())
	require.Contains(t, res.stdout.String(), "CREATE apps/phone/project.json")
	require.Contains(t, res.stderr.String(), "Would run: brew install manicmaniac/tap/xcnew")
	require.Contains(t, res.stderr.String(), "Would run: xcnew Phone -i com.terrible-lizard.phone -S -t phone")
	require.False(t, fs.Exists(workspacePath("apps/phone")))
}

func TestApp_SkipInstallAndNoDocker(t *testing.T) {
	fs := buildWorkspace(t, nil)
	runner := toolchain.NewMockRunner()

	res := run(fs, runner, nil, "app", "dashboard", "--type=web", "--docker=false", "--skip-install")
	require.NoError(t, res.err)

	require.False(t, fs.Exists(workspacePath("apps/dashboard/Dockerfile")))
	manifest, err := fs.ReadFile(workspacePath("apps/dashboard/project.json"))
	require.NoError(t, err)
	require.False(t, gjson.GetBytes(manifest, "targets.docker-build").Exists())
	require.Empty(t, runner.Calls())
}

func TestApp_Flask(t *testing.T) {
	fs := buildWorkspace(t, nil)

	res := run(fs, toolchain.NewMockRunner(), nil, "app", "orders", "--framework=flask", "--directory=services")
	require.NoError(t, res.err)

	manifest, err := fs.ReadFile(workspacePath("apps/services/orders/project.json"))
	require.NoError(t, err)
	require.Equal(t, "services-orders", gjson.GetBytes(manifest, "name").String())
	require.Contains(t, gjson.GetBytes(manifest, "targets.serve.options.commands").Raw, "5001")
	require.Equal(t, "docker run -p 5001:5000 services-orders:latest",
		gjson.GetBytes(manifest, "targets.docker-run.options.command").String())

	require.Contains(t, res.stderr.String(), "Auto-detected type 'python' from framework 'flask'")
	require.Contains(t, res.stdout.String(), "http://localhost:5001/api/health")
}

func TestApp_MissingType(t *testing.T) {
	fs := buildWorkspace(t, nil)

	res := run(fs, toolchain.NewMockRunner(), nil, "app", "dashboard")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "Application type must be specified")
	require.False(t, fs.Exists(workspacePath("apps/dashboard")))
}

func TestApp_ProjectExists(t *testing.T) {
	fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.AddProject("dashboard", "apps/dashboard", "application")
	})

	res := run(fs, toolchain.NewMockRunner(), nil, "app", "dashboard", "--type=web")
	require.ErrorIs(t, res.err, workspace.ErrProjectExists)
}

func TestApp_WorkspaceNotFound(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/tmp/elsewhere")
	fs.SetCurrentDir("/tmp/elsewhere")

	res := run(fs, toolchain.NewMockRunner(), nil, "app", "dashboard", "--type=web")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "failed to detect workspace")
}

func TestApp_Interactive(t *testing.T) {
	fs := buildWorkspace(t, nil)
	prompter := &fakePrompter{app: func(raw app.RawOptions) *app.RawOptions {
		raw.Type = "php"
		raw.Framework = "laravel"
		return &raw
	}}

	res := run(fs, toolchain.NewMockRunner(), prompter, "app", "billing", "--interactive")
	require.NoError(t, res.err)
	require.Equal(t, 1, prompter.calls)
	require.True(t, fs.Exists(workspacePath("apps/billing/.env")))
}

func TestApp_InteractiveAbort(t *testing.T) {
	fs := buildWorkspace(t, nil)
	prompter := &fakePrompter{app: func(app.RawOptions) *app.RawOptions { return nil }}

	res := run(fs, toolchain.NewMockRunner(), prompter, "app", "-i")
	require.NoError(t, res.err)
	require.Empty(t, res.stdout.String())
	require.Equal(t, []string{workspacePath("nx.json"), workspacePath("package.json")}, fs.FilePaths(testWorkspaceRoot))
}

func TestApp_Verbose(t *testing.T) {
	fs := buildWorkspace(t, nil)

	res := run(fs, toolchain.NewMockRunner(), nil, "app", "dashboard", "--type=web", "--skip-install", "--verbose")
	require.NoError(t, res.err)
	require.Contains(t, res.stderr.String(), "level=debug")
}
