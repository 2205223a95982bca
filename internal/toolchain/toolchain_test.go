package toolchain_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakoblorz/go-scaffold/internal/toolchain"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available in PATH")
	}
}

func TestOSRunner_Run(t *testing.T) {
	requireShell(t)

	var echoed bytes.Buffer
	r := toolchain.NewOSRunner()
	r.Stdout = &echoed

	dir := t.TempDir()
	out, err := r.Run(context.Background(), dir, "sh", "-c", "pwd; echo hello")
	require.NoError(t, err)
	require.Contains(t, out, "hello")
	require.Contains(t, echoed.String(), "hello")
}

func TestOSRunner_RunFailureCarriesStderr(t *testing.T) {
	requireShell(t)

	r := toolchain.NewOSRunner()
	_, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to run sh -c")
	require.Contains(t, err.Error(), "boom")
}

func TestOSRunner_LookPathMissing(t *testing.T) {
	r := toolchain.NewOSRunner()
	_, err := r.LookPath("definitely-not-a-real-tool-xyz")
	require.ErrorIs(t, err, exec.ErrNotFound)
}

func TestMockRunner(t *testing.T) {
	m := toolchain.NewMockRunner().AddTool("brew").SetEnv("ANDROID_HOME", "/opt/android")

	_, err := m.LookPath("brew")
	require.NoError(t, err)
	_, err = m.LookPath("xcnew")
	require.ErrorIs(t, err, exec.ErrNotFound)
	require.Equal(t, "/opt/android", m.Getenv("ANDROID_HOME"))
	require.Empty(t, m.Getenv("ANDROID_SDK_ROOT"))

	m.OnRun("brew", func(c toolchain.Call) (string, error) {
		m.AddTool("xcnew")
		return "installed", nil
	})
	out, err := m.Run(context.Background(), "/ws", "brew", "install", "manicmaniac/tap/xcnew")
	require.NoError(t, err)
	require.Equal(t, "installed", out)

	_, err = m.LookPath("xcnew")
	require.NoError(t, err)

	boom := errors.New("boom")
	m.FailRun("xcnew", boom)
	_, err = m.Run(context.Background(), "/ws/apps", "xcnew", "App")
	require.ErrorIs(t, err, boom)

	require.Equal(t, []string{"brew install manicmaniac/tap/xcnew", "xcnew App"}, m.CommandLines())
	require.Equal(t, "/ws/apps", m.Calls()[1].Dir)
}

func TestMockRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := toolchain.NewMockRunner().Run(ctx, "/", "npx")
	require.ErrorIs(t, err, context.Canceled)
}
