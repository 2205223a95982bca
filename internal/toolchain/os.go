package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// OSRunner implements Runner with real processes.
type OSRunner struct {
	// Stdout, when set, receives a copy of every command's output.
	Stdout io.Writer
}

// NewOSRunner creates a new OSRunner
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

func (r *OSRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *OSRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if r.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&out, r.Stdout)
		cmd.Stderr = io.MultiWriter(&stderr, r.Stdout)
	}

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("failed to run %s: %w: %s", commandLine(name, args), err, strings.TrimSpace(stderr.String()))
	}

	return out.String(), nil
}

func (r *OSRunner) Getenv(key string) string {
	return os.Getenv(key)
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}
