package toolchain

import (
	"context"
)

// Runner abstracts the external processes the generators shell out to
// (xcnew, brew, npx) and the environment they probe.
type Runner interface {
	// LookPath reports where an executable lives on PATH.
	LookPath(name string) (string, error)

	// Run executes name with args in dir and returns its stdout.
	// A non-zero exit is an error carrying stderr.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)

	// Getenv reads an environment variable.
	Getenv(key string) string
}
