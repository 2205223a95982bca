package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// Call records one Run invocation on the MockRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return commandLine(c.Name, c.Args)
}

// MockRunner implements Runner for testing. Tools are missing from PATH
// until installed with AddTool or by a command registered with OnRun.
type MockRunner struct {
	mu    sync.Mutex
	tools map[string]string
	env   map[string]string
	hooks map[string]func(Call) (string, error)
	calls []Call
}

// NewMockRunner creates an empty MockRunner
func NewMockRunner() *MockRunner {
	return &MockRunner{
		tools: make(map[string]string),
		env:   make(map[string]string),
		hooks: make(map[string]func(Call) (string, error)),
	}
}

// AddTool puts an executable on the mock PATH.
func (m *MockRunner) AddTool(name string) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tools[name] = "/usr/local/bin/" + name
	return m
}

// SetEnv sets an environment variable.
func (m *MockRunner) SetEnv(key, value string) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.env[key] = value
	return m
}

// OnRun registers the behaviour of an executable. Unregistered executables
// succeed with empty output.
func (m *MockRunner) OnRun(name string, fn func(Call) (string, error)) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks[name] = fn
	return m
}

// FailRun makes every invocation of name fail with err.
func (m *MockRunner) FailRun(name string, err error) *MockRunner {
	return m.OnRun(name, func(Call) (string, error) { return "", err })
}

// Calls returns the recorded invocations in order.
func (m *MockRunner) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CommandLines returns the recorded invocations as command lines.
func (m *MockRunner) CommandLines() []string {
	calls := m.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

func (m *MockRunner) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.tools[name]; ok {
		return p, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func (m *MockRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	m.mu.Lock()
	m.calls = append(m.calls, call)
	hook := m.hooks[name]
	m.mu.Unlock()

	if hook == nil {
		return "", nil
	}
	out, err := hook(call)
	if err != nil {
		return out, fmt.Errorf("failed to run %s: %w", call, err)
	}
	return out, nil
}

func (m *MockRunner) Getenv(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.env[key]
}
