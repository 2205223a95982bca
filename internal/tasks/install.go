package tasks

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jakoblorz/go-scaffold/internal/toolchain"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

// Task runs after the staged tree has been committed.
type Task func(ctx context.Context) error

// PackageManager installs Node packages for a workspace.
type PackageManager string

const (
	PackageManagerNpm  PackageManager = "npm"
	PackageManagerPnpm PackageManager = "pnpm"
	PackageManagerYarn PackageManager = "yarn"
	PackageManagerBun  PackageManager = "bun"
)

var lockfiles = []struct {
	file string
	pm   PackageManager
}{
	{"pnpm-lock.yaml", PackageManagerPnpm},
	{"yarn.lock", PackageManagerYarn},
	{"bun.lockb", PackageManagerBun},
	{"bun.lock", PackageManagerBun},
	{"package-lock.json", PackageManagerNpm},
}

// DetectPackageManager picks the package manager from the lockfile in the
// workspace root and falls back to npm.
func DetectPackageManager(t *tree.Tree) PackageManager {
	for _, l := range lockfiles {
		if t.IsFile(l.file) {
			return l.pm
		}
	}
	return PackageManagerNpm
}

// Installer builds install tasks for staged package.json changes.
type Installer struct {
	runner  toolchain.Runner
	log     logrus.FieldLogger
	command []string
}

// NewInstaller creates an Installer. A non-empty command replaces the
// detected package manager's install command.
func NewInstaller(runner toolchain.Runner, log logrus.FieldLogger, command []string) *Installer {
	return &Installer{runner: runner, log: log, command: command}
}

// Task records which directories have a created or updated package.json
// pending in t and returns a task installing packages in each of them. It
// returns nil when there is nothing to install. Call it before Commit.
func (i *Installer) Task(t *tree.Tree) Task {
	var dirs []string
	for _, c := range t.ListChanges() {
		if c.Type == tree.ChangeDelete || path.Base(c.Path) != "package.json" {
			continue
		}
		dirs = append(dirs, path.Dir(c.Path))
	}
	if len(dirs) == 0 {
		return nil
	}

	command := i.command
	if len(command) == 0 {
		command = []string{string(DetectPackageManager(t)), "install"}
	}

	return func(ctx context.Context) error {
		for _, dir := range dirs {
			abs := t.Root()
			if dir != "." {
				abs = t.Abs(dir)
			}
			i.log.Infof("📦 Installing packages in %s: %s", dir, strings.Join(command, " "))
			if _, err := i.runner.Run(ctx, abs, command[0], command[1:]...); err != nil {
				return fmt.Errorf("failed to install packages in %s: %w", dir, err)
			}
		}
		return nil
	}
}
