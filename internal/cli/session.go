package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-scaffold/internal/config"
	"github.com/jakoblorz/go-scaffold/internal/filesystem"
	"github.com/jakoblorz/go-scaffold/internal/workspace"
)

// session is everything a generator command needs from the workspace it
// runs in.
type session struct {
	ws  *workspace.Workspace
	cfg config.Config
	log *logrus.Logger
}

func newSession(cmd *cobra.Command, fs filesystem.FileSystem) (*session, error) {
	log := newLogger(errWriter(cmd), verboseFromCmd(cmd))

	ws := workspace.New(fs)
	if err := ws.Detect(); err != nil {
		return nil, fmt.Errorf("failed to detect workspace: %w", err)
	}
	log.Debugf("workspace root: %s (%d projects)", ws.RootPath, len(ws.Projects))

	cfg, err := config.Load(fs, ws.RootPath, configPathFromCmd(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &session{ws: ws, cfg: cfg, log: log}, nil
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func outWriter(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}

func errWriter(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stderr
	}
	return cmd.ErrOrStderr()
}

func cmdContext(cmd *cobra.Command) context.Context {
	if cmd == nil || cmd.Context() == nil {
		return context.Background()
	}
	return cmd.Context()
}
