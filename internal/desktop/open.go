// Package desktop hands folders to the desktop environment.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

const (
	// launchTimeout bounds how long the opener may take to return.
	// xdg-open forks the file manager and exits quickly.
	launchTimeout = 10 * time.Second

	// waitDelay bounds how long Wait reads output after the opener exits.
	// A file manager started by the opener inherits the pipe and keeps it open.
	waitDelay = 500 * time.Millisecond
)

// Logger is the logging interface needed by this package
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Opener opens folders with an external command such as xdg-open
type Opener struct {
	command string
	logger  Logger

	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewOpener creates an Opener that runs command with the folder as its only argument
func NewOpener(command string, logger Logger) *Opener {
	return &Opener{
		command:     command,
		logger:      logger,
		execCommand: exec.CommandContext,
	}
}

// Open opens dir. Failures are logged and returned; callers treat them as advisory.
func (o *Opener) Open(ctx context.Context, dir string) error {
	ctx, cancel := context.WithTimeout(ctx, launchTimeout)
	defer cancel()

	cmd := o.execCommand(ctx, o.command, dir)
	cmd.WaitDelay = waitDelay

	out, err := cmd.CombinedOutput()
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		err = nil
	}
	if err != nil {
		o.logger.Warn("Could not open %s with %s: %v", dir, o.command, err)
		if len(out) > 0 {
			return fmt.Errorf("%s %s: %w: %s", o.command, dir, err, out)
		}
		return fmt.Errorf("%s %s: %w", o.command, dir, err)
	}

	o.logger.Info("Opened %s", dir)
	return nil
}
