package transcode

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/cuivienor/video-estados/internal/model"
)

const (
	// DefaultTimeout bounds a single engine invocation
	DefaultTimeout = 300 * time.Second

	// waitDelay is how long Wait keeps reading pipes after the process was killed
	waitDelay = 2 * time.Second

	stderrTailBytes = 64 * 1024
)

// Logger is the logging interface needed by this package
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Runner converts one file at a time by running the engine
type Runner struct {
	enginePath string
	logger     Logger

	// Timeout bounds each invocation. NewRunner sets DefaultTimeout.
	Timeout time.Duration

	// execCommand allows injection of command execution for testing
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewRunner creates a Runner.
// If enginePath is empty, uses "ffmpeg" from PATH.
func NewRunner(enginePath string, logger Logger) *Runner {
	if enginePath == "" {
		enginePath = "ffmpeg"
	}
	return &Runner{
		enginePath:  enginePath,
		logger:      logger,
		Timeout:     DefaultTimeout,
		execCommand: exec.CommandContext,
	}
}

// Convert transcodes file into destDir. It never returns an error: every
// failure mode is reported through the outcome's status and diagnostic.
func (r *Runner) Convert(ctx context.Context, file model.VideoFile, destDir string) model.ConversionOutcome {
	outcome := model.ConversionOutcome{
		File:       file,
		OutputPath: OutputPath(file, destDir),
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := r.execCommand(runCtx, r.enginePath, BuildArgs(file.Path, outcome.OutputPath)...)
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	stderr := newTailBuffer(stderrTailBytes)
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	outcome.Duration = time.Since(start)

	// A clean exit whose stderr was held open by a leftover child is still a clean exit
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		err = nil
	}

	switch {
	case err == nil:
		outcome.Status = model.StatusSuccess
		r.logger.Info("Converted: %s -> %s (%s)", file.Name, outcome.OutputPath, outcome.Duration.Round(time.Millisecond))

	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		outcome.Status = model.StatusTimedOut
		outcome.Diagnostic = model.DiagnosticTimeout
		r.logger.Error("Timeout: %s after %s", file.Name, timeout)

	case ctx.Err() != nil:
		outcome.Status = model.StatusFailed
		outcome.Diagnostic = ctx.Err().Error()
		r.logger.Error("Aborted: %s - %s", file.Name, outcome.Diagnostic)

	default:
		outcome.Status = model.StatusFailed
		outcome.Diagnostic = diagnose(err, stderr.String())
		r.logger.Error("Failed: %s - %s", file.Name, outcome.Diagnostic)
	}

	return outcome
}

// diagnose picks the diagnostic for a failed run
func diagnose(err error, stderr string) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.Exited() {
		if line := lastLine(stderr); line != "" {
			return line
		}
		return model.DiagnosticUnknown
	}
	return fmt.Sprint(err)
}
