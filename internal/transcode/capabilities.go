package transcode

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/cuivienor/video-estados/internal/model"
)

const (
	// ProbeTimeout bounds each capability check
	ProbeTimeout = 5 * time.Second

	// h264Marker is what vainfo prints when the GPU can encode H.264
	h264Marker = "VAProfileH264"
)

// ErrEngineMissing describes an absent engine. It is a warning only:
// conversion is still attempted and each item fails on its own.
var ErrEngineMissing = errors.New("ffmpeg not found")

// Prober detects the engine and optional VAAPI acceleration.
// Every check resolves to a bool; nothing here fails the caller.
type Prober struct {
	enginePath string
	vainfoPath string
	logger     Logger
	timeout    time.Duration

	// execCommand allows injection of command execution for testing
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewProber creates a Prober. Empty paths fall back to "ffmpeg" and "vainfo".
func NewProber(enginePath, vainfoPath string, logger Logger) *Prober {
	if enginePath == "" {
		enginePath = "ffmpeg"
	}
	if vainfoPath == "" {
		vainfoPath = "vainfo"
	}
	return &Prober{
		enginePath:  enginePath,
		vainfoPath:  vainfoPath,
		logger:      logger,
		timeout:     ProbeTimeout,
		execCommand: exec.CommandContext,
	}
}

// Probe runs both checks
func (p *Prober) Probe(ctx context.Context) model.Capabilities {
	caps := model.Capabilities{
		EnginePresent: p.EnginePresent(ctx),
		HWAccel:       p.HWAccelAvailable(ctx),
	}
	if !caps.EnginePresent {
		p.logger.Warn("%v: %s", ErrEngineMissing, p.enginePath)
	}
	return caps
}

// EnginePresent reports whether the engine could be started.
// An engine that starts and then exits non-zero or dies from a signal still
// counts as present.
func (p *Prober) EnginePresent(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.execCommand(ctx, p.enginePath, "-version").Run()
	if err == nil {
		return true
	}
	if ctx.Err() != nil {
		p.logger.Warn("Engine check timed out: %s", p.enginePath)
		return false
	}

	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

// HWAccelAvailable reports whether vainfo lists H.264 support or at least
// exits cleanly. The result is only displayed.
func (p *Prober) HWAccelAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := p.execCommand(ctx, p.vainfoPath)
	cmd.Stdout = &stdout
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if ctx.Err() != nil {
		p.logger.Warn("VAAPI check timed out")
		return false
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			p.logger.Info("vainfo not installed")
		} else {
			p.logger.Error("VAAPI check failed: %v", err)
		}
		return false
	}

	hasH264 := strings.Contains(stdout.String(), h264Marker)
	if hasH264 {
		p.logger.Info("VAAPI check: available")
	} else {
		p.logger.Info("VAAPI check: not available")
	}
	return hasH264 || err == nil
}
