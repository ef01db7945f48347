// Package batch runs one conversion batch at a time on its own goroutine
// and reports progress over a channel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/cuivienor/video-estados/internal/model"
)

// Sentinel errors returned by Start
var (
	ErrBatchRunning      = errors.New("a batch is already running")
	ErrDestinationCreate = errors.New("failed to create destination")
)

// Converter converts a single file. Implementations report every failure
// through the outcome; *transcode.Runner is the production one.
type Converter interface {
	Convert(ctx context.Context, file model.VideoFile, destDir string) model.ConversionOutcome
}

// Logger is the logging interface needed by this package
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Coordinator owns the Idle/Running state machine
type Coordinator struct {
	converter Converter
	logger    Logger
	running   atomic.Bool
}

// NewCoordinator creates an idle Coordinator
func NewCoordinator(converter Converter, logger Logger) *Coordinator {
	return &Coordinator{
		converter: converter,
		logger:    logger,
	}
}

// Running reports whether a batch is in flight
func (c *Coordinator) Running() bool {
	return c.running.Load()
}

// Start begins a batch over files, writing into destDir, and returns the
// channel its events arrive on. The channel yields ProgressEvents in order,
// then exactly one TerminalEvent, then closes.
//
// Start returns ErrBatchRunning without side effects while a batch is in
// flight. An empty file list yields only a zero TerminalEvent and never
// enters Running. If destDir cannot be created the batch does not start.
func (c *Coordinator) Start(ctx context.Context, files []model.VideoFile, destDir string) (<-chan Event, error) {
	if c.running.Load() {
		c.logger.Warn("Batch start rejected: already running")
		return nil, ErrBatchRunning
	}

	if len(files) == 0 {
		events := make(chan Event, 1)
		now := time.Now()
		events <- TerminalEvent{Summary: Summary{
			Destination: destDir,
			Ledger:      []model.Failure{},
			StartedAt:   now,
			FinishedAt:  now,
		}}
		close(events)
		return events, nil
	}

	if !c.running.CompareAndSwap(false, true) {
		c.logger.Warn("Batch start rejected: already running")
		return nil, ErrBatchRunning
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		c.running.Store(false)
		c.logger.Error("Cannot create destination %s: %v", destDir, err)
		return nil, fmt.Errorf("%w %s: %v", ErrDestinationCreate, destDir, err)
	}

	st := newState(files, destDir)
	events := make(chan Event, 2*len(st.files)+1)

	c.logger.Info("Batch %s: converting %d videos into %s", st.id, len(st.files), destDir)
	go c.run(ctx, st, events)

	return events, nil
}

// run is the batch goroutine. It is the only writer of st.
func (c *Coordinator) run(ctx context.Context, st *state, events chan<- Event) {
	defer close(events)

	for !st.done() {
		events <- st.begin()
		outcome := c.convert(ctx, st.current(), st.destDir)
		events <- st.step(outcome)
	}

	summary := st.finish()
	c.running.Store(false)

	if summary.AllSucceeded() {
		c.logger.Info("Batch %s: %d converted in %s", summary.BatchID, summary.SuccessCount, summary.Duration().Round(time.Second))
	} else {
		c.logger.Warn("Batch %s: completed with %d errors (%d ok)", summary.BatchID, summary.FailureCount, summary.SuccessCount)
	}

	events <- TerminalEvent{Summary: summary}
}

// convert runs one item, turning a panicking converter into a failed outcome
func (c *Coordinator) convert(ctx context.Context, file model.VideoFile, destDir string) (outcome model.ConversionOutcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Converter panicked on %s: %v", file.Name, r)
			outcome = model.ConversionOutcome{
				File:       file,
				Status:     model.StatusFailed,
				Diagnostic: fmt.Sprintf("panic: %v", r),
			}
		}
	}()
	return c.converter.Convert(ctx, file, destDir)
}
