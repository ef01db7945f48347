package batch

import (
	"time"

	"github.com/cuivienor/video-estados/internal/model"
)

// Event is sent from a running batch to whoever started it
type Event interface {
	isEvent()
}

// ProgressEvent is sent before and after each item.
// Outcome is nil on the event sent before the item runs.
type ProgressEvent struct {
	Fraction float64 // 0..1
	Label    string
	Index    int // 0-based item index
	Total    int
	Outcome  *model.ConversionOutcome
}

// TerminalEvent is the last event of a batch
type TerminalEvent struct {
	Summary Summary
}

func (ProgressEvent) isEvent() {}
func (TerminalEvent) isEvent() {}

// Summary is the end-of-batch result. Ledger holds every failure in
// processing order; presentation decides how much of it to show.
type Summary struct {
	BatchID      string
	Destination  string
	SuccessCount int
	FailureCount int
	Ledger       []model.Failure
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Total returns the number of items processed
func (s Summary) Total() int {
	return s.SuccessCount + s.FailureCount
}

// AllSucceeded returns true if no item failed
func (s Summary) AllSucceeded() bool {
	return s.FailureCount == 0
}

// Duration returns how long the batch took
func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
