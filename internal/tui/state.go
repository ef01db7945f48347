package tui

import (
	"github.com/cuivienor/video-estados/internal/batch"
	"github.com/cuivienor/video-estados/internal/model"
	"github.com/cuivienor/video-estados/internal/report"
	"github.com/cuivienor/video-estados/internal/scanner"
	"github.com/cuivienor/video-estados/internal/transcode"
)

// Phase is the convert button's state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseDone // Shows "Done!" until the reset tick
)

// Button labels
const (
	labelConvert    = "Convert for WhatsApp"
	labelConverting = "Converting…"
	labelDone       = "Done!"
)

// previewNames is how many file names the folder row shows
const previewNames = 2

// ScreenState is what the main screen shows. It is only touched from
// Update, so batch events reach it one at a time.
type ScreenState struct {
	Caps      model.Capabilities
	CapsKnown bool

	Dir   string
	Files []model.VideoFile

	Phase    Phase
	Fraction float64
	Label    string
	Report   *report.Report
	Summary  *batch.Summary
}

// SetFolder replaces the selected folder and its videos and clears the
// previous batch's progress
func (s *ScreenState) SetFolder(dir string, files []model.VideoFile) {
	s.Dir = dir
	s.Files = files
	s.Fraction = 0
	s.Label = ""
	s.Report = nil
	s.Summary = nil
}

// Preview returns the folder row subtitle
func (s *ScreenState) Preview() string {
	if len(s.Files) == 0 {
		return "No videos found"
	}
	return scanner.Summarize(s.Files, previewNames)
}

// DestinationDir returns where the current folder's outputs go
func (s *ScreenState) DestinationDir() string {
	return transcode.DestinationDir(s.Dir)
}

// CanChangeFolder returns false while a batch is running
func (s *ScreenState) CanChangeFolder() bool {
	return s.Phase != PhaseRunning
}

// CanConvert returns true if a batch may start now. A missing engine only
// warns; its items fail one by one.
func (s *ScreenState) CanConvert() bool {
	return s.Phase != PhaseRunning && len(s.Files) > 0
}

// BeginBatch marks a batch as started
func (s *ScreenState) BeginBatch() {
	s.Phase = PhaseRunning
	s.Fraction = 0
	s.Label = ""
	s.Report = nil
	s.Summary = nil
}

// AbortBatch returns to idle after a batch failed to start
func (s *ScreenState) AbortBatch() {
	s.Phase = PhaseIdle
}

// Apply folds one batch event into the screen
func (s *ScreenState) Apply(ev batch.Event) {
	switch e := ev.(type) {
	case batch.ProgressEvent:
		s.Fraction = e.Fraction
		s.Label = e.Label
	case batch.TerminalEvent:
		r := report.Render(e.Summary)
		summary := e.Summary
		s.Phase = PhaseDone
		s.Fraction = 1
		s.Label = r.Headline
		s.Report = &r
		s.Summary = &summary
	}
}

// ResetButton puts the button back to its idle label after a batch
func (s *ScreenState) ResetButton() {
	if s.Phase == PhaseDone {
		s.Phase = PhaseIdle
	}
}

// ButtonLabel returns the convert button's text
func (s *ScreenState) ButtonLabel() string {
	switch s.Phase {
	case PhaseRunning:
		return labelConverting
	case PhaseDone:
		return labelDone
	default:
		return labelConvert
	}
}
