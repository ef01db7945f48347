package tui

import (
	"testing"

	"github.com/cuivienor/video-estados/internal/batch"
	"github.com/cuivienor/video-estados/internal/model"
)

func files(names ...string) []model.VideoFile {
	out := make([]model.VideoFile, 0, len(names))
	for _, n := range names {
		out = append(out, model.NewVideoFile("/videos/"+n))
	}
	return out
}

func TestScreenState_Preview(t *testing.T) {
	tests := []struct {
		name  string
		files []model.VideoFile
		want  string
	}{
		{"none", nil, "No videos found"},
		{"one", files("a.mp4"), "a.mp4"},
		{"two", files("a.mp4", "b.mov"), "a.mp4, b.mov"},
		{"overflow", files("a.mp4", "b.mov", "c.mkv", "d.avi"), "a.mp4, b.mov +2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &ScreenState{}
			s.SetFolder("/videos", tt.files)
			if got := s.Preview(); got != tt.want {
				t.Errorf("Preview() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenState_CanConvert(t *testing.T) {
	tests := []struct {
		name   string
		engine bool
		files  []model.VideoFile
		phase  Phase
		want   bool
	}{
		{"ready", true, files("a.mp4"), PhaseIdle, true},
		{"after done", true, files("a.mp4"), PhaseDone, true},
		{"no engine", false, files("a.mp4"), PhaseIdle, true},
		{"no files", true, nil, PhaseIdle, false},
		{"running", true, files("a.mp4"), PhaseRunning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &ScreenState{Caps: model.Capabilities{EnginePresent: tt.engine}, Files: tt.files, Phase: tt.phase}
			if got := s.CanConvert(); got != tt.want {
				t.Errorf("CanConvert() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScreenState_BatchLifecycle(t *testing.T) {
	s := &ScreenState{Caps: model.Capabilities{EnginePresent: true}}
	s.SetFolder("/videos", files("a.mp4", "b.mp4"))

	if got := s.ButtonLabel(); got != labelConvert {
		t.Errorf("idle ButtonLabel() = %q", got)
	}

	s.BeginBatch()
	if s.CanChangeFolder() {
		t.Error("CanChangeFolder() = true while running")
	}
	if got := s.ButtonLabel(); got != labelConverting {
		t.Errorf("running ButtonLabel() = %q", got)
	}

	s.Apply(batch.ProgressEvent{Fraction: 0, Label: "[1/2] a.mp4"})
	s.Apply(batch.ProgressEvent{Fraction: 0.5, Label: "✓ a.mp4"})
	if s.Fraction != 0.5 || s.Label != "✓ a.mp4" {
		t.Errorf("after progress: fraction=%v label=%q", s.Fraction, s.Label)
	}

	// Reset before the batch ends is ignored
	s.ResetButton()
	if s.Phase != PhaseRunning {
		t.Errorf("ResetButton() while running changed phase to %v", s.Phase)
	}

	s.Apply(batch.TerminalEvent{Summary: batch.Summary{
		Destination:  "/videos/convertidos",
		SuccessCount: 1,
		FailureCount: 1,
		Ledger:       []model.Failure{{Name: "b.mp4", Diagnostic: "Unknown"}},
	}})
	if s.Phase != PhaseDone || s.Fraction != 1 {
		t.Errorf("after terminal: phase=%v fraction=%v", s.Phase, s.Fraction)
	}
	if s.Label != "1 ok, 1 error" {
		t.Errorf("Label = %q", s.Label)
	}
	if s.Report == nil || s.Report.Detail != "Failed: b.mp4" {
		t.Errorf("Report = %+v", s.Report)
	}
	if got := s.ButtonLabel(); got != labelDone {
		t.Errorf("done ButtonLabel() = %q", got)
	}
	if !s.CanChangeFolder() {
		t.Error("CanChangeFolder() = false after batch")
	}

	s.ResetButton()
	if s.Phase != PhaseIdle || s.ButtonLabel() != labelConvert {
		t.Errorf("after reset: phase=%v label=%q", s.Phase, s.ButtonLabel())
	}
	if s.Report == nil {
		t.Error("ResetButton() cleared the report")
	}
}

func TestScreenState_SetFolderClearsPreviousBatch(t *testing.T) {
	s := &ScreenState{}
	s.Apply(batch.TerminalEvent{Summary: batch.Summary{SuccessCount: 2}})
	s.ResetButton()

	s.SetFolder("/other", files("x.mp4"))
	if s.Report != nil || s.Summary != nil || s.Label != "" || s.Fraction != 0 {
		t.Errorf("SetFolder() kept old batch: %+v", s)
	}
	if s.DestinationDir() != "/other/convertidos" {
		t.Errorf("DestinationDir() = %q", s.DestinationDir())
	}
}
