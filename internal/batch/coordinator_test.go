package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cuivienor/video-estados/internal/model"
)

func TestCoordinator_AllSucceed(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "convertidos")
	conv := &fakeConverter{}
	c := NewCoordinator(conv, &testLogger{t})

	events, err := c.Start(context.Background(), videoFiles(dir, "a.mp4", "b.mov", "c.mkv"), dest)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	progress, terminal := drain(t, events)

	if len(terminal) != 1 {
		t.Fatalf("got %d terminal events, want 1", len(terminal))
	}
	summary := terminal[0].Summary
	if summary.SuccessCount != 3 || summary.FailureCount != 0 {
		t.Errorf("counts = %d/%d, want 3/0", summary.SuccessCount, summary.FailureCount)
	}
	if !summary.AllSucceeded() {
		t.Error("AllSucceeded() = false")
	}
	if len(summary.Ledger) != 0 {
		t.Errorf("Ledger = %v, want empty", summary.Ledger)
	}
	if summary.Destination != dest {
		t.Errorf("Destination = %q, want %q", summary.Destination, dest)
	}
	if summary.BatchID == "" {
		t.Error("BatchID is empty")
	}
	if summary.FinishedAt.Before(summary.StartedAt) {
		t.Error("FinishedAt before StartedAt")
	}

	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		t.Errorf("destination not created: %v", err)
	}

	wantLabels := []string{
		"[1/3] a.mp4", "✓ a.mp4",
		"[2/3] b.mov", "✓ b.mov",
		"[3/3] c.mkv", "✓ c.mkv",
	}
	var labels []string
	for _, p := range progress {
		labels = append(labels, p.Label)
	}
	if !reflect.DeepEqual(labels, wantLabels) {
		t.Errorf("labels = %v, want %v", labels, wantLabels)
	}

	if c.Running() {
		t.Error("Running() = true after terminal event")
	}
}

func TestCoordinator_FractionSequence(t *testing.T) {
	dir := t.TempDir()
	c := NewCoordinator(&fakeConverter{}, &testLogger{t})

	events, err := c.Start(context.Background(), videoFiles(dir, "a.mp4", "b.mp4", "c.mp4", "d.mp4"), filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	progress, _ := drain(t, events)

	want := []float64{0, 0.25, 0.25, 0.5, 0.5, 0.75, 0.75, 1}
	if len(progress) != len(want) {
		t.Fatalf("got %d progress events, want %d", len(progress), len(want))
	}
	prev := 0.0
	for i, p := range progress {
		if p.Fraction != want[i] {
			t.Errorf("event %d fraction = %v, want %v", i, p.Fraction, want[i])
		}
		if p.Fraction < prev {
			t.Errorf("event %d fraction decreased: %v < %v", i, p.Fraction, prev)
		}
		prev = p.Fraction
		if (p.Outcome == nil) != (i%2 == 0) {
			t.Errorf("event %d outcome presence wrong: %+v", i, p.Outcome)
		}
		if p.Total != 4 || p.Index != i/2 {
			t.Errorf("event %d index/total = %d/%d", i, p.Index, p.Total)
		}
	}
}

func TestCoordinator_MixedOutcomes(t *testing.T) {
	dir := t.TempDir()
	conv := &fakeConverter{outcomes: map[string]model.ConversionOutcome{
		"bad.mp4":  {Status: model.StatusFailed, Diagnostic: "Invalid data found when processing input"},
		"slow.mov": {Status: model.StatusTimedOut, Diagnostic: model.DiagnosticTimeout},
	}}
	c := NewCoordinator(conv, &testLogger{t})

	events, err := c.Start(context.Background(), videoFiles(dir, "a.mp4", "bad.mp4", "c.mp4", "slow.mov"), filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	progress, terminal := drain(t, events)

	summary := terminal[0].Summary
	if summary.SuccessCount+summary.FailureCount != 4 {
		t.Errorf("success+failure = %d, want 4", summary.Total())
	}
	if summary.SuccessCount != 2 || summary.FailureCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", summary.SuccessCount, summary.FailureCount)
	}
	wantLedger := []model.Failure{
		{Name: "bad.mp4", Diagnostic: "Invalid data found when processing input"},
		{Name: "slow.mov", Diagnostic: model.DiagnosticTimeout},
	}
	if !reflect.DeepEqual(summary.Ledger, wantLedger) {
		t.Errorf("Ledger = %v, want %v", summary.Ledger, wantLedger)
	}

	// Glyph turns to warning at the first failure and stays there
	var post []string
	for _, p := range progress {
		if p.Outcome != nil {
			post = append(post, p.Label)
		}
	}
	wantPost := []string{"✓ a.mp4", "⚠ bad.mp4", "⚠ c.mp4", "⚠ slow.mov"}
	if !reflect.DeepEqual(post, wantPost) {
		t.Errorf("post-item labels = %v, want %v", post, wantPost)
	}
}

func TestCoordinator_ProcessesSequentially(t *testing.T) {
	dir := t.TempDir()
	conv := &fakeConverter{}
	c := NewCoordinator(conv, &testLogger{t})

	names := []string{"e.mp4", "a.mp4", "c.mp4", "b.mp4"}
	events, err := c.Start(context.Background(), videoFiles(dir, names...), filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	drain(t, events)

	if !reflect.DeepEqual(conv.calls, names) {
		t.Errorf("calls = %v, want %v", conv.calls, names)
	}
	if got := conv.maxSeen.Load(); got != 1 {
		t.Errorf("max concurrent conversions = %d, want 1", got)
	}
}

func TestCoordinator_StartWhileRunning(t *testing.T) {
	dir := t.TempDir()
	gate := make(chan struct{})
	conv := &fakeConverter{gate: gate}
	c := NewCoordinator(conv, &testLogger{t})

	events, err := c.Start(context.Background(), videoFiles(dir, "a.mp4", "b.mp4"), filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !c.Running() {
		t.Fatal("Running() = false after Start")
	}

	second, err := c.Start(context.Background(), videoFiles(dir, "x.mp4"), filepath.Join(dir, "other"))
	if !errors.Is(err, ErrBatchRunning) {
		t.Fatalf("second Start() error = %v, want ErrBatchRunning", err)
	}
	if second != nil {
		t.Error("second Start() returned a channel")
	}
	if _, err := os.Stat(filepath.Join(dir, "other")); !os.IsNotExist(err) {
		t.Error("rejected Start() created its destination")
	}

	close(gate)
	_, terminal := drain(t, events)
	if terminal[0].Summary.Total() != 2 {
		t.Errorf("first batch total = %d, want 2", terminal[0].Summary.Total())
	}
	for _, name := range conv.calls {
		if name == "x.mp4" {
			t.Error("rejected batch item was converted")
		}
	}

	// Idle again, so a new batch is accepted
	events, err = c.Start(context.Background(), videoFiles(dir, "x.mp4"), filepath.Join(dir, "other"))
	if err != nil {
		t.Fatalf("Start() after completion error = %v", err)
	}
	drain(t, events)
}

func TestCoordinator_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out")
	conv := &fakeConverter{}
	c := NewCoordinator(conv, &testLogger{t})

	events, err := c.Start(context.Background(), nil, dest)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if c.Running() {
		t.Error("Running() = true for empty batch")
	}
	progress, terminal := drain(t, events)

	if len(progress) != 0 {
		t.Errorf("got %d progress events, want 0", len(progress))
	}
	if len(terminal) != 1 {
		t.Fatalf("got %d terminal events, want 1", len(terminal))
	}
	if s := terminal[0].Summary; s.SuccessCount != 0 || s.FailureCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", s.SuccessCount, s.FailureCount)
	}
	if conv.callCount() != 0 {
		t.Errorf("converter called %d times", conv.callCount())
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("empty batch created destination")
	}
}

func TestCoordinator_DestinationCreateFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "convertidos")
	if err := os.WriteFile(blocker, []byte("a file, not a folder"), 0644); err != nil {
		t.Fatal(err)
	}
	conv := &fakeConverter{}
	c := NewCoordinator(conv, &testLogger{t})

	events, err := c.Start(context.Background(), videoFiles(dir, "a.mp4"), blocker)
	if !errors.Is(err, ErrDestinationCreate) {
		t.Fatalf("Start() error = %v, want ErrDestinationCreate", err)
	}
	if events != nil {
		t.Error("Start() returned a channel on failure")
	}
	if c.Running() {
		t.Error("Running() = true after failed start")
	}
	if conv.callCount() != 0 {
		t.Error("converter called after failed start")
	}
}

func TestCoordinator_ConverterPanic(t *testing.T) {
	dir := t.TempDir()
	conv := &fakeConverter{panics: map[string]bool{"b.mp4": true}}
	c := NewCoordinator(conv, &testLogger{t})

	events, err := c.Start(context.Background(), videoFiles(dir, "a.mp4", "b.mp4", "c.mp4"), filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	_, terminal := drain(t, events)

	summary := terminal[0].Summary
	if summary.SuccessCount != 2 || summary.FailureCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", summary.SuccessCount, summary.FailureCount)
	}
	if len(summary.Ledger) != 1 || summary.Ledger[0].Name != "b.mp4" {
		t.Errorf("Ledger = %v", summary.Ledger)
	}
	if c.Running() {
		t.Error("Running() = true after panicking batch")
	}
}

func TestCoordinator_InputSliceIsCopied(t *testing.T) {
	dir := t.TempDir()
	gate := make(chan struct{})
	conv := &fakeConverter{gate: gate}
	c := NewCoordinator(conv, &testLogger{t})

	files := videoFiles(dir, "a.mp4", "b.mp4")
	events, err := c.Start(context.Background(), files, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	files[1] = model.NewVideoFile(filepath.Join(dir, "mutated.mp4"))
	close(gate)
	drain(t, events)

	if conv.calls[1] != "b.mp4" {
		t.Errorf("second call = %q, want b.mp4", conv.calls[1])
	}
}
