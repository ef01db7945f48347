package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cuivienor/video-estados/internal/model"
)

// testLogger implements Logger for tests
type testLogger struct {
	t *testing.T
}

func (l *testLogger) Info(format string, args ...interface{}) {
	l.t.Logf("[INFO] "+format, args...)
}

func (l *testLogger) Warn(format string, args ...interface{}) {
	l.t.Logf("[WARN] "+format, args...)
}

func (l *testLogger) Error(format string, args ...interface{}) {
	l.t.Logf("[ERROR] "+format, args...)
}

// fakeConverter returns a scripted outcome per file name. Files not in
// outcomes succeed. A non-nil gate blocks every call until it is closed.
type fakeConverter struct {
	mu       sync.Mutex
	outcomes map[string]model.ConversionOutcome
	panics   map[string]bool
	gate     chan struct{}
	calls    []string
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeConverter) Convert(ctx context.Context, file model.VideoFile, destDir string) model.ConversionOutcome {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, file.Name)
	f.mu.Unlock()

	if f.gate != nil {
		<-f.gate
	}
	if f.panics[file.Name] {
		panic("boom")
	}
	if outcome, ok := f.outcomes[file.Name]; ok {
		outcome.File = file
		return outcome
	}
	return model.ConversionOutcome{File: file, Status: model.StatusSuccess}
}

func (f *fakeConverter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func videoFiles(dir string, names ...string) []model.VideoFile {
	files := make([]model.VideoFile, 0, len(names))
	for _, name := range names {
		files = append(files, model.NewVideoFile(dir+"/"+name))
	}
	return files
}

// drain collects every event until the channel closes
func drain(t *testing.T, events <-chan Event) ([]ProgressEvent, []TerminalEvent) {
	t.Helper()

	var progress []ProgressEvent
	var terminal []TerminalEvent
	timeout := time.After(30 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return progress, terminal
			}
			switch e := ev.(type) {
			case ProgressEvent:
				if len(terminal) > 0 {
					t.Errorf("progress event after terminal: %+v", e)
				}
				progress = append(progress, e)
			case TerminalEvent:
				terminal = append(terminal, e)
			default:
				t.Fatalf("unexpected event type %T", ev)
			}
		case <-timeout:
			t.Fatal("timed out waiting for batch events")
		}
	}
}
