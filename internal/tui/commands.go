package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cuivienor/video-estados/internal/batch"
	"github.com/cuivienor/video-estados/internal/model"
	"github.com/cuivienor/video-estados/internal/scanner"
)

// How long toasts and the "Done!" label stay up
const (
	toastDuration = 3 * time.Second
	resetDelay    = 3 * time.Second
)

// capsMsg is sent when the capability probe completes
type capsMsg struct {
	caps model.Capabilities
}

// scanMsg is sent when a folder has been scanned
type scanMsg struct {
	dir   string
	files []model.VideoFile
	err   error
}

// batchStartedMsg is sent when Start returns
type batchStartedMsg struct {
	events <-chan batch.Event
	err    error
}

// batchEventMsg carries one event from the running batch
type batchEventMsg struct {
	event batch.Event
}

// batchClosedMsg is sent if the event channel closes
type batchClosedMsg struct{}

// resetButtonMsg fires resetDelay after a batch ends
type resetButtonMsg struct {
	id int
}

// toastExpiredMsg fires toastDuration after a toast is shown
type toastExpiredMsg struct {
	id int
}

// openedMsg is sent after the destination was handed to the opener
type openedMsg struct {
	err error
}

func probeCapabilities(ctx context.Context, p CapabilityProber) tea.Cmd {
	return func() tea.Msg {
		return capsMsg{caps: p.Probe(ctx)}
	}
}

func scanFolder(dir string) tea.Cmd {
	return func() tea.Msg {
		files, err := scanner.Scan(dir)
		return scanMsg{dir: dir, files: files, err: err}
	}
}

func startBatch(ctx context.Context, b BatchRunner, files []model.VideoFile, destDir string) tea.Cmd {
	return func() tea.Msg {
		events, err := b.Start(ctx, files, destDir)
		return batchStartedMsg{events: events, err: err}
	}
}

// waitForEvent blocks on the next batch event. Update re-arms it after
// every progress event.
func waitForEvent(events <-chan batch.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return batchClosedMsg{}
		}
		return batchEventMsg{event: ev}
	}
}

func openFolder(ctx context.Context, o FolderOpener, dir string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{err: o.Open(ctx, dir)}
	}
}

func resetButtonAfter(id int) tea.Cmd {
	return tea.Tick(resetDelay, func(time.Time) tea.Msg {
		return resetButtonMsg{id: id}
	})
}

func expireToastAfter(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
