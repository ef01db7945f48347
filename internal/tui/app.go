// Package tui is the interactive front end: pick a folder, convert its
// videos, watch progress.
package tui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cuivienor/video-estados/internal/batch"
	"github.com/cuivienor/video-estados/internal/model"
	"github.com/cuivienor/video-estados/internal/report"
)

// View represents the current view
type View int

const (
	ViewMain View = iota
	ViewPicker
	ViewAbout
)

// CapabilityProber reports what the host can do. *transcode.Prober implements it.
type CapabilityProber interface {
	Probe(ctx context.Context) model.Capabilities
}

// BatchRunner starts batches. *batch.Coordinator implements it.
type BatchRunner interface {
	Start(ctx context.Context, files []model.VideoFile, destDir string) (<-chan batch.Event, error)
	Running() bool
}

// FolderOpener shows a folder to the user. *desktop.Opener implements it.
type FolderOpener interface {
	Open(ctx context.Context, dir string) error
}

// Logger is the logging interface needed by this package
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Options configures the App
type Options struct {
	Prober  CapabilityProber
	Batches BatchRunner
	Opener  FolderOpener // nil disables opening the destination on completion
	Logger  Logger
	Dir     string // Folder to scan on startup; empty opens the picker
	Version string
}

// App is the main application model
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	prober  CapabilityProber
	batches BatchRunner
	opener  FolderOpener
	logger  Logger
	version string

	state  *ScreenState
	events <-chan batch.Event

	// Navigation state
	currentView View
	initialDir  string
	startDir    string // Where the picker opens when no folder is selected

	// Widgets
	picker   filepicker.Model
	progress progress.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	// Toast and button timers; stale ticks carry an old id
	toast   string
	toastID int
	resetID int

	// Window size
	width  int
	height int
}

// NewApp creates a new application instance
func NewApp(opts Options) *App {
	ctx, cancel := context.WithCancel(context.Background())

	picker := filepicker.New()
	picker.DirAllowed = true
	picker.FileAllowed = false
	picker.ShowPermissions = false
	picker.ShowSize = false
	picker.AutoHeight = true

	startDir := opts.Dir
	if startDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			startDir = home
		} else {
			startDir = "."
		}
	}

	return &App{
		ctx:         ctx,
		cancel:      cancel,
		prober:      opts.Prober,
		batches:     opts.Batches,
		opener:      opts.Opener,
		logger:      opts.Logger,
		version:     opts.Version,
		state:       &ScreenState{},
		currentView: ViewMain,
		initialDir:  opts.Dir,
		startDir:    startDir,
		picker:      picker,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(warningStyle)),
		help:        help.New(),
		keys:        defaultKeyMap(),
	}
}

// State returns the screen state, for tests and the headless summary
func (a *App) State() *ScreenState {
	return a.state
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{probeCapabilities(a.ctx, a.prober)}
	if a.initialDir != "" {
		cmds = append(cmds, scanFolder(a.initialDir))
	} else {
		cmds = append(cmds, a.openPicker())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if w := msg.Width - 4; w > 10 && w < 60 {
			a.progress.Width = w
		}
		var cmd tea.Cmd
		a.picker, cmd = a.picker.Update(msg)
		return a, cmd

	case capsMsg:
		a.state.Caps = msg.caps
		a.state.CapsKnown = true
		if !msg.caps.EnginePresent {
			a.logger.Warn("FFmpeg not found in PATH")
			return a, a.showToast("⚠ FFmpeg not found. Install it to convert.")
		}
		return a, nil

	case scanMsg:
		return a.handleScan(msg)

	case batchStartedMsg:
		if msg.err != nil {
			a.state.AbortBatch()
			a.keys.syncEnabled(a.state)
			a.logger.Error("Could not start batch: %v", msg.err)
			if errors.Is(msg.err, batch.ErrBatchRunning) {
				return a, a.showToast("A conversion is already running")
			}
			return a, a.showToast("Error: " + msg.err.Error())
		}
		a.events = msg.events
		return a, waitForEvent(a.events)

	case batchEventMsg:
		return a.handleBatchEvent(msg.event)

	case batchClosedMsg:
		a.events = nil
		return a, nil

	case resetButtonMsg:
		if msg.id == a.resetID {
			a.state.ResetButton()
		}
		return a, nil

	case toastExpiredMsg:
		if msg.id == a.toastID {
			a.toast = ""
		}
		return a, nil

	case openedMsg:
		return a, nil

	case spinner.TickMsg:
		if a.state.Phase != PhaseRunning {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Directory listings and the like belong to the picker
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

// handleKeyPress handles keyboard input
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, a.quit()
	}

	switch a.currentView {
	case ViewPicker:
		return a.handlePickerKey(msg)
	case ViewAbout:
		a.currentView = ViewMain
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.quit()

	case key.Matches(msg, a.keys.Folder):
		return a, a.openPicker()

	case key.Matches(msg, a.keys.About):
		a.currentView = ViewAbout
		return a, nil

	case key.Matches(msg, a.keys.Convert):
		return a.handleConvert()
	}

	return a, nil
}

func (a *App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.currentView = ViewMain
		return a, nil

	case key.Matches(msg, a.keys.Choose):
		dir := a.picker.CurrentDirectory
		a.currentView = ViewMain
		return a, scanFolder(dir)
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

// openPicker switches to the folder picker, unless a batch is running
func (a *App) openPicker() tea.Cmd {
	if !a.state.CanChangeFolder() {
		return nil
	}
	dir := a.state.Dir
	if dir == "" {
		dir = a.startDir
	}
	a.picker.CurrentDirectory = dir
	a.currentView = ViewPicker
	return a.picker.Init()
}

func (a *App) handleScan(msg scanMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Error("Folder scan failed: %v", msg.err)
		return a, a.showToast("Error: " + msg.err.Error())
	}
	if !a.state.CanChangeFolder() {
		return a, nil
	}

	a.state.SetFolder(msg.dir, msg.files)
	a.logger.Info("Found %d videos in %s", len(msg.files), msg.dir)
	if len(msg.files) == 0 {
		return a, a.showToast("No videos in this folder")
	}
	return a, nil
}

func (a *App) handleConvert() (tea.Model, tea.Cmd) {
	switch {
	case a.state.Phase == PhaseRunning:
		return a, nil
	case a.state.Dir == "":
		return a, a.openPicker()
	case len(a.state.Files) == 0:
		return a, a.showToast("No videos in this folder")
	}

	files := append([]model.VideoFile(nil), a.state.Files...)
	a.state.BeginBatch()
	a.keys.syncEnabled(a.state)
	a.logger.Info("Started conversion of %d videos", len(files))

	return a, tea.Batch(
		startBatch(a.ctx, a.batches, files, a.state.DestinationDir()),
		a.spinner.Tick,
	)
}

func (a *App) handleBatchEvent(ev batch.Event) (tea.Model, tea.Cmd) {
	a.state.Apply(ev)

	term, ok := ev.(batch.TerminalEvent)
	if !ok {
		return a, waitForEvent(a.events)
	}

	a.events = nil
	a.keys.syncEnabled(a.state)
	for _, line := range report.Lines(term.Summary) {
		a.logger.Warn("Failed: %s", line)
	}

	a.resetID++
	cmds := []tea.Cmd{resetButtonAfter(a.resetID)}
	if a.state.Report != nil {
		toast := a.state.Report.Detail
		if !a.state.Report.AllSucceeded {
			toast = glyphWarn + " " + toast
		}
		cmds = append(cmds, a.showToast(toast))
	}
	if a.opener != nil && term.Summary.Total() > 0 {
		cmds = append(cmds, openFolder(a.ctx, a.opener, term.Summary.Destination))
	}
	return a, tea.Batch(cmds...)
}

// showToast displays msg and schedules its removal
func (a *App) showToast(msg string) tea.Cmd {
	a.toastID++
	a.toast = msg
	return expireToastAfter(a.toastID)
}

// quit cancels any running conversion and exits
func (a *App) quit() tea.Cmd {
	if a.batches.Running() {
		a.logger.Warn("Quit during conversion; stopping the engine")
	}
	a.cancel()
	return tea.Quit
}

// View implements tea.Model
func (a *App) View() string {
	switch a.currentView {
	case ViewMain:
		return a.renderMain()
	case ViewPicker:
		return a.renderPicker()
	case ViewAbout:
		return a.renderAbout()
	default:
		return "Unknown view"
	}
}
