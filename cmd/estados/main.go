package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cuivienor/video-estados/internal/batch"
	"github.com/cuivienor/video-estados/internal/config"
	"github.com/cuivienor/video-estados/internal/desktop"
	"github.com/cuivienor/video-estados/internal/logging"
	"github.com/cuivienor/video-estados/internal/report"
	"github.com/cuivienor/video-estados/internal/scanner"
	"github.com/cuivienor/video-estados/internal/transcode"
	"github.com/cuivienor/video-estados/internal/tui"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const usage = "Usage: estados [-dir <folder>] [-headless] [-no-open] [-config <path>] [-log <path>] [-v]"

// ErrVideosFailed is returned by a headless run in which some video failed
var ErrVideosFailed = errors.New("some videos failed to convert")

// Options holds parsed command-line options
type Options struct {
	ConfigPath  string
	Dir         string
	LogPath     string
	Headless    bool
	NoOpen      bool
	Verbose     bool
	ShowVersion bool
}

// deps holds the wired components
type deps struct {
	prober  *transcode.Prober
	batches *batch.Coordinator
	opener  tui.FolderOpener // nil when opening is disabled
	logger  *logging.Logger
}

func main() {
	opts, err := ParseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if opts.ShowVersion {
		fmt.Printf("estados %s\n", version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *Options) error {
	cfg, err := LoadConfig(opts, getEnvMap())
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so only headless runs log to the console
	logOpts := logging.Options{FilePath: cfg.LogPath(), Verbose: opts.Verbose}
	if opts.Headless {
		logOpts.Console = os.Stderr
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := wire(cfg, logger)
	logger.Debug("Engine %s, vainfo %s, log %s", cfg.FFmpegPath(), cfg.VainfoPath(), cfg.LogPath())

	if opts.Headless {
		return runHeadless(ctx, os.Stdout, opts.Dir, d)
	}

	app := tui.NewApp(tui.Options{
		Prober:  d.prober,
		Batches: d.batches,
		Opener:  d.opener,
		Logger:  logger,
		Dir:     opts.Dir,
		Version: version,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}

// wire builds the components from configuration
func wire(cfg *config.Config, logger *logging.Logger) *deps {
	d := &deps{
		prober:  transcode.NewProber(cfg.FFmpegPath(), cfg.VainfoPath(), logger),
		batches: batch.NewCoordinator(transcode.NewRunner(cfg.FFmpegPath(), logger), logger),
		logger:  logger,
	}
	if cfg.ShouldOpenOnComplete() {
		d.opener = desktop.NewOpener(cfg.OpenerCommand(), logger)
	}
	return d
}

// runHeadless converts dir without the TUI, printing one line per event
func runHeadless(ctx context.Context, w io.Writer, dir string, d *deps) error {
	caps := d.prober.Probe(ctx)
	if !caps.EnginePresent {
		fmt.Fprintf(w, "Warning: %v, every video will fail\n", transcode.ErrEngineMissing)
	}
	if caps.HWAccel {
		d.logger.Info("VAAPI H.264 acceleration detected")
	}

	files, err := scanner.Scan(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No videos in this folder")
		return nil
	}
	fmt.Fprintf(w, "Found %d videos: %s\n", len(files), scanner.Summarize(files, 2))

	events, err := d.batches.Start(ctx, files, transcode.DestinationDir(dir))
	if err != nil {
		return err
	}

	var summary batch.Summary
	for ev := range events {
		switch e := ev.(type) {
		case batch.ProgressEvent:
			fmt.Fprintf(w, "%3.0f%%  %s\n", e.Fraction*100, e.Label)
		case batch.TerminalEvent:
			summary = e.Summary
		}
	}

	r := report.Render(summary)
	fmt.Fprintln(w, r.Headline)
	fmt.Fprintln(w, r.Detail)
	for _, line := range report.Lines(summary) {
		fmt.Fprintf(w, "  %s\n", line)
	}

	if d.opener != nil {
		// Failures are logged by the opener
		_ = d.opener.Open(ctx, summary.Destination)
	}

	if !r.AllSucceeded {
		return fmt.Errorf("%w: %d of %d", ErrVideosFailed, summary.FailureCount, summary.Total())
	}
	d.logger.Success("%s in %s", r.Headline, summary.Duration().Round(time.Second))
	return nil
}

// ParseArgs parses command-line arguments
func ParseArgs(args []string) (*Options, error) {
	fs := flag.NewFlagSet("estados", flag.ContinueOnError)

	opts := &Options{}
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to config file")
	fs.StringVar(&opts.Dir, "dir", "", "Folder of videos to convert")
	fs.StringVar(&opts.LogPath, "log", "", "Path to log file")
	fs.BoolVar(&opts.Headless, "headless", false, "Convert -dir without the interactive UI")
	fs.BoolVar(&opts.NoOpen, "no-open", false, "Do not open the output folder when done")
	fs.BoolVar(&opts.Verbose, "v", false, "Verbose logging")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if opts.Headless && opts.Dir == "" {
		return nil, errors.New("-dir is required with -headless")
	}

	return opts, nil
}

// LoadConfig loads the config file and applies environment and flag overrides
func LoadConfig(opts *Options, env map[string]string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if val := env["FFMPEG_PATH"]; val != "" {
		cfg.Tools.FFmpeg = val
	}
	if val := env["VAINFO_PATH"]; val != "" {
		cfg.Tools.Vainfo = val
	}

	if opts.LogPath != "" {
		cfg.LogFile = opts.LogPath
	}
	if opts.NoOpen {
		open := false
		cfg.OpenOnComplete = &open
	}

	return cfg, nil
}

// getEnvMap returns environment variables as a map
func getEnvMap() map[string]string {
	return map[string]string{
		"FFMPEG_PATH": os.Getenv("FFMPEG_PATH"),
		"VAINFO_PATH": os.Getenv("VAINFO_PATH"),
	}
}
