// Package logging provides a leveled printf-style logger with an optional
// append-only file sink and an optional console sink.
//
// The TUI owns the terminal while it runs, so interactive sessions open the
// logger with the file sink only; headless runs enable both.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Level tag styles for the console sink
var (
	infoTag    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	successTag = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	warnTag    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorTag   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	debugTag   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("44"))
)

// Options configures a Logger
type Options struct {
	FilePath string    // Append log lines here when set
	Console  io.Writer // Mirror log lines here when set (usually os.Stderr)
	Verbose  bool      // Emit Debug lines
}

// Logger writes timestamped, leveled lines. Safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	console io.Writer
	color   bool
	verbose bool
}

// New creates a logger. Call Close when done if FilePath was set.
func New(opts Options) (*Logger, error) {
	l := &Logger{
		console: opts.Console,
		verbose: opts.Verbose,
	}

	if f, ok := opts.Console.(*os.File); ok {
		l.color = isatty.IsTerminal(f.Fd()) && os.Getenv("NO_COLOR") == ""
	}

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
	}

	return l, nil
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{}
}

// Close closes the log file if one was opened
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level string, tag lipgloss.Style, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	plain := ts + " [" + level + "] " + text + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.console != nil {
		if l.color {
			_, _ = io.WriteString(l.console, ts+" "+tag.Render("["+level+"]")+" "+text+"\n")
		} else {
			_, _ = io.WriteString(l.console, plain)
		}
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", infoTag, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", successTag, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", warnTag, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", errorTag, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level, only when the logger is verbose
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", debugTag, fmt.Sprintf(format, args...))
}
