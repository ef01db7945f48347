// Package report turns a batch summary into the text shown to the user.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cuivienor/video-estados/internal/batch"
)

// MaxListed is how many failed names the detail line shows
const MaxListed = 3

// Report is the end-of-batch text
type Report struct {
	Headline     string
	Detail       string
	AllSucceeded bool
}

// Render builds the report for a completed batch
func Render(s batch.Summary) Report {
	if s.AllSucceeded() {
		return Report{
			Headline:     fmt.Sprintf("✓ %s converted", countStr(s.SuccessCount, "video", "videos")),
			Detail:       fmt.Sprintf("Saved to '%s'", filepath.Base(s.Destination)),
			AllSucceeded: true,
		}
	}

	names := make([]string, 0, MaxListed)
	for i, f := range s.Ledger {
		if i == MaxListed {
			break
		}
		names = append(names, f.Name)
	}
	detail := "Failed: " + strings.Join(names, ", ")
	if extra := len(s.Ledger) - MaxListed; extra > 0 {
		detail += fmt.Sprintf(" +%d", extra)
	}

	return Report{
		Headline: fmt.Sprintf("%d ok, %s", s.SuccessCount, countStr(s.FailureCount, "error", "errors")),
		Detail:   detail,
	}
}

// Lines returns one line per failure with its diagnostic, for logs and
// headless output
func Lines(s batch.Summary) []string {
	lines := make([]string, 0, len(s.Ledger))
	for _, f := range s.Ledger {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Name, f.Diagnostic))
	}
	return lines
}

func countStr(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
