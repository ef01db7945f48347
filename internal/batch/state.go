package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cuivienor/video-estados/internal/model"
)

// Progress glyphs for the post-item label
const (
	glyphOK   = "✓"
	glyphWarn = "⚠"
)

// state is the in-flight batch. Only the batch goroutine touches it.
type state struct {
	id        string
	files     []model.VideoFile
	destDir   string
	cursor    int
	succeeded int
	failed    int
	ledger    []model.Failure
	startedAt time.Time
}

// newState starts a batch over a private copy of files with zeroed counters
func newState(files []model.VideoFile, destDir string) *state {
	return &state{
		id:        uuid.NewString(),
		files:     append([]model.VideoFile(nil), files...),
		destDir:   destDir,
		ledger:    []model.Failure{},
		startedAt: time.Now(),
	}
}

func (s *state) done() bool {
	return s.cursor >= len(s.files)
}

func (s *state) current() model.VideoFile {
	return s.files[s.cursor]
}

// begin returns the event announcing the current item
func (s *state) begin() ProgressEvent {
	total := len(s.files)
	return ProgressEvent{
		Fraction: float64(s.cursor) / float64(total),
		Label:    fmt.Sprintf("[%d/%d] %s", s.cursor+1, total, s.current().Name),
		Index:    s.cursor,
		Total:    total,
	}
}

// step folds the current item's outcome into the counters and ledger,
// advances the cursor and returns the post-item event
func (s *state) step(outcome model.ConversionOutcome) ProgressEvent {
	file := s.current()

	if outcome.IsSuccess() {
		s.succeeded++
	} else {
		s.failed++
		s.ledger = append(s.ledger, model.Failure{Name: file.Name, Diagnostic: outcome.Diagnostic})
	}

	glyph := glyphOK
	if s.failed > 0 {
		glyph = glyphWarn
	}

	s.cursor++
	total := len(s.files)
	return ProgressEvent{
		Fraction: float64(s.cursor) / float64(total),
		Label:    glyph + " " + file.Name,
		Index:    s.cursor - 1,
		Total:    total,
		Outcome:  &outcome,
	}
}

// finish returns the summary of a completed batch
func (s *state) finish() Summary {
	return Summary{
		BatchID:      s.id,
		Destination:  s.destDir,
		SuccessCount: s.succeeded,
		FailureCount: s.failed,
		Ledger:       s.ledger,
		StartedAt:    s.startedAt,
		FinishedAt:   time.Now(),
	}
}
