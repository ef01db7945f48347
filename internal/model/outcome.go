package model

import "time"

// OutcomeStatus is the result class of a single conversion
type OutcomeStatus int

const (
	StatusSuccess OutcomeStatus = iota
	StatusFailed
	StatusTimedOut
)

func (s OutcomeStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Diagnostics used when the engine gives nothing better
const (
	DiagnosticTimeout = "Timeout (>5min)"
	DiagnosticUnknown = "Unknown"
)

// ConversionOutcome is what one engine invocation produced
type ConversionOutcome struct {
	File       VideoFile
	Status     OutcomeStatus
	Diagnostic string // Empty on success
	OutputPath string
	Duration   time.Duration
}

// IsSuccess returns true if the file was converted
func (o ConversionOutcome) IsSuccess() bool {
	return o.Status == StatusSuccess
}

// Failure is one entry of a batch's failure ledger
type Failure struct {
	Name       string
	Diagnostic string
}

// Failure returns the ledger entry for this outcome
func (o ConversionOutcome) Failure() Failure {
	return Failure{Name: o.File.Name, Diagnostic: o.Diagnostic}
}
