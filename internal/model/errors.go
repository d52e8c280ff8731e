package model

import (
	"encoding/json"
	"errors"
)

// Sentinel errors for the taxonomy in the reference-tag codec and query
// engine. Wrap with fmt.Errorf("...: %w", ErrX) at call sites so callers can
// match with errors.Is.
var (
	ErrInvalidFormat  = errors.New("invalid reference tag format")
	ErrInvalidLine    = errors.New("invalid line number in reference tag")
	ErrUnknownElement = errors.New("unknown element")
	ErrCancelled      = errors.New("scan cancelled")
)

// ScanError is a per-file diagnostic: a parse or I/O failure that the
// orchestrator records without aborting the scan.
type ScanError struct {
	File string
	Err  error
}

func (e *ScanError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the wrapped error as a plain message string so
// diagnostics serialize legibly instead of as an empty error object.
func (e *ScanError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		File  string `json:"file"`
		Error string `json:"error"`
	}{e.File, e.Err.Error()})
}
