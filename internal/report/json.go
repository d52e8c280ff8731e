// Package report writes one JSON-encoding function per result type, one
// function per output, matching the teacher's report/json.go pattern
// exactly (each write*JSON function sets the same two-space indent and
// encodes one value).
package report

import (
	"encoding/json"
	"io"

	"github.com/codegraphhq/codegraph/internal/export"
	"github.com/codegraphhq/codegraph/internal/model"
)

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func WriteAnalysisJSON(w io.Writer, r model.AnalysisResult) error { return encode(w, r) }

func WriteQueryJSON(w io.Writer, r model.QueryResult) error { return encode(w, r) }

func WriteImpactJSON(w io.Writer, r model.BlastRadius) error { return encode(w, r) }

func WriteDriftJSON(w io.Writer, r []model.DriftReport) error { return encode(w, r) }

func WriteExportJSON(w io.Writer, doc export.Document) error { return encode(w, doc) }

func WriteScanJSON(w io.Writer, elements []model.Element, diagnostics []model.ScanError) error {
	return encode(w, struct {
		Elements    []model.Element   `json:"elements"`
		Diagnostics []model.ScanError `json:"diagnostics,omitempty"`
	}{elements, diagnostics})
}
