package model

// Reference is the parsed form of a symbolic reference tag:
// @<Type>/<path>[#<element>][:<line>][{<json-body>}]
type Reference struct {
	Type     string
	Path     string
	Element  string
	Line     int
	HasLine  bool
	Metadata map[string]any
}

// IndexedReference is a Reference plus provenance: where the tag was found,
// not what it points to.
type IndexedReference struct {
	Reference
	File        string
	IndexLine   int
	OriginalTag string
}

// DriftStatus classifies how an IndexedReference compares to the current
// scan.
type DriftStatus string

const (
	DriftUnchanged DriftStatus = "unchanged"
	DriftMoved     DriftStatus = "moved"
	DriftRenamed   DriftStatus = "renamed"
	DriftMissing   DriftStatus = "missing"
	DriftAmbiguous DriftStatus = "ambiguous"
	DriftError     DriftStatus = "error"
	DriftUnknown   DriftStatus = "unknown"
)

// DriftReport is the outcome of reconciling one IndexedReference against a
// fresh AnalysisResult.
type DriftReport struct {
	Indexed        IndexedReference
	Status         DriftStatus
	CurrentElement *Element
	Message        string
	SuggestedFix   string
	Confidence     float64
}
