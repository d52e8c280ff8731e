package scanner

import "strings"

// variant is the tagged-variant capability interface the spec's design note
// calls for: Scan picks one concrete variant per file extension through
// variantFor, never a heterogeneous list of opaque handlers.
type variant interface {
	Scan(sourceText, filePath string, opts Options) (Result, error)
}

// kind tags which concrete variant backs a given extension. Js/Ts/Jsx/Tsx
// all share the jsVariant backend (the grammar differences that matter for
// element/edge extraction are negligible at this heuristic's precision).
// variantFor returns nil for kindOther, and Scan then returns an empty
// Result; otherVariant is a no-op variant that variantFor does not return.
type kind int

const (
	kindOther kind = iota
	kindJs
	kindTs
	kindJsx
	kindTsx
	kindGo
)

func extKind(filePath string) kind {
	ext := ""
	if i := strings.LastIndexByte(filePath, '.'); i >= 0 {
		ext = strings.ToLower(filePath[i+1:])
	}
	switch ext {
	case "js", "mjs", "cjs":
		return kindJs
	case "ts":
		return kindTs
	case "jsx":
		return kindJsx
	case "tsx":
		return kindTsx
	case "go":
		return kindGo
	default:
		return kindOther
	}
}

type otherVariant struct{}

func (otherVariant) Scan(string, string, Options) (Result, error) { return Result{}, nil }

func variantFor(filePath string) variant {
	switch extKind(filePath) {
	case kindJs, kindTs, kindJsx, kindTsx:
		return jsVariant{jsx: extKind(filePath) == kindJsx || extKind(filePath) == kindTsx}
	case kindGo:
		return goVariant{}
	default:
		return nil
	}
}
