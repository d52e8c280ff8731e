// Package reftag implements the reference-tag wire grammar:
//
//	@<Type>/<path>[#<element>][:<line>][{<json-body>}]
//
// This is the only package that touches the wire grammar; every other
// component in the repo operates on the parsed model.Reference. Round-trip
// fidelity (parse(format(r)) == r for any r whose metadata is a plain JSON
// object) is the contract every other component relies on.
package reftag

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/codegraphhq/codegraph/internal/model"
)

// Diagnostic is a non-fatal warning that parseAt returns when a metadata body
// was not valid JSON and the key=value fallback was used. ParseTag and
// ExtractTags do not pass it on to their callers.
type Diagnostic struct {
	Offset  int
	Message string
}

func isTypeStart(b byte) bool { return b >= 'A' && b <= 'Z' }

func isTypeCont(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ParseTag parses a single reference tag. It fails with model.ErrInvalidFormat
// if s does not match the grammar, or model.ErrInvalidLine if the line group
// is present but non-numeric.
func ParseTag(s string) (model.Reference, error) {
	ref, _, consumed, err := parseAt(s, 0)
	if err != nil {
		return model.Reference{}, err
	}
	if consumed != len(s) {
		return model.Reference{}, fmt.Errorf("%w: trailing characters after tag", model.ErrInvalidFormat)
	}
	return ref, nil
}

// parseAt attempts to parse one tag starting at offset i in s. It returns the
// parsed reference, any metadata-fallback diagnostic, and the index just
// past the consumed tag.
func parseAt(s string, i int) (model.Reference, *Diagnostic, int, error) {
	start := i
	if i >= len(s) || s[i] != '@' {
		return model.Reference{}, nil, start, fmt.Errorf("%w: missing '@'", model.ErrInvalidFormat)
	}
	i++

	typeStart := i
	if i >= len(s) || !isTypeStart(s[i]) {
		return model.Reference{}, nil, start, fmt.Errorf("%w: type must start with an uppercase letter", model.ErrInvalidFormat)
	}
	i++
	for i < len(s) && isTypeCont(s[i]) {
		i++
	}
	typ := s[typeStart:i]

	if i >= len(s) || s[i] != '/' {
		return model.Reference{}, nil, start, fmt.Errorf("%w: missing '/' after type", model.ErrInvalidFormat)
	}
	i++

	pathStart := i
	for i < len(s) && s[i] != '#' && s[i] != ':' && s[i] != '{' {
		i++
	}
	path := s[pathStart:i]
	if path == "" {
		return model.Reference{}, nil, start, fmt.Errorf("%w: empty path", model.ErrInvalidFormat)
	}

	ref := model.Reference{Type: typ, Path: path}

	if i < len(s) && s[i] == '#' {
		i++
		elemStart := i
		for i < len(s) && s[i] != ':' && s[i] != '{' {
			i++
		}
		ref.Element = s[elemStart:i]
	}

	if i < len(s) && s[i] == ':' {
		i++
		lineStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == lineStart {
			return model.Reference{}, nil, start, fmt.Errorf("%w: line segment is not numeric", model.ErrInvalidLine)
		}
		line, err := strconv.Atoi(s[lineStart:i])
		if err != nil {
			return model.Reference{}, nil, start, fmt.Errorf("%w: %v", model.ErrInvalidLine, err)
		}
		ref.Line = line
		ref.HasLine = true
	}

	var diag *Diagnostic
	if i < len(s) && s[i] == '{' {
		braceStart := i
		depth := 0
		inString := false
		escaped := false
		j := i
		closed := false
		for ; j < len(s); j++ {
			c := s[j]
			if inString {
				if escaped {
					escaped = false
				} else if c == '\\' {
					escaped = true
				} else if c == '"' {
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					closed = true
				}
			}
			if closed {
				j++
				break
			}
		}
		if !closed {
			return model.Reference{}, nil, start, fmt.Errorf("%w: unterminated metadata body", model.ErrInvalidFormat)
		}
		body := s[braceStart:j]
		meta, d := parseMetadata(body)
		ref.Metadata = meta
		diag = d
		i = j
	}

	return ref, diag, i, nil
}

// parseMetadata parses the interior of a JSON object (braces included in
// body). If JSON parsing fails, a degraded key=value fallback is attempted
// and a MalformedMetadata diagnostic is returned.
func parseMetadata(body string) (map[string]any, *Diagnostic) {
	var m map[string]any
	if err := json.Unmarshal([]byte(body), &m); err == nil {
		return m, nil
	}

	interior := strings.TrimSuffix(strings.TrimPrefix(body, "{"), "}")
	m = make(map[string]any)
	for _, pair := range strings.Split(interior, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k = strings.Trim(strings.TrimSpace(k), `"`)
		v = strings.TrimSpace(v)
		m[k] = coerceValue(v)
	}
	return m, &Diagnostic{Message: fmt.Sprintf("MalformedMetadata: %q is not valid JSON, fell back to key=value parsing", body)}
}

func coerceValue(v string) any {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}

// FormatTag formats a Reference back into its wire form. It requires Type
// and Path; optional sections are omitted when absent. Metadata is
// serialized as a plain JSON object; non-serializable metadata degrades to
// the key=value form used by the parser's fallback.
func FormatTag(r model.Reference) (string, error) {
	if r.Type == "" || r.Path == "" {
		return "", fmt.Errorf("%w: type and path are required", model.ErrInvalidFormat)
	}
	var b strings.Builder
	b.WriteByte('@')
	b.WriteString(r.Type)
	b.WriteByte('/')
	b.WriteString(r.Path)
	if r.Element != "" {
		b.WriteByte('#')
		b.WriteString(r.Element)
	}
	if r.HasLine {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(r.Line))
	}
	if len(r.Metadata) > 0 {
		body, err := formatMetadata(r.Metadata)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
	}
	return b.String(), nil
}

func formatMetadata(meta map[string]any) (string, error) {
	data, err := json.Marshal(meta)
	if err == nil {
		return string(data), nil
	}
	// Degrade to key=value form, deterministic key order.
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteByte('{')
	for idx, k := range keys {
		if idx > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%v", k, meta[k])
	}
	b.WriteByte('}')
	return b.String(), nil
}

// IsValid reports whether s parses as a well-formed reference tag.
func IsValid(s string) bool {
	_, err := ParseTag(s)
	return err == nil
}

// ExtractTags runs the grammar globally over a text blob. Invalid matches
// are skipped without aborting extraction.
func ExtractTags(blob string) []model.Reference {
	var out []model.Reference
	i := 0
	for i < len(blob) {
		at := strings.IndexByte(blob[i:], '@')
		if at < 0 {
			break
		}
		pos := i + at
		ref, _, consumed, err := parseAt(blob, pos)
		if err != nil {
			i = pos + 1
			continue
		}
		out = append(out, ref)
		i = consumed
	}
	return out
}
