// Package tag implements the "codegraph tag" subcommand: a thin CLI wrapper
// around the reference-tag codec, for scripting and ad-hoc inspection.
package tag

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/reftag"
)

func Run(args []string) int {
	fs := flag.NewFlagSet("tag", flag.ExitOnError)
	parse := fs.String("parse", "", "parse a reference tag and print its fields")
	format := fs.String("format", "", "format a bare type/path[#element][:line] into a tag")
	extract := fs.String("extract", "", "extract every reference tag from a file")
	fs.Parse(args)

	switch {
	case *parse != "":
		ref, err := reftag.ParseTag(*parse)
		if err != nil {
			fmt.Fprintln(os.Stderr, "parse:", err)
			return 1
		}
		fmt.Fprintf(os.Stdout, "type:     %s\n", ref.Type)
		fmt.Fprintf(os.Stdout, "path:     %s\n", ref.Path)
		if ref.Element != "" {
			fmt.Fprintf(os.Stdout, "element:  %s\n", ref.Element)
		}
		if ref.HasLine {
			fmt.Fprintf(os.Stdout, "line:     %d\n", ref.Line)
		}
		for k, v := range ref.Metadata {
			fmt.Fprintf(os.Stdout, "meta.%-4s %v\n", k, v)
		}
		return 0

	case *format != "":
		ref, err := parseBareSpec(*format)
		if err != nil {
			fmt.Fprintln(os.Stderr, "format:", err)
			return 1
		}
		out, err := reftag.FormatTag(ref)
		if err != nil {
			fmt.Fprintln(os.Stderr, "format:", err)
			return 1
		}
		fmt.Fprintln(os.Stdout, out)
		return 0

	case *extract != "":
		data, err := os.ReadFile(*extract)
		if err != nil {
			fmt.Fprintln(os.Stderr, "extract:", err)
			return 2
		}
		refs := reftag.ExtractTags(string(data))
		for _, r := range refs {
			out, err := reftag.FormatTag(r)
			if err != nil {
				continue
			}
			fmt.Fprintln(os.Stdout, out)
		}
		return 0

	default:
		fmt.Fprintln(os.Stderr, "usage: codegraph tag --parse <tag> | --format <type>/<path>[#<element>][:<line>] | --extract <file>")
		return 2
	}
}

// parseBareSpec parses a "type/path[#element][:line]" spec, the bare form
// --format accepts, into a model.Reference ready for reftag.FormatTag.
func parseBareSpec(spec string) (model.Reference, error) {
	typ, rest, ok := strings.Cut(spec, "/")
	if !ok || typ == "" {
		return model.Reference{}, fmt.Errorf("%w: missing '/' after type", model.ErrInvalidFormat)
	}
	ref := model.Reference{Type: typ}

	if p, line, ok := strings.Cut(rest, ":"); ok {
		rest = p
		n, err := strconv.Atoi(line)
		if err != nil {
			return model.Reference{}, fmt.Errorf("%w: %v", model.ErrInvalidLine, err)
		}
		ref.Line = n
		ref.HasLine = true
	}
	if p, elem, ok := strings.Cut(rest, "#"); ok {
		rest = p
		ref.Element = elem
	}
	ref.Path = rest
	if ref.Path == "" {
		return model.Reference{}, fmt.Errorf("%w: empty path", model.ErrInvalidFormat)
	}
	return ref, nil
}
