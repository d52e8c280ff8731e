package main

import (
	"fmt"
	"os"

	"github.com/codegraphhq/codegraph/cmd/codegraph/analyze"
	"github.com/codegraphhq/codegraph/cmd/codegraph/drift"
	"github.com/codegraphhq/codegraph/cmd/codegraph/export"
	"github.com/codegraphhq/codegraph/cmd/codegraph/impact"
	"github.com/codegraphhq/codegraph/cmd/codegraph/query"
	"github.com/codegraphhq/codegraph/cmd/codegraph/scan"
	"github.com/codegraphhq/codegraph/cmd/codegraph/tag"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "scan":
		os.Exit(scan.Run(os.Args[2:]))
	case "analyze":
		os.Exit(analyze.Run(os.Args[2:]))
	case "query":
		os.Exit(query.Run(os.Args[2:]))
	case "impact":
		os.Exit(impact.Run(os.Args[2:]))
	case "tag":
		os.Exit(tag.Run(os.Args[2:]))
	case "drift":
		os.Exit(drift.Run(os.Args[2:]))
	case "export":
		os.Exit(export.Run(os.Args[2:]))
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `codegraph — code-intelligence and dependency-graph engine

Usage:
  codegraph scan    [--json] [--timings] [--ext ts,tsx,js,jsx] <root>
  codegraph analyze [--json] [--timings] <root>
  codegraph query   [--json] --type what-calls-me|what-depends-on|centrality|shortest-path|neighborhood --target <id> [--depth N] <root>
  codegraph impact  [--json] --target <id> [--depth N] [--fail-on medium|high|critical] <root>
  codegraph tag     --parse <tag> | --format <type>/<path>[#<element>][:<line>] | --extract <file>
  codegraph drift   [--json] --index <file> <root>
  codegraph export  [--json] <root>
  codegraph version`)
}
