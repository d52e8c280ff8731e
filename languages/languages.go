// Package languages embeds the per-language scan convention definitions used
// by the element scanner: hook-name patterns, component-file extensions,
// and default exclude globs. Adding a language means dropping in a new
// *.yaml file and loading it by name via convention.Load.
package languages

import "embed"

// FS is an embed.FS containing every *.yaml file in this directory.
//
//go:embed *.yaml
var FS embed.FS
