// Package convention loads the embedded per-language scan conventions (hook
// naming, component extensions, constant naming, default excludes) that the
// scanner and orchestrator consult. It mirrors the teacher's
// capability.PatternSet/LoadPatterns pairing, swapped to yaml.v3 over the
// languages embed.FS for a different YAML shape.
package convention

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/codegraphhq/codegraph/languages"
)

// Set holds the resolved scan conventions for one configuration name.
type Set struct {
	Name                string
	HookPrefix          string
	ComponentExtensions map[string]bool
	ConstantPattern     *regexp.Regexp
	DefaultExcludes     []string
}

type raw struct {
	Name                string   `yaml:"name"`
	HookPrefix          string   `yaml:"hook_prefix"`
	ComponentExtensions []string `yaml:"component_extensions"`
	ConstantPattern     string   `yaml:"constant_pattern"`
	DefaultExcludes     []string `yaml:"default_excludes"`
}

// Load reads and parses <name>.yaml from the embedded FS.
func Load(name string) (*Set, error) {
	data, err := languages.FS.ReadFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("load conventions for %q: %w", name, err)
	}
	var r raw
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse %s.yaml: %w", name, err)
	}
	pat, err := regexp.Compile(r.ConstantPattern)
	if err != nil {
		return nil, fmt.Errorf("%s.yaml constant_pattern: %w", name, err)
	}
	exts := make(map[string]bool, len(r.ComponentExtensions))
	for _, e := range r.ComponentExtensions {
		exts[e] = true
	}
	return &Set{
		Name:                r.Name,
		HookPrefix:          r.HookPrefix,
		ComponentExtensions: exts,
		ConstantPattern:     pat,
		DefaultExcludes:     r.DefaultExcludes,
	}, nil
}

// MustLoad is like Load but panics on error; safe at package-init time since
// the YAML is embedded at compile time.
func MustLoad(name string) *Set {
	s, err := Load(name)
	if err != nil {
		panic(fmt.Sprintf("codegraph: %v", err))
	}
	return s
}

var hookRe = regexp.MustCompile(`^use[A-Z]`)

// IsHookName reports whether name follows the useXxx convention, independent
// of the configured HookPrefix (the pattern is fixed). The scanner consults
// HookPrefix only as a switch: an empty prefix turns hook classification off.
func IsHookName(name string) bool {
	return hookRe.MatchString(name)
}

var pascalRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// IsPascalCase reports whether name could be a component identifier.
func IsPascalCase(name string) bool {
	return pascalRe.MatchString(name)
}
