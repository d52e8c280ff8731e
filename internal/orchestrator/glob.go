package orchestrator

import "strings"

// matchGlob evaluates one exclude pattern against a normalized (forward
// slash, no leading "./") relative path. "**" matches any number of path
// segments (including zero), "*" matches within one segment, "?" matches
// exactly one character.
func matchGlob(pattern, path string) bool {
	pSegs := strings.Split(pattern, "/")
	sSegs := strings.Split(path, "/")
	return matchSegs(pSegs, sSegs)
}

func matchSegs(pat, seg []string) bool {
	if len(pat) == 0 {
		return len(seg) == 0
	}
	if pat[0] == "**" {
		if matchSegs(pat[1:], seg) {
			return true
		}
		for i := 1; i <= len(seg); i++ {
			if matchSegs(pat[1:], seg[i:]) {
				return true
			}
		}
		return false
	}
	if len(seg) == 0 {
		return false
	}
	if !matchSegment(pat[0], seg[0]) {
		return false
	}
	return matchSegs(pat[1:], seg[1:])
}

func matchSegment(pat, s string) bool {
	// Anchor a simple glob (only "*" and "?" wildcards within a segment).
	return matchSegRunes([]rune(pat), []rune(s))
}

func matchSegRunes(pat, s []rune) bool {
	if len(pat) == 0 {
		return len(s) == 0
	}
	switch pat[0] {
	case '*':
		if matchSegRunes(pat[1:], s) {
			return true
		}
		for i := 1; i <= len(s); i++ {
			if matchSegRunes(pat[1:], s[i:]) {
				return true
			}
		}
		return false
	case '?':
		if len(s) == 0 {
			return false
		}
		return matchSegRunes(pat[1:], s[1:])
	default:
		if len(s) == 0 || s[0] != pat[0] {
			return false
		}
		return matchSegRunes(pat[1:], s[1:])
	}
}

func anyMatch(patterns []string, path string) bool {
	for _, p := range patterns {
		if matchGlob(p, path) {
			return true
		}
	}
	return false
}
