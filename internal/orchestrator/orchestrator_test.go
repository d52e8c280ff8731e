package orchestrator

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestWalkCollectsElementsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "function a() {}\n")
	writeFile(t, dir, "b.ts", "function b() {}\n")
	writeFile(t, dir, "skip.md", "# not scanned\n")

	out, err := Walk(dir, Options{Recursive: true})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(out.Files) != 2 {
		t.Fatalf("expected 2 scanned files, got %d: %+v", len(out.Files), out.Files)
	}
	if len(out.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d: %+v", len(out.Elements), out.Elements)
	}
}

func TestWalkProgressIsMonotonicAndEndsAtFull(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		writeFile(t, dir, filepath.Join("pkg", string(rune('a'+i))+".js"), "function f() {}\n")
	}

	var percents []int
	_, err := Walk(dir, Options{
		Recursive: true,
		OnProgress: func(p Progress) {
			percents = append(percents, p.PercentComplete)
		},
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(percents) != 5 {
		t.Fatalf("expected 5 progress callbacks, got %d: %+v", len(percents), percents)
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Fatalf("progress regressed: %v", percents)
		}
	}
	if percents[len(percents)-1] != 100 {
		t.Fatalf("expected final progress of 100, got %d", percents[len(percents)-1])
	}
}

func TestWalkRespectsExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "function a() {}\n")
	writeFile(t, dir, "a.py", "def a(): pass\n")

	out, err := Walk(dir, Options{Recursive: true, Extensions: []string{"js"}})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(out.Files) != 1 || out.Files[0] != "a.js" {
		t.Fatalf("expected only a.js to be scanned, got %+v", out.Files)
	}
}

func TestWalkNonRecursiveSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.js", "function top() {}\n")
	writeFile(t, dir, "nested/deep.js", "function deep() {}\n")

	out, err := Walk(dir, Options{Recursive: false})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(out.Files) != 1 || out.Files[0] != "top.js" {
		t.Fatalf("expected only the top-level file, got %+v", out.Files)
	}
}

func TestWalkRecordsDiagnosticsForParseErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.go", "package p\nfunc broken( {\n")
	writeFile(t, dir, "ok.js", "function ok() {}\n")

	out, err := Walk(dir, Options{Recursive: true, Extensions: []string{"go", "js"}})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(out.Diagnostics) != 1 || out.Diagnostics[0].File != "broken.go" {
		t.Fatalf("expected 1 diagnostic for broken.go, got %+v", out.Diagnostics)
	}
	if len(out.Elements) != 1 || out.Elements[0].Name != "ok" {
		t.Fatalf("expected the good file to still be scanned, got %+v", out.Elements)
	}
}

func TestWalkExcludesMatchingPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.js", "function keep() {}\n")
	writeFile(t, dir, "vendor/dep.js", "function dep() {}\n")

	out, err := Walk(dir, Options{Recursive: true, Exclude: []string{"vendor/*"}})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(out.Files) != 1 || out.Files[0] != "keep.js" {
		t.Fatalf("expected vendor/dep.js to be excluded, got %+v", out.Files)
	}
}
