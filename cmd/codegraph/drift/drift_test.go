package drift

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunMissingFlagsUsage(t *testing.T) {
	if code := Run(nil); code != 2 {
		t.Fatalf("expected exit 2 for missing index/root, got %d", code)
	}
}

func TestRunMissingIndexFile(t *testing.T) {
	dir := t.TempDir()
	code := Run([]string{"--index", "/nonexistent/index.txt", dir})
	if code != 2 {
		t.Fatalf("expected exit 2 for a missing index file, got %d", code)
	}
}

func TestRunUnchangedReference(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte("function handle() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	idx := filepath.Join(dir, "index.txt")
	if err := os.WriteFile(idx, []byte("@Fn/a.js#handle:1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code := Run([]string{"--index", idx, dir})
	if code != 0 {
		t.Fatalf("expected exit 0 for an unchanged reference, got %d", code)
	}
}

func TestRunMissingReferenceTripsExitOne(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte("function other() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	idx := filepath.Join(dir, "index.txt")
	if err := os.WriteFile(idx, []byte("@Fn/a.js#handle:1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code := Run([]string{"--index", idx, dir})
	if code != 1 {
		t.Fatalf("expected exit 1 for a reference that went missing, got %d", code)
	}
}

func TestRunIndexSkipsBlankAndCommentLines(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte("function handle() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	idx := filepath.Join(dir, "index.txt")
	content := "# this is a comment\n\n@Fn/a.js#handle:1\n"
	if err := os.WriteFile(idx, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	code := Run([]string{"--index", idx, dir})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
}

func TestRunJSONOutput(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte("function handle() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	idx := filepath.Join(dir, "index.txt")
	if err := os.WriteFile(idx, []byte("@Fn/a.js#handle:1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code := Run([]string{"--json", "--index", idx, dir})
	if code != 0 {
		t.Fatalf("expected exit 0 for --json, got %d", code)
	}
}
