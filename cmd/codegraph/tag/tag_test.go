package tag

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunNoFlagsUsage(t *testing.T) {
	if code := Run(nil); code != 2 {
		t.Fatalf("expected exit 2 with no flags, got %d", code)
	}
}

func TestRunParse(t *testing.T) {
	code := Run([]string{"--parse", "@Fn/analyzer/analyzer-service#analyze:96"})
	if code != 0 {
		t.Fatalf("expected exit 0 parsing a well-formed tag, got %d", code)
	}
}

func TestRunParseMalformed(t *testing.T) {
	code := Run([]string{"--parse", "not a tag"})
	if code != 1 {
		t.Fatalf("expected exit 1 for a malformed tag, got %d", code)
	}
}

func TestRunFormat(t *testing.T) {
	code := Run([]string{"--format", "Fn/analyzer/analyzer-service#analyze:96"})
	if code != 0 {
		t.Fatalf("expected exit 0 formatting a bare spec, got %d", code)
	}
}

func TestRunFormatMissingSlash(t *testing.T) {
	code := Run([]string{"--format", "Fn"})
	if code != 1 {
		t.Fatalf("expected exit 1 for a bare spec missing '/', got %d", code)
	}
}

func TestRunExtract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("see @Fn/a/b#c:1 for details"), 0o644); err != nil {
		t.Fatal(err)
	}
	code := Run([]string{"--extract", path})
	if code != 0 {
		t.Fatalf("expected exit 0 extracting tags, got %d", code)
	}
}

func TestRunExtractMissingFile(t *testing.T) {
	code := Run([]string{"--extract", "/nonexistent/file.txt"})
	if code != 2 {
		t.Fatalf("expected exit 2 for a missing file, got %d", code)
	}
}
