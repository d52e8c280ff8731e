package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunMissingRootUsage(t *testing.T) {
	if code := Run(nil); code != 2 {
		t.Fatalf("expected exit 2 for missing root, got %d", code)
	}
}

func TestRunExportsCleanProject(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte("function a() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := Run([]string{dir}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
}

func TestRunNonexistentRootErrors(t *testing.T) {
	code := Run([]string{"/nonexistent/root/path"})
	if code != 2 {
		t.Fatalf("expected exit 2 for a nonexistent scan root, got %d", code)
	}
}
