package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"dashforge/internal/config"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Input", dir)
	if !result.Passed {
		t.Fatalf("expected pass for %q: %s", dir, result.Detail)
	}

	result = CheckDirectoryAccess("Input", filepath.Join(dir, "absent"))
	if result.Passed {
		t.Fatal("expected failure for missing directory")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	result = CheckDirectoryAccess("Input", file)
	if result.Passed {
		t.Fatal("expected failure for non-directory")
	}
}

func TestCheckSystemDeps(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	cfg := config.Default()
	statuses := CheckSystemDeps(&cfg)
	if len(statuses) != 4 {
		t.Fatalf("expected 4 statuses, got %d", len(statuses))
	}
	for _, status := range statuses {
		if status.Available {
			t.Fatalf("expected %s to be unavailable with empty PATH", status.Name)
		}
	}
	if !statuses[2].Optional || !statuses[3].Optional {
		t.Fatal("packager backends should be individually optional")
	}
}

func TestCheckDirectoriesAllowsMissingOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = dir
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.WorkDir = filepath.Join(dir, "work")

	results := CheckDirectories(&cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, result := range results {
		if !result.Passed {
			t.Fatalf("expected pass for %s: %s", result.Name, result.Detail)
		}
	}
}
