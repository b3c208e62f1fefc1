package appconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMarshalCanonical(t *testing.T) {
	doc := map[string]any{
		"name":  "demo",
		"app":   map[string]any{"factory": "config/app.New"},
		"debug": true,
	}
	got, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "app:\n  factory: config/app.New\ndebug: true\nname: demo\n"
	if string(got) != want {
		t.Fatalf("Marshal = %q, want %q", string(got), want)
	}
	// Canonical encoding must be stable across calls.
	again, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(again) != string(got) {
		t.Fatal("Marshal is not deterministic")
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "development.yaml")
	if err := WriteFile(path, map[string]any{"name": "x", "app": map[string]any{"factory": "config/app.New"}}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty file written")
	}
	if _, err := Load(FileLocator(path), dir); err != nil {
		t.Fatalf("written config should load: %v", err)
	}
}
