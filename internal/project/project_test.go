package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLocateFindsRootFromNestedDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, MetaFile), "name: \"demo\"\n")
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/demo\n\ngo 1.24\n")
	nested := filepath.Join(root, "controllers", "admin")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	meta, err := Locate(nested)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if meta.Name != "demo" {
		t.Fatalf("Name = %q, want %q", meta.Name, "demo")
	}
	if meta.Module != "example.com/demo" {
		t.Fatalf("Module = %q, want %q", meta.Module, "example.com/demo")
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	got, err := filepath.EvalSymlinks(meta.Root)
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	if got != resolved {
		t.Fatalf("Root = %q, want %q", got, resolved)
	}
}

func TestLocateNoProject(t *testing.T) {
	_, err := Locate(t.TempDir())
	if !errors.Is(err, ErrNoProject) {
		t.Fatalf("expected ErrNoProject, got %v", err)
	}
}

func TestLocateRejectsInvalidMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, MetaFile), "nome: 3\n")
	if _, err := Locate(root); err == nil {
		t.Fatal("expected error for metadata without a name")
	}
}

func TestLocateReadsVarsHook(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, MetaFile),
		"name: \"demo\"\nscaffold: hooks: vars: inline: \"return vars\"\n")
	meta, err := Locate(root)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if meta.Hooks.VarsInline != "return vars" {
		t.Fatalf("VarsInline = %q", meta.Hooks.VarsInline)
	}
}

func TestLocateWithoutGoMod(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, MetaFile), "name: \"demo\"\n")
	meta, err := Locate(root)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if meta.Module != "" {
		t.Fatalf("Module = %q, want empty", meta.Module)
	}
}
