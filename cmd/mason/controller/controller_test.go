package controller

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quarryhq/mason/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newProject(t *testing.T, meta string) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, project.MetaFile), meta)
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/demo\n\ngo 1.24\n")
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRunCreatesControllerAndTest(t *testing.T) {
	root := newProject(t, "name: \"demo\"\n")
	if err := run(root, "admin/trackback", true); err != nil {
		t.Fatalf("run: %v", err)
	}

	ctrl := readFile(t, filepath.Join(root, "controllers", "admin", "trackback.go"))
	if !strings.Contains(ctrl, "package admin") {
		t.Fatalf("controller package wrong:\n%s", ctrl)
	}
	if !strings.Contains(ctrl, "TrackbackController") {
		t.Fatalf("controller type missing:\n%s", ctrl)
	}

	stub := readFile(t, filepath.Join(root, "tests", "functional", "test_admin_trackback.go"))
	if !strings.Contains(stub, "func TestTrackbackController(") {
		t.Fatalf("test function missing:\n%s", stub)
	}
	if !strings.Contains(stub, "example.com/demo/config/app") {
		t.Fatalf("test app import missing:\n%s", stub)
	}
}

func TestRunNoTest(t *testing.T) {
	root := newProject(t, "name: \"demo\"\n")
	if err := run(root, "comments", false); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "controllers", "comments.go")); err != nil {
		t.Fatalf("controller missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "tests", "functional", "test_comments.go")); !os.IsNotExist(err) {
		t.Fatalf("test stub created despite --no-test: %v", err)
	}
}

func TestRunNormalizesHyphens(t *testing.T) {
	root := newProject(t, "name: \"demo\"\n")
	if err := run(root, "live-search", false); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "controllers", "live_search.go")); err != nil {
		t.Fatalf("normalized controller missing: %v", err)
	}
}

func TestRunRejectsImportableName(t *testing.T) {
	root := newProject(t, "name: \"demo\"\n")
	err := run(root, "fmt", true)
	if err == nil {
		t.Fatal("expected collision error")
	}
	if !strings.Contains(err.Error(), "my_fmt") {
		t.Fatalf("collision message lacks alias suggestion: %v", err)
	}
	if strings.Contains(err.Error(), "unknown error") {
		t.Fatalf("collision must not be rewrapped: %v", err)
	}
}

func TestRunOutsideProject(t *testing.T) {
	err := run(t.TempDir(), "comments", true)
	if !errors.Is(err, project.ErrNoProject) {
		t.Fatalf("err = %v, want ErrNoProject", err)
	}
}

func TestRunAppliesVarsHook(t *testing.T) {
	meta := "name: \"demo\"\n" +
		"scaffold: hooks: vars: inline: #\"vars[\"ClassName\"] = \"Widget\"; return vars\"#\n"
	root := newProject(t, meta)
	if err := run(root, "gadget", false); err != nil {
		t.Fatalf("run: %v", err)
	}
	ctrl := readFile(t, filepath.Join(root, "controllers", "gadget.go"))
	if !strings.Contains(ctrl, "WidgetController") {
		t.Fatalf("vars hook did not apply:\n%s", ctrl)
	}
}

func TestRunRewrapsGenerationErrors(t *testing.T) {
	root := newProject(t, "name: \"demo\"\n")
	writeFile(t, filepath.Join(root, "controllers", "comments.go"), "package controllers\n")
	err := run(root, "comments", false)
	if err == nil {
		t.Fatal("expected overwrite failure")
	}
	if !strings.HasPrefix(err.Error(), "an unknown error occurred, ") {
		t.Fatalf("generation error not rewrapped: %v", err)
	}
}
