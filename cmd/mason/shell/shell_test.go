package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quarryhq/mason/internal/appconfig"
	"github.com/quarryhq/mason/internal/session"
	"github.com/quarryhq/mason/webtest"
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

const appFactorySrc = `package app

import "net/http"

func New(cfg map[string]any) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}
`

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/demo\n\ngo 1.24\n")
	writeFile(t, filepath.Join(root, "config", "app", "app.go"), appFactorySrc)
	return root
}

func TestSplitFactory(t *testing.T) {
	tests := []struct {
		in      string
		pkg     string
		fn      string
		wantErr bool
	}{
		{in: "config/app.New", pkg: "config/app", fn: "New"},
		{in: "example.com/demo/config/app.New", pkg: "example.com/demo/config/app", fn: "New"},
		{in: "New", wantErr: true},
		{in: "config/app.", wantErr: true},
		{in: ".New", wantErr: true},
	}
	for _, tt := range tests {
		pkg, fn, err := splitFactory(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("splitFactory(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("splitFactory(%q): %v", tt.in, err)
		}
		if pkg != tt.pkg || fn != tt.fn {
			t.Fatalf("splitFactory(%q) = (%q, %q), want (%q, %q)", tt.in, pkg, fn, tt.pkg, tt.fn)
		}
	}
}

func TestNonEmpty(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{name: "nil", v: nil, want: false},
		{name: "empty map", v: map[string]any{}, want: false},
		{name: "map", v: map[string]any{"k": 1}, want: true},
		{name: "empty string", v: "", want: false},
		{name: "string", v: "x", want: true},
		{name: "int", v: 0, want: true},
		{name: "nil pointer", v: (*int)(nil), want: false},
	}
	for _, tt := range tests {
		if got := nonEmpty(tt.v); got != tt.want {
			t.Fatalf("%s: nonEmpty = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDefaultConfigMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	err := Cmd.RunE(Cmd, nil)
	if err == nil {
		t.Fatal("expected usage error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "usage: ") {
		t.Fatalf("missing usage line: %v", msg)
	}
	if !strings.Contains(msg, "CONFIG_FILE not found at:") ||
		!strings.Contains(msg, appconfig.DefaultFile) {
		t.Fatalf("unexpected usage error: %v", msg)
	}
}

func TestLoadAppProjectRelativeFactory(t *testing.T) {
	root := newProject(t)
	sess, err := session.New(root, "demo")
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	defer sess.Close()

	cfg := &appconfig.Config{
		Name: "demo",
		App:  appconfig.App{Factory: "config/app.New"},
		Vars: map[string]any{"greeting": "Hello World"},
	}
	h, err := loadApp(sess, cfg, "demo")
	if err != nil {
		t.Fatalf("loadApp: %v", err)
	}
	resp, err := webtest.New(h).Get("/")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.Text() != "ok" {
		t.Fatalf("body = %q", resp.Text())
	}
}

func TestLoadAppModulePathFactory(t *testing.T) {
	root := newProject(t)
	sess, err := session.New(root, "demo")
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	defer sess.Close()

	cfg := &appconfig.Config{
		Name: "demo",
		App:  appconfig.App{Factory: "example.com/demo/config/app.New"},
		Vars: map[string]any{},
	}
	if _, err := loadApp(sess, cfg, "demo"); err != nil {
		t.Fatalf("loadApp: %v", err)
	}
}

func TestLoadAppInvalidFactory(t *testing.T) {
	root := newProject(t)
	sess, err := session.New(root, "demo")
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	defer sess.Close()

	cfg := &appconfig.Config{Name: "demo", App: appconfig.App{Factory: "New"}}
	if _, err := loadApp(sess, cfg, "demo"); err == nil {
		t.Fatal("expected error for factory without a package")
	}
}
