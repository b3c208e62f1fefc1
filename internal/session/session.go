// Package session wraps a yaegi interpreter rooted at a project directory.
// The shell command and the name validator both go through it: the former
// for importing project packages and evaluating expressions, the latter for
// speculative import probes.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"golang.org/x/mod/modfile"
)

// Session is one interpreter instance over a project root. It owns a
// temporary GOPATH shim whose src directory links the project's packages so
// constructed import paths resolve. Close removes the shim.
type Session struct {
	i      *interp.Interpreter
	gopath string
	root   string
}

// New creates a session rooted at root. When pkg is non-empty the project
// is additionally importable under that name, so paths like
// "<pkg>/config/routing" resolve. The project's go.mod module path, when
// present, is linked as well so generated code importing by module path
// works unchanged.
func New(root, pkg string) (*Session, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("session: resolve root: %w", err)
	}
	gopath, err := buildGoPath(abs, pkg)
	if err != nil {
		return nil, err
	}
	i := interp.New(interp.Options{GoPath: gopath})
	if err := i.Use(stdlib.Symbols); err != nil {
		_ = os.RemoveAll(gopath)
		return nil, fmt.Errorf("session: load stdlib symbols: %w", err)
	}
	if err := i.Use(runtimeSymbols()); err != nil {
		_ = os.RemoveAll(gopath)
		return nil, fmt.Errorf("session: load runtime symbols: %w", err)
	}
	return &Session{i: i, gopath: gopath, root: abs}, nil
}

// Close removes the session's GOPATH shim.
func (s *Session) Close() error {
	if s == nil || s.gopath == "" {
		return nil
	}
	return os.RemoveAll(s.gopath)
}

// Import evaluates an aliased import declaration. Failures are returned to
// the caller untouched; the shell treats them as fatal.
func (s *Session) Import(alias, path string) error {
	src := fmt.Sprintf("import %s %q", alias, path)
	if alias == "" {
		src = fmt.Sprintf("import %q", path)
	}
	if _, err := s.i.Eval(src); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	return nil
}

// Eval evaluates src in the session and returns its value.
func (s *Session) Eval(src string) (reflect.Value, error) {
	return s.i.Eval(src)
}

// BindAll injects live Go values as interpreter globals under the given
// names, in order. Values cross the boundary by reference.
func (s *Session) BindAll(vals map[string]any, order []string) error {
	syms := map[string]reflect.Value{}
	for name, v := range vals {
		if v == nil {
			return fmt.Errorf("bind %s: nil value", name)
		}
		syms[exportName(name)] = reflect.ValueOf(v)
	}
	if err := s.i.Use(interp.Exports{"mason/shellenv/shellenv": syms}); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if _, err := s.i.Eval(`import "mason/shellenv"`); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	for _, name := range order {
		if _, ok := vals[name]; !ok {
			continue
		}
		if _, err := s.i.Eval(fmt.Sprintf("%s := shellenv.%s", name, exportName(name))); err != nil {
			return fmt.Errorf("bind %s: %w", name, err)
		}
	}
	return nil
}

// ProbeImport reports whether name is importable from a throwaway session
// rooted at root. Nothing is retained; the probe exists purely to detect
// shadowing collisions.
func ProbeImport(root, name string) bool {
	s, err := New(root, "")
	if err != nil {
		return false
	}
	defer func() { _ = s.Close() }()
	_, err = s.i.Eval(fmt.Sprintf("import %q", name))
	return err == nil
}

// buildGoPath lays out a temporary GOPATH whose src directory links the
// project root under its package name, its module path and each of its
// top-level directories.
func buildGoPath(root, pkg string) (string, error) {
	gopath, err := os.MkdirTemp("", "mason-session-")
	if err != nil {
		return "", fmt.Errorf("session: temp gopath: %w", err)
	}
	src := filepath.Join(gopath, "src")
	if err := os.MkdirAll(src, 0o755); err != nil {
		_ = os.RemoveAll(gopath)
		return "", fmt.Errorf("session: %w", err)
	}
	link := func(name string, target string) error {
		dst := filepath.Join(src, filepath.FromSlash(name))
		if _, err := os.Lstat(dst); err == nil {
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		return os.Symlink(target, dst)
	}
	if pkg != "" {
		if err := link(pkg, root); err != nil {
			_ = os.RemoveAll(gopath)
			return "", fmt.Errorf("session: link project: %w", err)
		}
	}
	if mod := modulePath(root); mod != "" && mod != pkg {
		if err := link(mod, root); err != nil {
			_ = os.RemoveAll(gopath)
			return "", fmt.Errorf("session: link module: %w", err)
		}
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		_ = os.RemoveAll(gopath)
		return "", fmt.Errorf("session: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if err := link(e.Name(), filepath.Join(root, e.Name())); err != nil {
			_ = os.RemoveAll(gopath)
			return "", fmt.Errorf("session: link %s: %w", e.Name(), err)
		}
	}
	return gopath, nil
}

// modulePath returns the module path from root's go.mod, or "".
func modulePath(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	mf, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil || mf.Module == nil {
		return ""
	}
	return mf.Module.Mod.Path
}

func exportName(name string) string {
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
