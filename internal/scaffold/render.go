// Package scaffold renders source files from named templates into a
// project tree.
package scaffold

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/quarryhq/mason/internal/logging"
	"go.uber.org/zap"
)

// Renderer renders templates into project-relative destinations.
type Renderer struct {
	// Root is the project root; destinations are resolved against it.
	Root string
	// Vars are the template variables.
	Vars map[string]any
	// Out receives one "Creating <path>" line per file; defaults to stdout.
	Out io.Writer
}

// NewRenderer returns a renderer for the project rooted at root.
func NewRenderer(root string, vars map[string]any) *Renderer {
	return &Renderer{Root: root, Vars: vars, Out: os.Stdout}
}

// Render renders the named template as destDir/fileName plus the
// template's target extension, creating parent directories. Existing files
// are never overwritten. The project-relative path of the created file is
// returned.
func (r *Renderer) Render(tmplName, destDir, fileName string) (string, error) {
	src, ok := templates[tmplName]
	if !ok {
		return "", fmt.Errorf("unknown template: %s", tmplName)
	}
	t, err := template.New(tmplName).Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", tmplName, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, r.Vars); err != nil {
		return "", fmt.Errorf("render %s: %w", tmplName, err)
	}

	rel := filepath.Join(filepath.FromSlash(destDir), fileName+targetExt(tmplName))
	abs := filepath.Join(r.Root, rel)
	if _, err := os.Stat(abs); err == nil {
		return "", fmt.Errorf("refusing to overwrite %s", rel)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return "", err
	}

	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "Creating %s\n", filepath.ToSlash(rel))
	logging.L().Debug("rendered template",
		zap.String("template", tmplName),
		zap.String("path", rel))
	return rel, nil
}

// targetExt returns the destination extension encoded in a template name:
// "controller.go.tmpl" carries ".go".
func targetExt(tmplName string) string {
	base := strings.TrimSuffix(tmplName, ".tmpl")
	return filepath.Ext(base)
}
