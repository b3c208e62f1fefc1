// Package console assembles the interactive-shell namespace and runs the
// read-eval-print loop over an interpreter session.
package console

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/quarryhq/mason/internal/session"
)

// ModuleRef names one project module resolved for the shell.
type ModuleRef struct {
	// Alias is the identifier the module is imported under.
	Alias string
	// Path is the import path it was resolved from.
	Path string
}

// Modules is the capability record of the three project modules the shell
// depends on. The command layer resolves them once; nothing downstream
// constructs dotted paths again.
type Modules struct {
	Routing ModuleRef
	Models  ModuleRef
	Helpers ModuleRef
}

type entry struct {
	name     string
	desc     string
	value    any
	imported bool
}

// Namespace is the ordered set of names bound into the shell.
type Namespace struct {
	entries []entry
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{}
}

// BindValue adds a live value binding.
func (n *Namespace) BindValue(name, desc string, v any) {
	n.entries = append(n.entries, entry{name: name, desc: desc, value: v})
}

// Note records a name that is already present in the session (an import
// alias) so it appears in the banner.
func (n *Namespace) Note(name, desc string) {
	n.entries = append(n.entries, entry{name: name, desc: desc, imported: true})
}

// Names returns the bound names in banner order.
func (n *Namespace) Names() []string {
	out := make([]string, 0, len(n.entries))
	for _, e := range n.entries {
		out = append(out, e.name)
	}
	return out
}

// Install binds the namespace's value entries into the session.
func (n *Namespace) Install(sess *session.Session) error {
	vals := map[string]any{}
	var order []string
	for _, e := range n.entries {
		if e.imported {
			continue
		}
		vals[e.name] = e.value
		order = append(order, e.name)
	}
	if len(vals) == 0 {
		return nil
	}
	return sess.BindAll(vals, order)
}

// Banner composes the shell banner listing the bound names.
func (n *Namespace) Banner() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mason Interactive Shell\nGo %s\n\n", runtime.Version())
	b.WriteString("Additional Objects:\n")
	for _, e := range n.entries {
		fmt.Fprintf(&b, "  %-10s -  %s\n", e.name, e.desc)
	}
	return b.String()
}

// evalLine evaluates one input line against the session and writes the
// result or error to out. It reports whether the loop should end.
func evalLine(sess *session.Session, out io.Writer, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if trimmed == "exit" || trimmed == "quit" {
		return true
	}
	v, err := sess.Eval(line)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return false
	}
	if v.IsValid() && v.CanInterface() {
		fmt.Fprintf(out, "%v\n", v.Interface())
	}
	return false
}
