package scaffold

// Scaffold templates. Each key ends in ".tmpl"; the segment before it is
// the extension appended to the destination file name, so
// "controller.go.tmpl" rendered as "trackback" lands in "trackback.go".

var templates = map[string]string{
	"controller.go.tmpl":      controllerTmpl,
	"test_controller.go.tmpl": testControllerTmpl,
	"routing.go.tmpl":         routingTmpl,
	"app.go.tmpl":             appTmpl,
	"models.go.tmpl":          modelsTmpl,
	"helpers.go.tmpl":         helpersTmpl,
	"index.go.tmpl":           indexTmpl,
	"mason.cue.tmpl":          masonCueTmpl,
	"go.mod.tmpl":             goModTmpl,
}

const controllerTmpl = `package {{.Package}}

import (
	"fmt"
	"net/http"
)

// {{.ClassName}}Controller handles requests for {{.FileName}}.
type {{.ClassName}}Controller struct{}

// New returns the {{.FileName}} controller.
func New() {{.ClassName}}Controller {
	return {{.ClassName}}Controller{}
}

// Index is the default action.
func (c {{.ClassName}}Controller) Index(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "Hello World")
}
`

const testControllerTmpl = `package functional

import (
	"testing"

	"github.com/quarryhq/mason/webtest"

	"{{.Module}}/config/app"
)

// Test{{.ClassName}}Controller drives the {{.FileName}} controller through
// the full application stack.
func Test{{.ClassName}}Controller(t *testing.T) {
	client := webtest.New(app.New(nil))
	resp, err := client.Get("/{{.RouteName}}")
	if err != nil {
		t.Fatalf("GET /{{.RouteName}}: %v", err)
	}
	if len(resp.Body) == 0 {
		t.Fatal("empty response body")
	}
}
`

const routingTmpl = `package routing

import (
	"net/http"

	"{{.Module}}/controllers"
)

// MakeMap builds the routing map for the application.
func MakeMap() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", controllers.Index)
	return mux
}
`

const appTmpl = `package app

import (
	"net/http"

	"github.com/quarryhq/mason/webapp"

	"{{.Module}}/config/routing"
)

// New builds the application handler from the runtime configuration.
func New(cfg map[string]any) http.Handler {
	mux := routing.MakeMap()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webapp.PublishGlobals(r, map[string]any{
			"project": "{{.Project}}",
			"config":  cfg,
		})
		mux.ServeHTTP(w, r)
	})
}
`

const modelsTmpl = `package models

// Greeting is a placeholder model; replace it with your own.
type Greeting struct {
	ID   int
	Text string
}

// All returns every known greeting.
func All() []Greeting {
	g := Greeting{ID: 1, Text: "Hello World"}
	return []Greeting{g}
}
`

const helpersTmpl = `package helpers

import "strings"

// Titleize turns a snake_case identifier into a display title.
func Titleize(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
`

const indexTmpl = `package controllers

import (
	"fmt"
	"net/http"
)

// Index serves the project landing response.
func Index(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "Hello World from {{.Project}}")
}
`

const masonCueTmpl = `name: "{{.Project}}"
`

const goModTmpl = `module {{.Module}}

go 1.24

// Run "go mod tidy" after the first build to resolve dependencies.
`
