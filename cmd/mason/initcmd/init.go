// Package initcmd implements `mason init`.
package initcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quarryhq/mason/internal/appconfig"
	"github.com/quarryhq/mason/internal/project"
	"github.com/quarryhq/mason/internal/scaffold"
	"github.com/spf13/cobra"
)

var flagModule string

// Cmd represents the `mason init` command.
var Cmd = &cobra.Command{
	Use:   "init PROJECT_NAME",
	Short: "Create a new mason project skeleton",
	Long: `Create a new project directory with the conventional mason layout:
project metadata, a default runtime config, routing, an app factory, models,
helpers and an index controller.

Example:

    $ mason init blog
    $ cd blog && mason shell`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	Cmd.Flags().StringVar(&flagModule, "module", "", "Go module path for the project (default example.com/NAME)")
}

func run(name string) error {
	name = strings.ToLower(project.NormalizeName(name))
	if name == "" {
		return fmt.Errorf("please give the name of a project")
	}
	module := flagModule
	if module == "" {
		module = "example.com/" + name
	}

	root, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	if entries, err := os.ReadDir(root); err == nil && len(entries) > 0 {
		return fmt.Errorf("directory %s already exists and is not empty", name)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}

	vars := map[string]any{
		"Project": name,
		"Module":  module,
	}
	r := scaffold.NewRenderer(root, vars)
	files := []struct {
		tmpl, dir, name string
	}{
		{"mason.cue.tmpl", "", "mason"},
		{"go.mod.tmpl", "", "go"},
		{"routing.go.tmpl", "config/routing", "routing"},
		{"app.go.tmpl", "config/app", "app"},
		{"models.go.tmpl", "models", "models"},
		{"helpers.go.tmpl", "lib/helpers", "helpers"},
		{"index.go.tmpl", "controllers", "index"},
	}
	for _, f := range files {
		if _, err := r.Render(f.tmpl, f.dir, f.name); err != nil {
			return err
		}
	}

	cfgPath := filepath.Join(root, appconfig.DefaultFile)
	doc := map[string]any{
		"name":  name,
		"app":   map[string]any{"factory": "config/app.New"},
		"debug": true,
		"vars":  map[string]any{"greeting": "Hello World"},
	}
	if err := appconfig.WriteFile(cfgPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Creating %s\n", appconfig.DefaultFile)
	fmt.Fprintf(os.Stdout, "Project %s created; run 'cd %s && go mod tidy' to finish setup\n", name, name)
	return nil
}
