// Package controller implements `mason controller`.
package controller

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/quarryhq/mason/internal/project"
	"github.com/quarryhq/mason/internal/scaffold"
	"github.com/quarryhq/mason/internal/session"
	"github.com/spf13/cobra"
)

var flagNoTest bool

// Cmd represents the `mason controller` command.
var Cmd = &cobra.Command{
	Use:   "controller CONTROLLER_NAME",
	Short: "Create a controller and functional test for it",
	Long: `Create the standard controller file and an associated functional
test to speed creation of controllers.

Example usage:

    yourproj$ mason controller comments
    Creating controllers/comments.go
    Creating tests/functional/test_comments.go

To place controllers underneath a directory, include the path as the
controller name and the necessary directories will be created for you:

    yourproj$ mason controller admin/trackback
    Creating controllers/admin/trackback.go
    Creating tests/functional/test_admin_trackback.go`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		return run(wd, args[0], !flagNoTest)
	},
}

func init() {
	Cmd.Flags().BoolVar(&flagNoTest, "no-test", false, "Don't create the test; just the controller")
}

// run generates the controller. Usage, project and collision errors surface
// as-is; anything unexpected past validation is rewrapped as a generic
// command failure carrying the original message.
func run(wd, arg string, withTest bool) error {
	meta, err := project.Locate(wd)
	if err != nil {
		return err
	}
	name, directory, err := project.ParsePathName(arg)
	if err != nil {
		return err
	}
	name = project.NormalizeName(name)
	if err := project.ValidateName(name, func(n string) bool {
		return session.ProbeImport(meta.Root, n)
	}); err != nil {
		return err
	}
	if err := generate(meta, name, directory, withTest); err != nil {
		return fmt.Errorf("an unknown error occurred, %v", err)
	}
	return nil
}

func generate(meta project.Metadata, name, directory string, withTest bool) error {
	vars := map[string]any{
		"ClassName": project.ClassName(name),
		"FileName":  path.Join(directory, name),
		"RouteName": name,
		"Package":   packageFor(directory),
		"Module":    meta.Module,
		"Project":   meta.Name,
	}
	vars, err := scaffold.ApplyVarsHook(meta.Hooks.VarsInline, vars)
	if err != nil {
		return err
	}
	r := scaffold.NewRenderer(meta.Root, vars)
	if _, err := r.Render("controller.go.tmpl", filepath.Join("controllers", filepath.FromSlash(directory)), name); err != nil {
		return err
	}
	if withTest {
		stem := "test_" + project.FlattenTestName(directory, name)
		if _, err := r.Render("test_controller.go.tmpl", filepath.Join("tests", "functional"), stem); err != nil {
			return err
		}
	}
	return nil
}

// packageFor derives the package name of the destination directory.
func packageFor(directory string) string {
	if directory == "" {
		return "controllers"
	}
	parts := strings.Split(directory, "/")
	return project.NormalizeName(parts[len(parts)-1])
}
