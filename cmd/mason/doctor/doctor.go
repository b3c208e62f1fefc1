// Package doctor implements `mason doctor`.
package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/quarryhq/mason/internal/appconfig"
	"github.com/quarryhq/mason/internal/project"
	"github.com/spf13/cobra"
)

var flagJSON bool

// Check is one diagnostic result.
type Check struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

type doctorError struct{ failed int }

func (e doctorError) Error() string {
	return fmt.Sprintf("%d check(s) failed", e.failed)
}
func (e doctorError) ExitCode() int { return 2 }

// Cmd represents the `mason doctor` command.
var Cmd = &cobra.Command{
	Use:           "doctor",
	Short:         "Check the current project against mason conventions",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		checks := runChecks(wd)
		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(checks); err != nil {
				return err
			}
		} else {
			for _, c := range checks {
				status := "ok"
				if !c.OK {
					status = "fail"
				}
				fmt.Fprintf(os.Stdout, "%-4s %s: %s\n", status, c.Name, c.Detail)
			}
		}
		failed := 0
		for _, c := range checks {
			if !c.OK {
				failed++
			}
		}
		if failed > 0 {
			return doctorError{failed: failed}
		}
		return nil
	},
}

func init() {
	Cmd.Flags().BoolVar(&flagJSON, "json", false, "Print the report as JSON")
}

func runChecks(wd string) []Check {
	var checks []Check

	meta, err := project.Locate(wd)
	if err != nil {
		checks = append(checks, Check{Name: "metadata", OK: false, Detail: err.Error()})
		return checks
	}
	checks = append(checks, Check{Name: "metadata", OK: true,
		Detail: fmt.Sprintf("project %q at %s", meta.Name, meta.Root)})

	if meta.Module == "" {
		checks = append(checks, Check{Name: "module", OK: false, Detail: "go.mod missing or unparseable"})
	} else {
		checks = append(checks, Check{Name: "module", OK: true, Detail: meta.Module})
	}

	for _, dir := range []string{"config/routing", "config/app", "models", "lib/helpers", "controllers"} {
		name := "layout " + dir
		if fi, err := os.Stat(filepath.Join(meta.Root, filepath.FromSlash(dir))); err == nil && fi.IsDir() {
			checks = append(checks, Check{Name: name, OK: true, Detail: "present"})
		} else {
			checks = append(checks, Check{Name: name, OK: false, Detail: "missing"})
		}
	}

	loc := appconfig.FileLocator(appconfig.DefaultFile)
	if cfg, err := appconfig.Load(loc, meta.Root); err != nil {
		checks = append(checks, Check{Name: "config", OK: false, Detail: err.Error()})
	} else {
		checks = append(checks, Check{Name: "config", OK: true,
			Detail: fmt.Sprintf("%s (app %q)", appconfig.DefaultFile, cfg.Name)})
	}

	checks = append(checks, gitCheck(meta.Root))
	return checks
}

// gitCheck reports the repository state; a missing repository is not a
// failure, just noted.
func gitCheck(root string) Check {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Check{Name: "git", OK: true, Detail: "not a repository"}
	}
	head, err := repo.Head()
	if err != nil {
		return Check{Name: "git", OK: true, Detail: "repository without commits"}
	}
	return Check{Name: "git", OK: true,
		Detail: fmt.Sprintf("%s at %s", head.Name().Short(), head.Hash().String()[:7])}
}
