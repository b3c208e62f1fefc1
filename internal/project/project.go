// Package project resolves mason project metadata and the naming
// conventions used by the generators.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	git "github.com/go-git/go-git/v5"
	"golang.org/x/mod/modfile"
)

// MetaFile is the project metadata file marking a mason project root.
const MetaFile = "mason.cue"

// ErrNoProject is returned when no project metadata can be located.
var ErrNoProject = errors.New("no project found: missing " + MetaFile)

// Metadata describes a located project.
type Metadata struct {
	// Root is the absolute project root directory.
	Root string
	// Name is the project name from mason.cue.
	Name string
	// Module is the Go module path from go.mod, or "" when absent.
	Module string
	// Hooks carries optional scaffold hooks.
	Hooks Hooks
}

// Hooks holds optional scaffold hook scripts from mason.cue.
type Hooks struct {
	// VarsInline is a Lua snippet amending template variables, or "".
	VarsInline string
}

// Locate walks up from dir looking for the metadata file. The walk stops at
// the enclosing git repository root, when one exists, or at the filesystem
// root otherwise.
func Locate(dir string) (Metadata, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Metadata{}, fmt.Errorf("locate project: %w", err)
	}
	boundary := repoRoot(abs)
	cur := abs
	for {
		path := filepath.Join(cur, MetaFile)
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return readMetadata(cur, path)
		}
		if cur == boundary {
			return Metadata{}, ErrNoProject
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return Metadata{}, ErrNoProject
		}
		cur = parent
	}
}

// repoRoot returns the enclosing git worktree root for dir, or "" when dir
// is not inside a repository.
func repoRoot(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	wt, err := repo.Worktree()
	if err != nil {
		return ""
	}
	return wt.Filesystem.Root()
}

// readMetadata parses mason.cue and the adjacent go.mod.
func readMetadata(root, metaPath string) (Metadata, error) {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return Metadata{}, fmt.Errorf("read %s: %w", MetaFile, err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return Metadata{}, fmt.Errorf("invalid %s: %v", MetaFile, err)
	}
	m := Metadata{Root: root}
	nv := v.LookupPath(cue.ParsePath("name"))
	if !nv.Exists() || nv.Kind() != cue.StringKind {
		return Metadata{}, fmt.Errorf("invalid %s: missing required field: name", MetaFile)
	}
	if err := nv.Decode(&m.Name); err != nil {
		return Metadata{}, fmt.Errorf("invalid %s: invalid value for name: %v", MetaFile, err)
	}
	hv := v.LookupPath(cue.ParsePath("scaffold.hooks.vars.inline"))
	if hv.Exists() && hv.Kind() == cue.StringKind {
		_ = hv.Decode(&m.Hooks.VarsInline)
	}
	m.Module = modulePath(root)
	return m, nil
}

// modulePath returns the module path declared in root's go.mod, or "".
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

// ParsePathName splits a possibly slash-separated argument into a name and
// a directory relative to the controllers tree. "admin/trackback" yields
// ("trackback", "admin").
func ParsePathName(arg string) (name, directory string, err error) {
	cleaned := strings.Trim(filepath.ToSlash(arg), "/")
	if cleaned == "" {
		return "", "", errors.New("please give the name of a controller")
	}
	parts := strings.Split(cleaned, "/")
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return "", "", fmt.Errorf("invalid controller path: %q", arg)
		}
	}
	name = parts[len(parts)-1]
	directory = strings.Join(parts[:len(parts)-1], "/")
	return name, directory, nil
}
