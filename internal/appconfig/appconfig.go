// Package appconfig loads mason application configuration files and keeps
// the process-wide configuration stack.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the conventional config filename used when no argument is
// given.
const DefaultFile = "development.yaml"

// schema is the minimal shape a runtime config must satisfy.
const schema = `
name: string
app: factory: string
debug?: bool
vars?: {...}
`

// Config is a loaded runtime application configuration.
type Config struct {
	// Name is the application name.
	Name string
	// App holds application instantiation settings.
	App App
	// Debug enables application debug behavior.
	Debug bool
	// Vars are free-form settings handed to the app factory.
	Vars map[string]any
	// Locator is the source this config was loaded from.
	Locator Locator
}

// App holds application instantiation settings.
type App struct {
	// Factory names the package and function building the handler,
	// project-relative, e.g. "config/app.New".
	Factory string
}

// Load reads and validates the YAML config named by loc. A relative path is
// resolved against relativeTo.
func Load(loc Locator, relativeTo string) (*Config, error) {
	path := loc.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(relativeTo, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %v", loc.Path, err)
	}

	ctx := cuecontext.New()
	sv := ctx.CompileString(schema)
	if err := sv.Err(); err != nil {
		return nil, fmt.Errorf("config schema: %v", err)
	}
	dv := ctx.Encode(raw)
	if err := dv.Err(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %v", loc.Path, err)
	}
	unified := sv.Unify(dv)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("invalid config %s: %v", loc.Path, err)
	}

	cfg := &Config{Locator: loc, Vars: map[string]any{}}
	if err := unified.LookupPath(cue.ParsePath("name")).Decode(&cfg.Name); err != nil {
		return nil, fmt.Errorf("invalid config %s: name: %v", loc.Path, err)
	}
	if err := unified.LookupPath(cue.ParsePath("app.factory")).Decode(&cfg.App.Factory); err != nil {
		return nil, fmt.Errorf("invalid config %s: app.factory: %v", loc.Path, err)
	}
	if bv := unified.LookupPath(cue.ParsePath("debug")); bv.Exists() && bv.Kind() == cue.BoolKind {
		_ = bv.Decode(&cfg.Debug)
	}
	if vv, ok := raw["vars"].(map[string]any); ok {
		cfg.Vars = vv
	}
	return cfg, nil
}
