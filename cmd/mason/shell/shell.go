// Package shell implements `mason shell`.
package shell

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/quarryhq/mason/internal/appconfig"
	"github.com/quarryhq/mason/internal/console"
	"github.com/quarryhq/mason/internal/logging"
	"github.com/quarryhq/mason/internal/session"
	"github.com/quarryhq/mason/webtest"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Cmd represents the `mason shell` command.
var Cmd = &cobra.Command{
	Use:   "shell [CONFIG_FILE]",
	Short: "Open an interactive shell with the mason app loaded",
	Long: `Open an interactive shell with the application loaded from
CONFIG_FILE, which defaults to 'development.yaml'. The shell can exercise
the routing map, the models and synthetic web requests through the bound
webtest client.

Example:

    $ mason shell my-development.yaml`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile := ""
		if len(args) == 0 {
			configFile = appconfig.DefaultFile
			if fi, err := os.Stat(configFile); err != nil || fi.IsDir() {
				return fmt.Errorf("usage: %s\nCONFIG_FILE not found at: .%c%s, please specify a CONFIG_FILE",
					cmd.UseLine(), os.PathSeparator, configFile)
			}
		} else {
			configFile = args[0]
		}
		return run(configFile)
	},
}

func run(configFile string) error {
	loc := appconfig.FileLocator(configFile)
	here, err := os.Getwd()
	if err != nil {
		return err
	}
	pkg := strings.ToLower(filepath.Base(here))

	// Load the app config and publish it to the process-wide stack. The
	// matching pop is implicit in process exit.
	cfg, err := appconfig.Load(loc, here)
	if err != nil {
		return err
	}
	appconfig.Push(cfg)
	logging.L().Debug("config loaded", zap.String("locator", loc.String()))

	// The session makes project-local packages importable, both under the
	// working directory's leaf name and the go.mod module path.
	sess, err := session.New(here, pkg)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	// Load the app first so that everything is initialized right.
	wsgiapp, err := loadApp(sess, cfg, pkg)
	if err != nil {
		return err
	}
	logging.L().Debug("app loaded", zap.String("factory", cfg.App.Factory))

	// Resolve the three project modules once; everything downstream works
	// from this record. Import failures are fatal.
	mods := console.Modules{
		Routing: console.ModuleRef{Alias: "routing", Path: pkg + "/config/routing"},
		Models:  console.ModuleRef{Alias: "model", Path: pkg + "/models"},
		Helpers: console.ModuleRef{Alias: "h", Path: pkg + "/lib/helpers"},
	}
	for _, m := range []console.ModuleRef{mods.Routing, mods.Models, mods.Helpers} {
		if err := sess.Import(m.Alias, m.Path); err != nil {
			return err
		}
	}

	mapperV, err := sess.Eval(mods.Routing.Alias + ".MakeMap()")
	if err != nil {
		return fmt.Errorf("build routing map: %w", err)
	}
	mapper := mapperV.Interface()

	client := webtest.New(wsgiapp)

	// Best-effort probe: one synthetic GET to see whether the app
	// publishes a request-scoped globals object. Failures are absorbed.
	var globals any
	if resp, err := client.Get("/"); err == nil && resp != nil {
		if nonEmpty(resp.Globals) {
			globals = resp.Globals
		}
	}

	ns := console.NewNamespace()
	ns.BindValue("mapper", "Routing map object", mapper)
	ns.Note("h", "Helpers package ("+mods.Helpers.Path+")")
	if globals != nil {
		ns.BindValue("g", "Globals object", globals)
	}
	ns.Note("model", "Models package ("+mods.Models.Path+")")
	ns.BindValue("wsgiapp", "This project's HTTP application instance", wsgiapp)
	ns.BindValue("app", "webtest client wrapped around wsgiapp", client)
	if err := ns.Install(sess); err != nil {
		return err
	}

	return console.Launch(sess, ns.Banner())
}

// loadApp instantiates the application handler named by the config's
// app.factory, e.g. "config/app.New" relative to the project package.
func loadApp(sess *session.Session, cfg *appconfig.Config, pkg string) (http.Handler, error) {
	pkgPath, fn, err := splitFactory(cfg.App.Factory)
	if err != nil {
		return nil, err
	}
	// Project-relative factory paths resolve under the project package;
	// module paths (first element carries a dot) pass through untouched.
	first, _, _ := strings.Cut(pkgPath, "/")
	if first != pkg && !strings.Contains(first, ".") {
		pkgPath = pkg + "/" + pkgPath
	}
	if err := sess.Import("appfactory", pkgPath); err != nil {
		return nil, err
	}
	fv, err := sess.Eval("appfactory." + fn)
	if err != nil {
		return nil, fmt.Errorf("resolve app factory %s: %w", cfg.App.Factory, err)
	}
	if fv.Kind() != reflect.Func || fv.Type().NumIn() != 1 || fv.Type().NumOut() != 1 {
		return nil, fmt.Errorf("app factory %s: want func(map[string]any) http.Handler", cfg.App.Factory)
	}
	out := fv.Call([]reflect.Value{reflect.ValueOf(cfg.Vars)})
	h, ok := out[0].Interface().(http.Handler)
	if !ok {
		return nil, fmt.Errorf("app factory %s: result is not an http.Handler", cfg.App.Factory)
	}
	return h, nil
}

// splitFactory splits "config/app.New" into its package path and function.
func splitFactory(factory string) (pkgPath, fn string, err error) {
	i := strings.LastIndex(factory, ".")
	if i <= 0 || i == len(factory)-1 {
		return "", "", fmt.Errorf("invalid app factory: %q", factory)
	}
	return factory[:i], factory[i+1:], nil
}

// nonEmpty reports whether the probed globals object carries anything.
func nonEmpty(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}
