package session

import (
	"reflect"

	"github.com/quarryhq/mason/webapp"
	"github.com/traefik/yaegi/interp"
)

// runtimeSymbols exports mason's runtime contract into the interpreter so
// interpreted project code can publish request globals the same way
// compiled code does.
func runtimeSymbols() interp.Exports {
	return interp.Exports{
		"github.com/quarryhq/mason/webapp/webapp": {
			"PublishGlobals": reflect.ValueOf(webapp.PublishGlobals),
			"GlobalsFrom":    reflect.ValueOf(webapp.GlobalsFrom),
			"WithCapture":    reflect.ValueOf(webapp.WithCapture),
			"Capture":        reflect.ValueOf((*webapp.Capture)(nil)),
		},
	}
}
