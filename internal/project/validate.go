package project

import (
	"errors"
	"fmt"
)

// ValidateName checks that a proposed controller name is usable. The
// importable probe answers whether the name already resolves as a package;
// a fresh probe is expected per call so no interpreter state leaks between
// validations.
func ValidateName(name string, importable func(string) bool) error {
	if name == "" {
		// Happens when the argument collapses to an existing directory.
		return errors.New("please give the name of a controller")
	}
	if importable != nil && importable(name) {
		return fmt.Errorf(
			"a package named '%s' is already importable on the load path. "+
				"Choosing a conflicting name will likely cause import problems "+
				"in your controller at some point. It's suggested that you choose "+
				"an alternate name, and if you'd like that name to be accessible "+
				"as '%s', add a route to your project's config/routing package "+
				"similar to: mux.Handle(\"/%s/\", my_%s.New())",
			name, name, name, name)
	}
	return nil
}
