package appconfig

import (
	"fmt"
	"strings"
)

// A Locator identifies a configuration source, e.g. "config:development.yaml".
type Locator struct {
	Scheme string
	Path   string
}

// FileLocator builds the locator for a config file.
func FileLocator(file string) Locator {
	return Locator{Scheme: "config", Path: file}
}

// ParseLocator parses a locator string of the form "config:<path>".
func ParseLocator(s string) (Locator, error) {
	scheme, path, ok := strings.Cut(s, ":")
	if !ok || scheme != "config" || path == "" {
		return Locator{}, fmt.Errorf("invalid config locator: %q", s)
	}
	return Locator{Scheme: scheme, Path: path}, nil
}

func (l Locator) String() string {
	return l.Scheme + ":" + l.Path
}
