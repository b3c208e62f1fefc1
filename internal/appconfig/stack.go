package appconfig

import "sync"

// The process-wide configuration stack. The shell pushes one config at
// startup; the matching pop is implicit in process exit, but Pop exists for
// callers with an explicit teardown.
var (
	stackMu sync.Mutex
	stack   []*Config
)

// Push publishes cfg as the current process configuration.
func Push(cfg *Config) {
	stackMu.Lock()
	defer stackMu.Unlock()
	stack = append(stack, cfg)
}

// Pop removes and returns the current configuration, or nil when the stack
// is empty.
func Pop() *Config {
	stackMu.Lock()
	defer stackMu.Unlock()
	if len(stack) == 0 {
		return nil
	}
	cfg := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	return cfg
}

// Current returns the configuration on top of the stack, or nil.
func Current() *Config {
	stackMu.Lock()
	defer stackMu.Unlock()
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}
