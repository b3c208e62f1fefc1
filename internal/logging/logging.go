package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Setup installs the process logger. With verbose disabled the logger is a
// no-op so command output stays limited to the stable stdout lines.
func Setup(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		global = zap.NewNop()
		return
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		global = zap.NewNop()
		return
	}
	global = l
}

// L returns the process logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
