// Package xlog is a thin structured-logging facade over zap, used at the
// frame/container parsing boundary and by cmd/webpinfo. The per-macroblock
// decode hot path never logs; only once-per-image events go through here.
package xlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.Mutex
	logger *zap.SugaredLogger
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// L returns the process-wide sugared logger, building it lazily on first
// use with an console-encoded, level-filtered zap core.
func L() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = newLogger(nil)
	}
	return logger
}

// SetLevel adjusts the minimum level the process-wide logger emits at.
func SetLevel(lvl zap.AtomicLevel) {
	mu.Lock()
	defer mu.Unlock()
	level = lvl
	logger = newLogger(nil)
}

// SetSink replaces the process-wide logger with one built on core (used by
// cmd/webpinfo to route through a lumberjack-rotated file).
func SetSink(core zap.Core) {
	mu.Lock()
	defer mu.Unlock()
	logger = zap.New(core).Sugar()
}

func newLogger(_ interface{}) *zap.SugaredLogger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	core := zap.NewDevelopmentConfig()
	core.Level = level
	core.EncoderConfig = cfg
	l, err := core.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}
