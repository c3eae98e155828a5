package logger

import (
	"github.com/forkcast/backend/config"
	"go.uber.org/zap"
)

var logger *zap.Logger

// Init initializes the global logger. Production gets JSON output,
// everything else the development console encoder.
func Init() *zap.Logger {
	var err error
	if config.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger
}

// L returns the global logger instance
func L() *zap.Logger {
	if logger == nil {
		return Init()
	}
	return logger
}

// Sync flushes buffered log entries.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
