package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// The process-wide logger used by the package-level functions below.
// New installs the most recently built logger here; until then a default
// JSON logger is built lazily on first use.
var (
	globalMu  sync.RWMutex
	globalLog *zap.Logger
	buildOnce sync.Once
)

// setGlobal installs l as the process-wide logger.
func setGlobal(l *zap.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLog = l
}

// global returns the process-wide logger, building the default one on
// first use. Safe for concurrent callers.
func global() *zap.Logger {
	globalMu.RLock()
	if globalLog != nil {
		defer globalMu.RUnlock()
		return globalLog
	}
	globalMu.RUnlock()

	buildOnce.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		if globalLog == nil {
			globalLog = buildDefault()
		}
	})

	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLog
}

// buildDefault builds the fallback logger used before New has run.
// CallerSkip(1) skips the package-level wrapper so the reported caller
// is the real call site. Falls back to a nop logger if the build fails.
func buildDefault() *zap.Logger {
	cfg := DefaultConfig()

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Encoding:         cfg.Encoding,
		EncoderConfig:    encoderConfig(),
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: cfg.ErrorOutputPaths,
	}

	log, err := zapCfg.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.DPanicLevel),
	)
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// SetGlobalLogger replaces the process-wide logger. Build the logger with
// AddCallerSkip(1) if the package-level functions should report their
// real call sites.
func SetGlobalLogger(l *zap.Logger) {
	setGlobal(l)
}

// GetGlobalLogger returns the process-wide logger, building the default
// one if nothing has been installed yet.
func GetGlobalLogger() *zap.Logger {
	return global()
}

// Debug logs at debug level using the process-wide logger.
func Debug(msg string, fields ...zap.Field) {
	global().Debug(msg, fields...)
}

// Info logs at info level using the process-wide logger.
func Info(msg string, fields ...zap.Field) {
	global().Info(msg, fields...)
}

// Warn logs at warn level using the process-wide logger.
func Warn(msg string, fields ...zap.Field) {
	global().Warn(msg, fields...)
}

// Error logs at error level using the process-wide logger.
func Error(msg string, fields ...zap.Field) {
	global().Error(msg, fields...)
}

// Sync flushes the process-wide logger.
func Sync() error {
	return global().Sync()
}
