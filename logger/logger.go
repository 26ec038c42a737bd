// Package logger provides the module's unified logging interface backed by zap.
//
// It exposes a small Logger interface so packages can accept any zap-shaped
// logger, plus a lazily-built process-wide logger for code with no handle
// to pass around (see global.go).
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used throughout the module.
// *zap.Logger satisfies it directly.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Sync() error
}

// New builds a logger from cfg. A nil cfg uses DefaultConfig; a partial
// cfg has its zero fields filled from the defaults before validation.
func New(cfg *Config) (Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.MergeDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, ErrInvalidLevel(cfg.Level, err)
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Encoding == "console",
		Encoding:         cfg.Encoding,
		EncoderConfig:    encoderConfig(),
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: cfg.ErrorOutputPaths,
	}

	log, err := zapCfg.Build(zap.AddStacktrace(zapcore.DPanicLevel))
	if err != nil {
		return nil, ErrBuildLogger(err)
	}

	// Package-level logging functions sit one frame above the zap call
	// site, so the global copy needs an extra caller skip.
	setGlobal(log.WithOptions(zap.AddCallerSkip(1)))

	return log, nil
}

// encoderConfig is shared by New and the global fallback logger so both
// emit identically-shaped entries.
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
