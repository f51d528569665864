// Package logging builds the file-only zap logger. The TUI owns the terminal,
// so diagnostics never go to stdout; they rotate through a log file instead.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/audittrail/trailgauge/internal/infrastructure/config"
)

// New returns a logger per the config. Disabled logging yields a nop logger
// so call sites never need a nil check.
func New(cfg config.LoggingConfig) *zap.Logger {
	if !cfg.Enabled {
		return zap.NewNop()
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)

	return zap.New(core)
}
