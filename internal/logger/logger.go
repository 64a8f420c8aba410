// Package logger builds the process-wide dual-sink zap logger: an
// append-only log file with timestamped entries plus an untimestamped
// console stream, both leveled.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger that tees every entry to the log file at filePath
// (created if missing, appended otherwise) and to stderr. File entries
// carry an ISO8601 timestamp; console entries do not. An empty filePath
// yields a console-only logger, used before the configured log
// destination is known.
func New(filePath, level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.TimeKey = zapcore.OmitKey
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.Lock(os.Stderr),
		zapLevel,
	)

	if filePath == "" {
		return zap.New(consoleCore), nil
	}

	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open log file: %w", err)
	}

	fileCfg := zap.NewDevelopmentEncoderConfig()
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(fileCfg),
		zapcore.Lock(f),
		zapLevel,
	)

	return zap.New(zapcore.NewTee(fileCore, consoleCore)), nil
}
