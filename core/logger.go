package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"packtrack-service/config"
)

// NewLogger builds the service logger. Debug mode logs to stdout in console
// format; any other mode writes JSON lines to a rotated file under the
// configured directory.
func NewLogger(mode string, cfg config.LogConfig) (*zap.Logger, error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}

	if strings.EqualFold(strings.TrimSpace(mode), "debug") {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), zap.DebugLevel)
		return zap.New(core, zap.AddCaller()), nil
	}

	logFile, err := resolveLogFile(cfg)
	if err != nil {
		return nil, err
	}

	lumberjackLogger := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    positiveOr(cfg.MaxSizeMB, 100), // MB before it rolls
		MaxBackups: positiveOr(cfg.MaxBackups, 7),
		MaxAge:     positiveOr(cfg.MaxAgeDays, 30), // days
		Compress:   cfg.Compress,
	}

	writeSyncer := zapcore.AddSync(lumberjackLogger)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writeSyncer, zap.InfoLevel)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger, nil
}

func resolveLogFile(cfg config.LogConfig) (string, error) {
	dir := strings.TrimSpace(cfg.Directory)
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}

	filename := strings.TrimSpace(cfg.Filename)
	if filename == "" {
		filename = "packtrack-service.log"
	}
	return filepath.Join(dir, filename), nil
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
