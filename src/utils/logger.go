package utils

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type contextKey string

const loggerKey = contextKey("logger")

// NewLogger builds the process logger. Output goes to stdout unless logToFile
// is set, in which case the file is opened for appending.
func NewLogger(logLevel logrus.Level, logToFile bool, filePath string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetLevel(logLevel)
	// JSON output for log collectors
	logger.SetFormatter(&logrus.JSONFormatter{})

	if !logToFile {
		logger.SetOutput(os.Stdout)
		return logger, io.NopCloser(nil), nil
	}

	// Append to the log file, creating it if needed
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(file)
	return logger, file, nil
}

// ParseLogLevel falls back to info for empty or unknown levels.
func ParseLogLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// WithLogger stores the logger in the context
func WithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the logger stored by WithLogger, or a text logger
// at info level when there is none.
func LoggerFromContext(ctx context.Context) logrus.FieldLogger {
	logger, ok := ctx.Value(loggerKey).(logrus.FieldLogger)
	if !ok {
		defaultLogger := logrus.New()
		defaultLogger.SetLevel(logrus.InfoLevel)
		defaultLogger.SetFormatter(&logrus.TextFormatter{})
		return defaultLogger
	}
	return logger
}
