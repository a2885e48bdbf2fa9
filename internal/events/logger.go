package events

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
)

type watermillLogger struct {
	logger *slog.Logger
}

// NewWatermillLogger routes watermill's logs through slog. Trace messages are
// logged at debug level.
func NewWatermillLogger(logger *slog.Logger) watermill.LoggerAdapter {
	return &watermillLogger{logger: logger}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Error(msg, append(attrs(fields), "error", err)...)
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.logger.Info(msg, attrs(fields)...)
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, attrs(fields)...)
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.logger.Debug(msg, attrs(fields)...)
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{logger: l.logger.With(attrs(fields)...)}
}

func attrs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}

	return args
}
