// Package logging provides structured logging backed by zap.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps a zap.Logger. It satisfies calculation.Logger through the
// printf-style methods and offers key/value methods for request logging.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger creates a console logger writing to stderr, so reports printed
// on stdout stay clean.
func NewZapLogger(levelStr string) (*ZapLogger, error) {
	return NewZapLoggerWithWriter(levelStr, os.Stderr)
}

// NewZapLoggerWithWriter creates a console logger writing to w.
func NewZapLoggerWithWriter(levelStr string, w io.Writer) (*ZapLogger, error) {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)

	return &ZapLogger{logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop()}
}

// ParseLevel parses a log level name. An empty name means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zap.DebugLevel, nil
	case "", "INFO":
		return zap.InfoLevel, nil
	case "WARN", "WARNING":
		return zap.WarnLevel, nil
	case "ERROR":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

func (l *ZapLogger) Debugf(format string, args ...any) { l.logger.Sugar().Debugf(format, args...) }
func (l *ZapLogger) Infof(format string, args ...any)  { l.logger.Sugar().Infof(format, args...) }
func (l *ZapLogger) Warnf(format string, args ...any)  { l.logger.Sugar().Warnf(format, args...) }
func (l *ZapLogger) Errorf(format string, args ...any) { l.logger.Sugar().Errorf(format, args...) }

func (l *ZapLogger) Debug(msg string, fields ...any) { l.logger.Debug(msg, toZapFields(fields)...) }
func (l *ZapLogger) Info(msg string, fields ...any)  { l.logger.Info(msg, toZapFields(fields)...) }
func (l *ZapLogger) Warn(msg string, fields ...any)  { l.logger.Warn(msg, toZapFields(fields)...) }
func (l *ZapLogger) Error(msg string, fields ...any) { l.logger.Error(msg, toZapFields(fields)...) }

// With returns a child logger carrying the given key/value pairs.
func (l *ZapLogger) With(fields ...any) *ZapLogger {
	return &ZapLogger{logger: l.logger.With(toZapFields(fields)...)}
}

// Zap exposes the underlying logger.
func (l *ZapLogger) Zap() *zap.Logger { return l.logger }

// Sync flushes any buffered log entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

// toZapFields pairs up alternating keys and values. A trailing key without a
// value is dropped.
func toZapFields(fields []any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", fields[i])
		}
		zapFields = append(zapFields, zap.Any(key, fields[i+1]))
	}
	return zapFields
}
