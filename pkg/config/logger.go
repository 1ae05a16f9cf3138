package config

import (
	"context"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes structured JSON through zap; otelzap attaches the trace and
// span ids of the context's active span.
type Logger struct {
	*otelzap.Logger
	serviceName string
}

func NewLogger(cfg LogConfig, serviceName string) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)

	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build(zap.Fields(zap.String("service", serviceName)))

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return FromZap(zapLogger, serviceName), nil
}

// NewNopLogger discards everything. Used by tests.
func NewNopLogger() *Logger {
	return FromZap(zap.NewNop(), "")
}

// FromZap adapts an existing zap logger.
func FromZap(zapLogger *zap.Logger, serviceName string) *Logger {
	return &Logger{
		Logger:      otelzap.New(zapLogger, otelzap.WithMinLevel(zapcore.DebugLevel)),
		serviceName: serviceName,
	}
}

func (l *Logger) ServiceName() string {
	return l.serviceName
}

func (l *Logger) InfoWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.Ctx(ctx).Info(msg, fields...)
}

func (l *Logger) WarnWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.Ctx(ctx).Warn(msg, fields...)
}

func (l *Logger) ErrorWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.Ctx(ctx).Error(msg, fields...)
}

func (l *Logger) Sync() error {
	return l.Logger.Sync()
}
