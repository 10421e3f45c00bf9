// Package logger is the structured logging facade every component receives.
package logger

import (
	"log"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger takes the error as its own argument on Error and Fatal so call
// sites never forget to attach it.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, err error, fields ...zap.Field)
	Fatal(msg string, err error, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	Sync() error
}

type zapLogger struct {
	z *zap.Logger
}

// NewZapLogger builds a JSON logger for production and a console logger
// otherwise. level overrides the environment default (info / debug) when it
// names a zap level.
func NewZapLogger(env, level string) Logger {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.DisableStacktrace = true
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lvl, err := zapcore.ParseLevel(strings.TrimSpace(level)); err == nil && level != "" {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	z, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	return &zapLogger{z: z}
}

// NewNop returns a Logger that discards everything. Used by tests.
func NewNop() Logger {
	return &zapLogger{z: zap.NewNop()}
}

func (l *zapLogger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }

func (l *zapLogger) Error(msg string, err error, fields ...zap.Field) {
	l.z.Error(msg, withErr(fields, err)...)
}

func (l *zapLogger) Fatal(msg string, err error, fields ...zap.Field) {
	l.z.Fatal(msg, withErr(fields, err)...)
}

func (l *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{z: l.z.With(fields...)}
}

func (l *zapLogger) Sync() error {
	return l.z.Sync()
}

func withErr(fields []zap.Field, err error) []zap.Field {
	if err == nil {
		return fields
	}
	return append(fields, zap.Error(err))
}
