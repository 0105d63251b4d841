package logging

import (
	"context"

	"go.uber.org/zap"
)

// ZapLogger adapts a sugared zap logger to Logger.
type ZapLogger struct {
	l *zap.SugaredLogger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{l: l.Sugar()}
}

func (z *ZapLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.l.Debugw(msg, withRequestID(ctx, args)...)
}

func (z *ZapLogger) Info(ctx context.Context, msg string, args ...any) {
	z.l.Infow(msg, withRequestID(ctx, args)...)
}

func (z *ZapLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.l.Warnw(msg, withRequestID(ctx, args)...)
}

func (z *ZapLogger) Error(ctx context.Context, msg string, args ...any) {
	z.l.Errorw(msg, withRequestID(ctx, args)...)
}

func (z *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{l: z.l.With(args...)}
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.l.Sync()
}
