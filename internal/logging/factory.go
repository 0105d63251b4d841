package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatZap  = "zap"
)

// New builds a Logger writing to w in the given format at the given level
// ("debug", "info", "warn", "error").
func New(format, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		lvl, err := slogLevel(level)
		if err != nil {
			return nil, err
		}
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))), nil
	case FormatText:
		lvl, err := slogLevel(level)
		if err != nil {
			return nil, err
		}
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))), nil
	case FormatZap:
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), lvl)
		return NewZapLogger(zap.New(core)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func slogLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
