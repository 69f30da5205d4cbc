package logging

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Slog exposes the logger as a *slog.Logger so packages written against
// log/slog share the same zap core and trace correlation.
func (l *Logger) Slog() *slog.Logger {
	if l == nil || l.zap == nil {
		return slog.New(zapSlogHandler{zap: zap.NewNop()})
	}

	return slog.New(zapSlogHandler{zap: l.zap})
}

type zapSlogHandler struct {
	zap    *zap.Logger
	groups []string
}

func (h zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.zap.Core().Enabled(zapLevel(level))
}

func (h zapSlogHandler) Handle(ctx context.Context, record slog.Record) error {
	fields := make([]zap.Field, 0, record.NumAttrs()+2)
	record.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, attrToField(h.prefix(), attr))
		return true
	})
	fields = append(fields, traceFields(ctx)...)

	if ce := h.zap.Check(zapLevel(record.Level), record.Message); ce != nil {
		if !record.Time.IsZero() {
			ce.Time = record.Time
		}
		ce.Write(fields...)
	}

	return nil
}

func (h zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	fields := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		fields = append(fields, attrToField(h.prefix(), attr))
	}

	return zapSlogHandler{zap: h.zap.With(fields...), groups: h.groups}
}

func (h zapSlogHandler) WithGroup(name string) slog.Handler {
	if strings.TrimSpace(name) == "" {
		return h
	}

	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)

	return zapSlogHandler{zap: h.zap, groups: groups}
}

func (h zapSlogHandler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}

	return strings.Join(h.groups, ".") + "."
}

func attrToField(prefix string, attr slog.Attr) zap.Field {
	key := prefix + attr.Key
	value := attr.Value.Resolve()

	switch value.Kind() {
	case slog.KindString:
		return zap.String(key, value.String())
	case slog.KindBool:
		return zap.Bool(key, value.Bool())
	case slog.KindInt64:
		return zap.Int64(key, value.Int64())
	case slog.KindUint64:
		return zap.Uint64(key, value.Uint64())
	case slog.KindFloat64:
		return zap.Float64(key, value.Float64())
	case slog.KindDuration:
		return zap.Duration(key, value.Duration())
	case slog.KindTime:
		return zap.Time(key, value.Time())
	default:
		return zap.Any(key, value.Any())
	}
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
