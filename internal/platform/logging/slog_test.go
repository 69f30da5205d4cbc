package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSlogBridge_WritesThroughZapCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).Slog()

	logger.Info("pick submitted", "league_id", "lg-1", "week", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if entries[0].Message != "pick submitted" {
		t.Fatalf("unexpected message: %s", entries[0].Message)
	}

	fields := entries[0].ContextMap()
	if fields["league_id"] != "lg-1" {
		t.Fatalf("unexpected league_id field: %v", fields["league_id"])
	}
	if fields["week"] != int64(3) {
		t.Fatalf("unexpected week field: %v", fields["week"])
	}
}

func TestSlogBridge_GroupsPrefixKeys(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).Slog().WithGroup("standings")

	logger.Warn("cache miss", "season", 2025)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["standings.season"] != int64(2025) {
		t.Fatalf("expected grouped key, got fields %v", fields)
	}
}

func TestSlogBridge_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := FromZap(zap.New(core)).Slog()

	logger.Debug("noise")
	logger.Info("still noise")
	logger.Error("real problem")

	if got := logs.Len(); got != 1 {
		t.Fatalf("expected only the error entry, got %d", got)
	}
}
