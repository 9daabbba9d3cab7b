package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplace(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Replace(zap.New(core))
	t.Cleanup(func() { Replace(zap.NewNop()) })

	Get().Infow("distribution finished", "week", "2024-01-07")

	entries := logs.FilterMessage("distribution finished").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["week"]; got != "2024-01-07" {
		t.Errorf("expected week field 2024-01-07, got %v", got)
	}
}
