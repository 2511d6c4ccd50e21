package utils

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSplitList(t *testing.T) {
	got := SplitList(" a, b;\nc ,a,, ")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("SplitList = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SplitList = %v, want %v", got, want)
		}
	}
	if out := SplitList(""); out == nil || len(out) != 0 {
		t.Fatalf("empty input should give an empty list, got %#v", out)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "x", "y"); got != "x" {
		t.Fatalf("FirstNonEmpty = %q", got)
	}
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("FirstNonEmpty = %q", got)
	}
}

func TestLogEventFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogEvent(" rid-1 ", "store", "load", "dataset loaded", zap.Int("records", 3))
	LogWarn("", "config", "parse_env", "bad value")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["module"] != "STORE" || ctx["action"] != "load" || ctx["request_id"] != "rid-1" {
		t.Fatalf("unexpected fields %v", ctx)
	}
	if ctx["records"] != int64(3) {
		t.Fatalf("extra field missing: %v", ctx)
	}
	if entries[1].Level != zap.WarnLevel {
		t.Fatalf("LogWarn level = %s", entries[1].Level)
	}
}

func TestInitLogger_RejectsUnknownLevel(t *testing.T) {
	defer SetLogger(nil)
	if _, err := InitLogger("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := InitLogger("debug"); err != nil {
		t.Fatalf("InitLogger(debug) returned error: %v", err)
	}
}
