package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToZapLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"verbose":  zapcore.InfoLevel,
		"":         zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithCarriesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	l := New(zap.New(core)).With("request_id", "abc")
	l.Infow("detect", "detections", 2)
	l.Debugw("dropped")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "abc" || fields["detections"] != int64(2) {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestGetReturnsSingleton(t *testing.T) {
	a := Get(DebugLevel, JSONFormat)
	b := Get(ErrorLevel)
	if a != b {
		t.Fatalf("Get must return the same instance")
	}
}

func TestNop(t *testing.T) {
	t.Parallel()
	Nop().Infow("ignored", "k", "v")
}
