package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Params{Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	l.Debug("mapped graph", "nodes", 3)
	out := buf.String()
	if !strings.Contains(out, "mapped graph") || !strings.Contains(out, "nodes=3") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Params{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New(Params{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing", "k", "v")
}
