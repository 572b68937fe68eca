package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_DefaultLevelFiltersInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{})
	l.Info("hidden")
	l.Warn("shown", "seed", 5)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at default level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "seed=5") {
		t.Fatalf("expected warn line with field, got %q", out)
	}
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Level: "DEBUG"})
	l.Debug("visible")
	l.Error("failed")
	if !strings.Contains(buf.String(), "visible") || !strings.Contains(buf.String(), "DEBUG") || !strings.Contains(buf.String(), "ERROR") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	if err != nil || lvl != log.WarnLevel {
		t.Fatalf("ParseLevel(\"\") = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
