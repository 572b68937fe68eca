package stage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", p, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

func runStage(t *testing.T, name string, in Envelope) (Envelope, string) {
	t.Helper()
	var buf bytes.Buffer
	out, err := Run(context.Background(), name, in, Deps{Stdout: &buf})
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return out, buf.String()
}

func defaultLuaSandboxForTest() *Meta {
	return &Meta{LuaSandbox: DefaultLuaSandbox()}
}
