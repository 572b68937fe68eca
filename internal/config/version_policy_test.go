package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuelang.org/go/cue/cuecontext"
)

func writeCfg(t *testing.T, name, content string) string {
	t.Helper()
	d := t.TempDir()
	cfg := filepath.Join(d, name)
	if err := os.WriteFile(cfg, []byte(content), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	return cfg
}

func TestParse_UnknownConfigVersion(t *testing.T) {
	cfg := writeCfg(t, "unknown_version.cue", "{\n  configVersion: \"2\"\n  scenarios: []\n}\n")
	_, err := Parse(cfg)
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "unsupported configVersion: \"2\" (supported: 1)"
	if err.Error() != want {
		t.Fatalf("unexpected error\nwant: %s\n got: %s", want, err.Error())
	}
}

func TestIsSupportedConfigVersion(t *testing.T) {
	if !IsSupportedConfigVersion("1") || IsSupportedConfigVersion("0") {
		t.Fatalf("unexpected version policy")
	}
	if SupportedConfigVersionsCSV() != "1" {
		t.Fatalf("unexpected csv: %s", SupportedConfigVersionsCSV())
	}
	if !strings.Contains(schemaSource, "#Config") || cuecontext.New().CompileString(schemaSource).Err() != nil {
		t.Fatalf("embedded schema does not compile")
	}
}
