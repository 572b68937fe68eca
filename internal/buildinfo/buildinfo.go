// Package buildinfo exposes version metadata for the fixtures binaries.
// Values are set with -ldflags; cli.Version and cli.Date act as fallbacks
// for build scripts that target the cli package.
package buildinfo

import (
	"runtime"
	"strings"
	"time"

	"github.com/flarebyte/surface-fixtures/cli"
)

var (
	// Version defaults to cli.Version, then "dev".
	Version = "dev"
	Commit  = ""
	// Date falls back to cli.Date.
	Date    = ""
	BuiltBy = ""
)

func version() string {
	switch {
	case Version != "":
		return Version
	case cli.Version != "":
		return cli.Version
	default:
		return "dev"
	}
}

func date() string {
	if Date != "" {
		return Date
	}
	return cli.Date
}

// Summary returns a concise single-line version string.
func Summary() string {
	v := version()
	parts := make([]string, 0, 2)
	if Commit != "" {
		c := Commit
		if len(c) > 7 {
			c = c[:7]
		}
		parts = append(parts, "commit="+c)
	}
	if d := date(); d != "" {
		parts = append(parts, "date="+d)
	}
	if len(parts) > 0 {
		v += " (" + strings.Join(parts, ", ") + ")"
	}
	return v
}

// Details describes the build and the running toolchain, stamped with now.
func Details(now time.Time) map[string]any {
	return map[string]any{
		"version":   version(),
		"commit":    Commit,
		"date":      date(),
		"built_by":  BuiltBy,
		"go":        runtime.Version(),
		"go_os":     runtime.GOOS,
		"go_arch":   runtime.GOARCH,
		"timestamp": now.UTC().Format(time.RFC3339Nano),
	}
}
