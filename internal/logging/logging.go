// Package logging builds the structured stderr loggers used by the commands.
// Stdout is reserved for fixture output, so the default level is warn.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const DefaultLevel = "warn"

// Options configures New.
type Options struct {
	Level     string
	Timestamp bool
	Caller    bool
	JSON      bool
}

// New returns a logger writing to w. An unknown level falls back to
// DefaultLevel.
func New(w io.Writer, opts Options) *log.Logger {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		lvl = log.WarnLevel
	}
	l := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: opts.Timestamp,
		ReportCaller:    opts.Caller,
		Prefix:          "fixtures",
	})
	if opts.JSON {
		l.SetFormatter(log.JSONFormatter)
	} else {
		l.SetStyles(levelStyles())
	}
	return l
}

var levelColors = map[log.Level]string{
	log.DebugLevel: "63",
	log.InfoLevel:  "86",
	log.WarnLevel:  "192",
	log.ErrorLevel: "204",
	log.FatalLevel: "134",
}

// levelStyles prints full level names instead of the four letter default.
func levelStyles() *log.Styles {
	styles := log.DefaultStyles()
	for lvl, color := range levelColors {
		styles.Levels[lvl] = lipgloss.NewStyle().
			SetString(strings.ToUpper(lvl.String())).
			Bold(true).
			Foreground(lipgloss.Color(color))
	}
	return styles
}

// ParseLevel accepts charmbracelet level names, case-insensitively.
// The empty string selects DefaultLevel.
func ParseLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = DefaultLevel
	}
	return log.ParseLevel(s)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
