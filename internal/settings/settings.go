// Package settings resolves process-level settings from flags, FIXTURES_*
// environment variables and an optional .fixtures.yaml file, in that order
// of precedence.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/flarebyte/surface-fixtures/internal/logging"
	"github.com/flarebyte/surface-fixtures/internal/recursion"
)

const (
	EnvPrefix = "FIXTURES"

	KeyLogLevel  = "log-level"
	KeyLogJSON   = "log-json"
	KeyMaxSteps  = "max-steps"
	KeySettings  = "settings"
	fileBaseName = ".fixtures"
)

// Settings are the resolved values.
type Settings struct {
	LogLevel string
	LogJSON  bool
	MaxSteps int
	// File is the settings file used, if any.
	File string
}

// BindFlags registers the persistent flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(KeyLogLevel, logging.DefaultLevel, "Log level (debug|info|warn|error)")
	fs.Bool(KeyLogJSON, false, "Log as JSON on stderr")
	fs.Int(KeyMaxSteps, recursion.DefaultMaxSteps, "Upper bound on recursion events")
	fs.String(KeySettings, "", "Settings file (default ./.fixtures.yaml when present)")
}

// Load resolves settings using a fresh viper instance.
func Load(fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyLogLevel, logging.DefaultLevel)
	v.SetDefault(KeyMaxSteps, recursion.DefaultMaxSteps)

	if fs != nil {
		for _, k := range []string{KeyLogLevel, KeyLogJSON, KeyMaxSteps} {
			if f := fs.Lookup(k); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", k, err)
				}
			}
		}
	}

	file := ""
	if fs != nil {
		if f := fs.Lookup(KeySettings); f != nil {
			file = f.Value.String()
		}
	}
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(fileBaseName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return Settings{}, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	s := Settings{
		LogLevel: v.GetString(KeyLogLevel),
		LogJSON:  v.GetBool(KeyLogJSON),
		MaxSteps: v.GetInt(KeyMaxSteps),
	}
	if used := v.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			s.File = filepath.ToSlash(used)
		}
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return Settings{}, fmt.Errorf("invalid log level: %q", s.LogLevel)
	}
	if s.MaxSteps <= 0 {
		return Settings{}, fmt.Errorf("invalid max-steps: %d (must be positive)", s.MaxSteps)
	}
	return s, nil
}
