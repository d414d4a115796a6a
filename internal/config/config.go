// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xonecas/tsedit/internal/constants"
)

// Config is the root configuration structure.
type Config struct {
	// LogLevel is the diagnostics level of tsedit itself (zerolog level name).
	LogLevel string            `toml:"log_level"`
	Log      LogConfig         `toml:"log"`
	Indent   IndentConfig      `toml:"indent"`
	Keys     map[string]string `toml:"keys"`
	History  HistoryConfig     `toml:"history"`
	UI       UIConfig          `toml:"ui"`
}

// LogConfig names the functions emitted by the log-insertion commands.
type LogConfig struct {
	Function       string `toml:"function"`
	DebugFunction  string `toml:"debug_function"`
	PrettyFunction string `toml:"pretty_function"`
}

// FunctionOrDefault returns the plain log function or "console.log".
func (l LogConfig) FunctionOrDefault() string {
	return orDefault(l.Function, "console.log")
}

// DebugFunctionOrDefault returns the debug log function or "console.debug".
func (l LogConfig) DebugFunctionOrDefault() string {
	return orDefault(l.DebugFunction, "console.debug")
}

// PrettyFunctionOrDefault returns the deep-dump function or "console.dir".
func (l LogConfig) PrettyFunctionOrDefault() string {
	return orDefault(l.PrettyFunction, "console.dir")
}

// IndentConfig controls re-indentation of moved and inserted lines.
type IndentConfig struct {
	Width int  `toml:"width"`
	Tabs  bool `toml:"tabs"`
}

// Unit returns one level of indentation. Width defaults to 2.
func (i IndentConfig) Unit() string {
	if i.Tabs {
		return "\t"
	}
	if i.Width <= 0 {
		return "  "
	}
	return strings.Repeat(" ", i.Width)
}

// HistoryConfig controls the undo journal kept for rewritten files.
type HistoryConfig struct {
	Disabled bool   `toml:"disabled"`
	Path     string `toml:"path"`
	// Keep is the number of entries retained per file.
	Keep int `toml:"keep"`
}

// KeepOrDefault returns Keep or 50.
func (h HistoryConfig) KeepOrDefault() int {
	if h.Keep <= 0 {
		return 50
	}
	return h.Keep
}

// PathOrDefault returns the journal database path, defaulting to
// history.db in the data directory.
func (h HistoryConfig) PathOrDefault() (string, error) {
	if h.Path != "" {
		return h.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma theme used to colour diffs.
	SyntaxTheme string `toml:"syntax_theme"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or constants.SyntaxTheme.
func (u UIConfig) SyntaxThemeOrDefault() string {
	return orDefault(u.SyntaxTheme, constants.SyntaxTheme)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{Keys: make(map[string]string)}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// jsCallee matches a dotted JavaScript identifier path such as console.log.
var jsCallee = regexp.MustCompile(`^[A-Za-z_$][\w$]*(\.[A-Za-z_$][\w$]*)*$`)

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	for _, f := range []struct {
		key, value string
	}{
		{"log.function", c.Log.Function},
		{"log.debug_function", c.Log.DebugFunction},
		{"log.pretty_function", c.Log.PrettyFunction},
	} {
		if f.value != "" && !jsCallee.MatchString(f.value) {
			errs = append(errs, fmt.Errorf("%s=%q is not a valid function name", f.key, f.value))
		}
	}

	if c.Indent.Width < 0 || c.Indent.Width > 16 {
		errs = append(errs, fmt.Errorf("indent.width=%d must be between 0 and 16", c.Indent.Width))
	}

	if c.History.Keep < 0 {
		errs = append(errs, fmt.Errorf("history.keep=%d must not be negative", c.History.Keep))
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level=%q is invalid: %v", c.LogLevel, err))
		}
	}

	for cmd, key := range c.Keys {
		if strings.TrimSpace(key) == "" {
			errs = append(errs, fmt.Errorf("keys.%s must not be empty", cmd))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"TSEDIT_LOG_FUNCTION", func(v string) {
			if v != "" {
				cfg.Log.Function = v
			}
		}},
		{"TSEDIT_HISTORY_DB", func(v string) {
			if v != "" {
				cfg.History.Path = v
			}
		}},
		{"TSEDIT_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.LogLevel = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the tsedit data directory (~/.config/tsedit).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", constants.AppName), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
