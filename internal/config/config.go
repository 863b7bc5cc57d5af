// Package config loads cradar's settings through viper, layered as
// flag > environment > project file (.cradar.toml in the primary working
// tree) > user file ($XDG_CONFIG_HOME/cradar/config.toml) > built-in default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/sqve/cradar/internal/fs"
)

// Global holds process-wide output flags that don't belong in viper because
// they're pure presentation, not configuration a project would commit.
var Global struct {
	Plain bool // Disable colors and symbols
	Debug bool // Enable debug logging
}

// IsPlain returns true if plain (no ANSI) output mode is enabled.
func IsPlain() bool {
	return Global.Plain
}

// Initialize wires viper's defaults, env var prefix, and config file search
// path. repoRoot is the primary working tree's path, where a project-local
// .cradar.toml is looked for; pass "" when not yet known (e.g. before the
// repository is opened) and only the user config / defaults apply.
func Initialize(repoRoot string) error {
	setDefaults()

	viper.SetEnvPrefix("CRADAR")
	viper.AutomaticEnv()

	viper.SetConfigType("toml")
	viper.SetConfigName("config")

	if dir := userConfigDir(); dir != "" {
		viper.AddConfigPath(dir)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	// The project file is merged over the user file, so it wins on any key
	// both of them set.
	if project := filepath.Join(repoRoot, fs.CradarConfig); repoRoot != "" && fs.FileExists(project) {
		viper.SetConfigFile(project)
		if err := viper.MergeInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("output.plain", false)
	viper.SetDefault("watch.debounce_ms", 250)
	viper.SetDefault("git.timeout", 30*time.Second)
}

func userConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return ""
	}
	return filepath.Join(base, "cradar")
}

// GetString returns a string setting by dotted key.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an integer setting by dotted key.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetDuration returns a duration setting by dotted key.
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetBool returns a boolean setting by dotted key.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// DebounceInterval returns the configured Change Observer debounce window.
func DebounceInterval() time.Duration {
	ms := GetInt("watch.debounce_ms")
	if ms <= 0 {
		ms = 250
	}
	return time.Duration(ms) * time.Millisecond
}

// GitTimeout returns the configured per-invocation timeout for shelled-out
// git commands, or zero (no timeout) if unset.
func GitTimeout() time.Duration {
	return GetDuration("git.timeout")
}
