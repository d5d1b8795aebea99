// Package config handles configuration loading and management for the timer.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the timer.
type Config struct {
	Timer TimerConfig `mapstructure:"timer"`
	TUI   TUIConfig   `mapstructure:"tui"`
	Debug DebugConfig `mapstructure:"debug"`
}

// TimerConfig holds countdown behavior settings.
type TimerConfig struct {
	// TickInterval is the cadence of remaining-time updates.
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	Theme ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig holds the TUI color palette. Values are lipgloss color
// strings (ANSI index or hex).
type ThemeConfig struct {
	// ColorTime is the color of the remaining-time display.
	ColorTime string `mapstructure:"color_time"`
	// ColorPaused is the remaining-time color while paused.
	ColorPaused string `mapstructure:"color_paused"`
	// ColorTitle is the color of the title line.
	ColorTitle string `mapstructure:"color_title"`
	// ColorHelp is the color of the key hint footer.
	ColorHelp string `mapstructure:"color_help"`
	// GradientStart is the left end of the progress bar gradient.
	GradientStart string `mapstructure:"gradient_start"`
	// GradientEnd is the right end of the progress bar gradient.
	GradientEnd string `mapstructure:"gradient_end"`
}

// DebugConfig holds debug logging settings.
type DebugConfig struct {
	// LogPath enables file-based debug logging when non-empty.
	LogPath string `mapstructure:"log_path"`
}

// minTickInterval guards against configs that would spin the render loop.
const minTickInterval = 10 * time.Millisecond

// Validate checks the configuration for values the timer cannot run with.
func (c *Config) Validate() error {
	if c.Timer.TickInterval < minTickInterval {
		return fmt.Errorf("timer.tick_interval %s is below the minimum %s", c.Timer.TickInterval, minTickInterval)
	}
	return nil
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (TIMER_DEBUG_LOG)
// 2. Project config (.timer.yaml in current directory or parent)
// 3. User config (~/.config/timer/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("debug.log_path", "TIMER_DEBUG_LOG")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("timer.tick_interval", cfg.Timer.TickInterval.String())
	v.Set("tui.theme.color_time", cfg.TUI.Theme.ColorTime)
	v.Set("tui.theme.color_paused", cfg.TUI.Theme.ColorPaused)
	v.Set("tui.theme.color_title", cfg.TUI.Theme.ColorTitle)
	v.Set("tui.theme.color_help", cfg.TUI.Theme.ColorHelp)
	v.Set("tui.theme.gradient_start", cfg.TUI.Theme.GradientStart)
	v.Set("tui.theme.gradient_end", cfg.TUI.Theme.GradientEnd)
	v.Set("debug.log_path", cfg.Debug.LogPath)

	return v.WriteConfig()
}

// Watch watches the user config file and invokes onChange with the freshly
// loaded configuration whenever the file is written. Reload failures are
// ignored so a half-saved file cannot take down a running timer. The
// returned stop function detaches the callback; viper keeps the watcher
// goroutine alive until process exit. If no user config file exists, Watch
// is a no-op.
func Watch(onChange func(*Config)) (stop func()) {
	configPath := GetUserConfigPath()
	if _, err := os.Stat(configPath); err != nil {
		return func() {}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return func() {}
	}

	v.OnConfigChange(func(event fsnotify.Event) {
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		cfg, err := Load()
		if err != nil {
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()

	return func() {
		v.OnConfigChange(func(fsnotify.Event) {})
	}
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// Countdown defaults
	v.SetDefault("timer.tick_interval", "1s")

	// Theme defaults
	v.SetDefault("tui.theme.color_time", "#4ECDC4")
	v.SetDefault("tui.theme.color_paused", "#FFC857")
	v.SetDefault("tui.theme.color_title", "243")
	v.SetDefault("tui.theme.color_help", "240")
	v.SetDefault("tui.theme.gradient_start", "#FF6B6B")
	v.SetDefault("tui.theme.gradient_end", "#4ECDC4")

	// Debug defaults
	v.SetDefault("debug.log_path", "")
}

// getUserConfigDir returns the XDG config directory for the timer.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "timer")
	}

	// Fall back to ~/.config/timer
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "timer")
	}
	return filepath.Join(home, ".config", "timer")
}

// findProjectConfig searches for .timer.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".timer.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Timer: TimerConfig{
			TickInterval: time.Second,
		},
		TUI: TUIConfig{
			Theme: ThemeConfig{
				ColorTime:     "#4ECDC4",
				ColorPaused:   "#FFC857",
				ColorTitle:    "243",
				ColorHelp:     "240",
				GradientStart: "#FF6B6B",
				GradientEnd:   "#4ECDC4",
			},
		},
		Debug: DebugConfig{
			LogPath: "",
		},
	}
}
