package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/countdown-sh/timer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify timer configuration.

Without arguments, displays the effective configuration as YAML.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/timer/config.yaml
Project-specific overrides can be placed in .timer.yaml

Keys:
  timer.tick_interval
  tui.theme.color_time
  tui.theme.color_paused
  tui.theme.color_title
  tui.theme.color_help
  tui.theme.gradient_start
  tui.theme.gradient_end
  debug.log_path`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// configTree lays the config out for the YAML dump. Durations render as
// strings so the output can be pasted back into a config file.
func configTree(cfg *config.Config) map[string]interface{} {
	return map[string]interface{}{
		"timer": map[string]interface{}{
			"tick_interval": cfg.Timer.TickInterval.String(),
		},
		"tui": map[string]interface{}{
			"theme": map[string]interface{}{
				"color_time":     cfg.TUI.Theme.ColorTime,
				"color_paused":   cfg.TUI.Theme.ColorPaused,
				"color_title":    cfg.TUI.Theme.ColorTitle,
				"color_help":     cfg.TUI.Theme.ColorHelp,
				"gradient_start": cfg.TUI.Theme.GradientStart,
				"gradient_end":   cfg.TUI.Theme.GradientEnd,
			},
		},
		"debug": map[string]interface{}{
			"log_path": cfg.Debug.LogPath,
		},
	}
}

// displayAllConfig prints the effective configuration as YAML.
func displayAllConfig(cfg *config.Config) {
	out, err := yaml.Marshal(configTree(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "timer.tick_interval":
		return cfg.Timer.TickInterval.String(), nil
	case "tui.theme.color_time":
		return cfg.TUI.Theme.ColorTime, nil
	case "tui.theme.color_paused":
		return cfg.TUI.Theme.ColorPaused, nil
	case "tui.theme.color_title":
		return cfg.TUI.Theme.ColorTitle, nil
	case "tui.theme.color_help":
		return cfg.TUI.Theme.ColorHelp, nil
	case "tui.theme.gradient_start":
		return cfg.TUI.Theme.GradientStart, nil
	case "tui.theme.gradient_end":
		return cfg.TUI.Theme.GradientEnd, nil
	case "debug.log_path":
		return cfg.Debug.LogPath, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "timer.tick_interval":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		cfg.Timer.TickInterval = d
	case "tui.theme.color_time":
		cfg.TUI.Theme.ColorTime = value
	case "tui.theme.color_paused":
		cfg.TUI.Theme.ColorPaused = value
	case "tui.theme.color_title":
		cfg.TUI.Theme.ColorTitle = value
	case "tui.theme.color_help":
		cfg.TUI.Theme.ColorHelp = value
	case "tui.theme.gradient_start":
		cfg.TUI.Theme.GradientStart = value
	case "tui.theme.gradient_end":
		cfg.TUI.Theme.GradientEnd = value
	case "debug.log_path":
		cfg.Debug.LogPath = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
