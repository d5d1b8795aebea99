package main

import (
	"errors"
	"testing"
	"time"

	"github.com/countdown-sh/timer/internal/config"
	"github.com/countdown-sh/timer/internal/tui"
	"github.com/countdown-sh/timer/pkg/duration"
)

func TestExitCodeFor(t *testing.T) {
	parseErr := func() error {
		_, err := duration.Parse("a:1")
		return err
	}()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, exitOK},
		{"parse error", parseErr, exitBadInput},
		{"wrapped parse error", errors.Join(errors.New("context"), parseErr), exitBadInput},
		{"terminal error", &tui.TerminalError{Err: errors.New("tty gone")}, exitTerminal},
		{"generic error", errors.New("bad usage"), exitBadInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRunTimer_BadDurationFailsBeforeTerminalUse(t *testing.T) {
	// A malformed duration must come back as a ParseError without the run
	// ever starting; nothing here touches the terminal.
	err := runTimer("not-a-duration")
	if err == nil {
		t.Fatal("expected error for malformed duration")
	}
	var parseErr *duration.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("runTimer error is %T, want *duration.ParseError", err)
	}
}

func TestConfigRoundTripByKey(t *testing.T) {
	cfg := config.Default()

	if err := setConfigValue(cfg, "timer.tick_interval", "500ms"); err != nil {
		t.Fatalf("setConfigValue: %v", err)
	}
	if cfg.Timer.TickInterval != 500*time.Millisecond {
		t.Errorf("tick_interval = %v, want 500ms", cfg.Timer.TickInterval)
	}

	got, err := getConfigValue(cfg, "timer.tick_interval")
	if err != nil {
		t.Fatalf("getConfigValue: %v", err)
	}
	if got != "500ms" {
		t.Errorf("getConfigValue = %q, want %q", got, "500ms")
	}

	if err := setConfigValue(cfg, "tui.theme.color_time", "#123456"); err != nil {
		t.Fatalf("setConfigValue: %v", err)
	}
	if cfg.TUI.Theme.ColorTime != "#123456" {
		t.Errorf("color_time = %q, want #123456", cfg.TUI.Theme.ColorTime)
	}
}

func TestConfigValue_UnknownKey(t *testing.T) {
	cfg := config.Default()

	if _, err := getConfigValue(cfg, "nope.nothing"); err == nil {
		t.Error("getConfigValue accepted an unknown key")
	}
	if err := setConfigValue(cfg, "nope.nothing", "x"); err == nil {
		t.Error("setConfigValue accepted an unknown key")
	}
}

func TestSetConfigValue_BadDuration(t *testing.T) {
	cfg := config.Default()
	if err := setConfigValue(cfg, "timer.tick_interval", "fast"); err == nil {
		t.Error("setConfigValue accepted a malformed duration")
	}
}
