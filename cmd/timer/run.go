package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/countdown-sh/timer/internal/config"
	"github.com/countdown-sh/timer/internal/countdown"
	"github.com/countdown-sh/timer/internal/tui"
	"github.com/countdown-sh/timer/pkg/duration"
)

// runTimer executes one countdown run: parse, count down in the TUI, report.
func runTimer(arg string) error {
	// Parse before anything touches the terminal: a malformed duration
	// must fail with no cleanup owed.
	total, err := duration.Parse(arg)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := countdown.NewDebugLogger(cfg.Debug.LogPath)
	if err != nil {
		// Debug logging is best-effort; a broken log path should not
		// stop the countdown.
		fmt.Fprintln(os.Stderr, color.YellowString("Warning: debug log disabled: %v", err))
		logger = countdown.NopLogger()
	}
	defer logger.Close()

	engine := countdown.New(total,
		countdown.WithInterval(cfg.Timer.TickInterval),
		countdown.WithLogger(logger),
	)

	program, app := tui.NewProgram(engine, cfg.TUI.Theme)

	// Live theme reload while the timer runs.
	stopWatch := config.Watch(func(updated *config.Config) {
		program.Send(tui.ThemeMsg(updated.TUI.Theme))
	})
	defer stopWatch()

	// The engine runs beside the TUI; the TUI consumes its snapshots and
	// quits when the snapshot channel closes.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engineDone := make(chan countdown.Status, 1)
	go func() {
		engineDone <- engine.Run(ctx)
	}()

	if _, err := program.Run(); err != nil {
		// The program restored the terminal before returning. Stop the
		// engine and surface the failure.
		engine.Cancel()
		<-engineDone
		return &tui.TerminalError{Err: err}
	}

	status := <-engineDone

	// The alt screen is gone; leave a one-line result behind.
	switch status {
	case countdown.StatusCompleted:
		fmt.Println(color.GreenString("Timer finished!"))
	case countdown.StatusCancelled:
		remaining := engine.Remaining()
		if snap, ok := app.LastSnapshot(); ok {
			remaining = snap.Remaining
		}
		fmt.Println(color.YellowString("Timer stopped by user at %s.", duration.FormatCeil(remaining)))
	}

	return nil
}
