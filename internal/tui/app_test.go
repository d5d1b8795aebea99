package tui

// Key-flow tests drive Update with real tea.KeyMsg values so regressions in
// key dispatch or engine wiring fail here rather than in a live terminal.

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/countdown-sh/timer/internal/config"
	"github.com/countdown-sh/timer/internal/countdown"
)

const testInterval = 20 * time.Millisecond

func keyMsg(s string) tea.Msg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testApp(total time.Duration) (*App, *countdown.Engine) {
	engine := countdown.New(total, countdown.WithInterval(testInterval))
	return New(engine, config.Default().TUI.Theme), engine
}

// drainUntilDone pumps the wait-for-snapshot command until the engine closes
// its channel, then delivers the done message to the app.
func drainUntilDone(t *testing.T, a *App) tea.Cmd {
	t.Helper()
	cmd := a.waitForSnapshot()
	for {
		msg := cmd()
		if done, ok := msg.(doneMsg); ok {
			_, quitCmd := a.Update(done)
			return quitCmd
		}
		var next tea.Cmd
		_, next = a.Update(msg)
		if next == nil {
			t.Fatal("snapshot update did not re-arm the snapshot wait")
		}
		cmd = next
	}
}

func TestApp_CancellationKeys(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			app, engine := testApp(time.Hour)

			app.Update(keyMsg(k))

			select {
			case <-engine.Cancelled():
			default:
				t.Errorf("key %q did not set the cancellation signal", k)
			}
		})
	}
}

func TestApp_OtherKeysIgnored(t *testing.T) {
	app, engine := testApp(time.Hour)

	for _, k := range []string{"x", "1", "enter"} {
		app.Update(keyMsg(k))
	}

	select {
	case <-engine.Cancelled():
		t.Error("unrelated keys must not cancel the countdown")
	default:
	}
}

func TestApp_QuitKeyEndsRunAsCancelled(t *testing.T) {
	app, engine := testApp(time.Hour)

	done := make(chan countdown.Status, 1)
	go func() {
		done <- engine.Run(context.Background())
	}()

	// Consume the initial snapshot, then press q.
	msg := app.waitForSnapshot()()
	app.Update(msg)
	app.Update(keyMsg("q"))

	quitCmd := drainUntilDone(t, app)
	if quitCmd == nil {
		t.Fatal("done message did not produce a quit command")
	}
	if _, ok := quitCmd().(tea.QuitMsg); !ok {
		t.Error("done message must produce tea.Quit")
	}

	if status := <-done; status != countdown.StatusCancelled {
		t.Errorf("engine finished as %v, want %v", status, countdown.StatusCancelled)
	}
	if app.FinalStatus() != countdown.StatusCancelled {
		t.Errorf("FinalStatus() = %v, want %v", app.FinalStatus(), countdown.StatusCancelled)
	}
}

func TestApp_PauseKeyTogglesEngine(t *testing.T) {
	for _, k := range []string{"p", "space"} {
		t.Run(k, func(t *testing.T) {
			app, engine := testApp(time.Hour)

			done := make(chan countdown.Status, 1)
			go func() {
				done <- engine.Run(context.Background())
			}()
			msg := app.waitForSnapshot()()
			app.Update(msg)

			app.Update(keyMsg(k))
			if engine.Status() != countdown.StatusPaused {
				t.Fatalf("after first %q: engine status = %v, want %v", k, engine.Status(), countdown.StatusPaused)
			}

			app.Update(keyMsg(k))
			if engine.Status() != countdown.StatusRunning {
				t.Fatalf("after second %q: engine status = %v, want %v", k, engine.Status(), countdown.StatusRunning)
			}

			engine.Cancel()
			drainUntilDone(t, app)
			<-done
		})
	}
}

func TestApp_RunsToCompletion(t *testing.T) {
	app, engine := testApp(3 * testInterval)

	done := make(chan countdown.Status, 1)
	go func() {
		done <- engine.Run(context.Background())
	}()

	drainUntilDone(t, app)

	if status := <-done; status != countdown.StatusCompleted {
		t.Fatalf("engine finished as %v, want %v", status, countdown.StatusCompleted)
	}
	if app.FinalStatus() != countdown.StatusCompleted {
		t.Errorf("FinalStatus() = %v, want %v", app.FinalStatus(), countdown.StatusCompleted)
	}
}

func TestApp_ViewShowsFormattedRemaining(t *testing.T) {
	app, _ := testApp(300 * time.Second)

	app.Update(snapshotMsg(countdown.Snapshot{
		Remaining: 123 * time.Second,
		Total:     300 * time.Second,
		Status:    countdown.StatusRunning,
		At:        time.Now(),
	}))

	view := app.View()
	if !strings.Contains(view, "2:03") {
		t.Errorf("view does not contain formatted remaining time 2:03:\n%s", view)
	}
}

func TestApp_ViewBeforeFirstSnapshot(t *testing.T) {
	app, _ := testApp(time.Hour)
	if view := app.View(); !strings.Contains(view, "Starting") {
		t.Errorf("pre-snapshot view = %q, want a starting placeholder", view)
	}
}

func TestApp_ViewMarksPaused(t *testing.T) {
	app, _ := testApp(time.Minute)

	app.Update(snapshotMsg(countdown.Snapshot{
		Remaining: 30 * time.Second,
		Total:     time.Minute,
		Status:    countdown.StatusPaused,
		At:        time.Now(),
	}))

	if view := app.View(); !strings.Contains(view, "⏸") {
		t.Error("paused view does not show the pause marker")
	}
}

func TestApp_ElapsedFraction(t *testing.T) {
	tests := []struct {
		name      string
		remaining time.Duration
		total     time.Duration
		want      float64
	}{
		{"start", 100 * time.Second, 100 * time.Second, 0},
		{"halfway", 50 * time.Second, 100 * time.Second, 0.5},
		{"done", 0, 100 * time.Second, 1},
		{"zero total", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := testApp(tt.total)
			app.snapshot = countdown.Snapshot{Remaining: tt.remaining, Total: tt.total}
			if got := app.elapsedFraction(); got != tt.want {
				t.Errorf("elapsedFraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApp_ThemeMsgRestyles(t *testing.T) {
	app, _ := testApp(time.Minute)

	theme := config.Default().TUI.Theme
	theme.ColorTime = "#FF0000"
	app.Update(ThemeMsg(theme))

	if app.theme.ColorTime != "#FF0000" {
		t.Errorf("theme color_time = %q, want #FF0000", app.theme.ColorTime)
	}
}

func TestApp_WindowSizeCapsProgressWidth(t *testing.T) {
	app, _ := testApp(time.Minute)

	app.Update(tea.WindowSizeMsg{Width: 500, Height: 50})
	if app.progress.Width != maxBarWidth {
		t.Errorf("progress width = %d, want capped at %d", app.progress.Width, maxBarWidth)
	}

	app.Update(tea.WindowSizeMsg{Width: 30, Height: 50})
	if app.progress.Width != 22 {
		t.Errorf("progress width = %d, want 22", app.progress.Width)
	}
}

func TestTerminalError_Unwrap(t *testing.T) {
	inner := errors.New("write failed")
	err := &TerminalError{Err: inner}

	if !errors.Is(err, inner) {
		t.Error("TerminalError must unwrap to the underlying error")
	}
	if !strings.Contains(err.Error(), "write failed") {
		t.Errorf("TerminalError.Error() = %q, want it to mention the cause", err.Error())
	}
}
