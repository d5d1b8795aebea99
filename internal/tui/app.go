// Package tui provides the terminal user interface for the countdown run.
//
// The bubbletea program owns the terminal for the run's lifetime: it enters
// the alternate screen and raw mode on start and restores the previous
// terminal state on every exit path, including errors and panics. All
// rendering goes through View, so the countdown engine itself never touches
// the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/countdown-sh/timer/internal/config"
	"github.com/countdown-sh/timer/internal/countdown"
	"github.com/countdown-sh/timer/pkg/duration"
)

// snapshotMsg carries one engine snapshot into the update loop.
type snapshotMsg countdown.Snapshot

// doneMsg signals that the engine closed its snapshot channel.
type doneMsg struct {
	status countdown.Status
}

// ThemeMsg swaps the color theme mid-run (sent by the config watcher).
type ThemeMsg config.ThemeConfig

// maxBarWidth keeps the progress bar readable on wide terminals.
const maxBarWidth = 60

// App is the bubbletea model for a countdown run.
type App struct {
	engine *countdown.Engine

	snapshot     countdown.Snapshot
	haveSnapshot bool
	finalStatus  countdown.Status

	progress progress.Model
	keys     keyMap
	help     help.Model
	theme    config.ThemeConfig

	// Styles derived from the theme.
	timeStyle   lipgloss.Style
	pausedStyle lipgloss.Style
	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style

	width    int
	height   int
	quitting bool
}

// New creates an App consuming the given engine's snapshots.
func New(engine *countdown.Engine, theme config.ThemeConfig) *App {
	a := &App{
		engine: engine,
		keys:   defaultKeyMap,
		help:   help.New(),
	}
	a.applyTheme(theme)
	return a
}

// NewProgram wraps the App in an alt-screen bubbletea program.
// The returned program can receive messages via Send().
func NewProgram(engine *countdown.Engine, theme config.ThemeConfig) (*tea.Program, *App) {
	app := New(engine, theme)
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.waitForSnapshot()
}

// waitForSnapshot blocks on the engine's snapshot channel and converts the
// result into a message. Channel closure means the run is over.
func (a *App) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-a.engine.Snapshots()
		if !ok {
			return doneMsg{status: a.engine.Status()}
		}
		return snapshotMsg(snap)
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			// Signal the engine and keep consuming until it closes the
			// channel; teardown happens on doneMsg.
			a.engine.Cancel()
		case key.Matches(msg, a.keys.Pause):
			a.engine.TogglePause()
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		barWidth := msg.Width - 8
		if barWidth > maxBarWidth {
			barWidth = maxBarWidth
		}
		if barWidth > 0 {
			a.progress.Width = barWidth
		}

	case snapshotMsg:
		a.snapshot = countdown.Snapshot(msg)
		a.haveSnapshot = true
		return a, a.waitForSnapshot()

	case doneMsg:
		a.finalStatus = msg.status
		a.quitting = true
		return a, tea.Quit

	case ThemeMsg:
		a.applyTheme(config.ThemeConfig(msg))
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if !a.haveSnapshot {
		return "Starting...\n"
	}

	title := a.titleStyle.Render("Remaining time")

	timeText := duration.FormatCeil(a.snapshot.Remaining)
	var timeLine string
	if a.snapshot.Status == countdown.StatusPaused {
		timeLine = a.pausedStyle.Render(timeText + "  ⏸")
	} else {
		timeLine = a.timeStyle.Render(timeText)
	}

	bar := a.progress.ViewAs(a.elapsedFraction())

	status := a.statusStyle.Render(fmt.Sprintf("of %s", duration.Format(a.snapshot.Total)))

	content := strings.Join([]string{title, "", timeLine, "", bar, status, "", a.help.View(a.keys)}, "\n")

	if a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// elapsedFraction reports countdown progress in [0,1].
func (a *App) elapsedFraction() float64 {
	total := a.snapshot.Total
	if total <= 0 {
		return 1
	}
	frac := 1 - float64(a.snapshot.Remaining)/float64(total)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac
}

// FinalStatus returns the engine status observed at teardown.
func (a *App) FinalStatus() countdown.Status {
	return a.finalStatus
}

// LastSnapshot returns the most recent snapshot and whether one was seen.
func (a *App) LastSnapshot() (countdown.Snapshot, bool) {
	return a.snapshot, a.haveSnapshot
}

// applyTheme rebuilds styles and the progress gradient from a theme.
func (a *App) applyTheme(theme config.ThemeConfig) {
	a.theme = theme

	a.timeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ColorTime)).
		Bold(true)

	a.pausedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ColorPaused)).
		Bold(true)

	a.titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ColorTitle)).
		Italic(true)

	a.statusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.ColorHelp))

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp))
	a.help.Styles.ShortKey = helpStyle.Bold(true)
	a.help.Styles.ShortDesc = helpStyle
	a.help.Styles.ShortSeparator = helpStyle

	width := a.progress.Width
	a.progress = progress.New(
		progress.WithGradient(theme.GradientStart, theme.GradientEnd),
		progress.WithoutPercentage(),
	)
	if width > 0 {
		a.progress.Width = width
	}
}
