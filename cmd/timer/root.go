package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/countdown-sh/timer/internal/tui"
	"github.com/countdown-sh/timer/pkg/duration"
)

// Exit codes. 0 covers both normal completion and a user-requested stop;
// the failure codes distinguish bad input from terminal trouble.
const (
	exitOK       = 0
	exitBadInput = 2
	exitTerminal = 3
)

var rootCmd = &cobra.Command{
	Use:   "timer <duration>",
	Short: "Count down in the terminal",
	Long: `Count down a duration in the terminal, updating once per tick.

The duration is up to four colon-separated fields read right-to-left as
seconds, minutes, hours, days: "90" is ninety seconds, "2:30" is two
minutes thirty, "1:00:00" is an hour, "1:2:3:4" is a day, two hours,
three minutes, and four seconds.

While the timer runs, press p (or space) to pause and resume, and q,
Esc, or Ctrl+C to stop early.

Exit codes:
  0  countdown completed, or stopped by the user
  2  the duration did not parse
  3  the terminal could not be driven

Examples:
  timer 25:00       # 25 minutes
  timer 90          # 90 seconds
  timer 1:30:00     # an hour and a half`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimer(args[0])
	},
}

// Execute runs the root command and maps error kinds to exit codes.
func Execute() {
	rootCmd.Version = Version()
	rootCmd.SetVersionTemplate("timer version {{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "Print the version number")

	err := rootCmd.Execute()
	if err == nil {
		os.Exit(exitOK)
	}

	fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
	os.Exit(exitCodeFor(err))
}

// exitCodeFor maps an error to the documented exit code. Anything that is
// not a terminal failure is treated as bad input, which also covers cobra
// usage errors.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var termErr *tui.TerminalError
	if errors.As(err, &termErr) {
		return exitTerminal
	}
	var parseErr *duration.ParseError
	if errors.As(err, &parseErr) {
		return exitBadInput
	}
	return exitBadInput
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}
