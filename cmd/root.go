// Package cmd defines the it2jump command-line surface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollowbyte/it2jump/internal/app"
	"github.com/hollowbyte/it2jump/internal/config"
	"github.com/hollowbyte/it2jump/internal/logging"
)

var (
	flagWidth        int
	flagHeight       int
	flagFooter       bool
	flagVerbose      bool
	flagStrict       bool
	flagTrace        bool
	flagLogFile      string
	flagDebounce     string
	flagPollInterval string
)

var rootCmd = &cobra.Command{
	Use:   "it2jump",
	Short: "Interactive iTerm2 session picker",
	Long: `it2jump lists every iTerm2 session across all windows and tabs,
filters them as you type, and jumps to the selected one.

The list updates live while the picker is open. ctrl+h/j/k/l move focus
between panes in the current tab without leaving the picker.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return &app.UsageError{Err: err}
		}
		applyFlags(cmd, cfg)
		if err := cfg.Finalize(); err != nil {
			return &app.UsageError{Err: err}
		}
		return app.Run(cfg)
	},
}

// applyFlags copies explicitly-set flag values onto the loaded configuration.
// Flags outrank both the config file and IT2JUMP_* environment variables.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("width") {
		cfg.Width = flagWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = flagHeight
	}
	if cmd.Flags().Changed("footer") {
		cfg.Footer = flagFooter
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
	if cmd.Flags().Changed("strict-match") {
		cfg.StrictMatch = flagStrict
	}
	if cmd.Flags().Changed("trace") {
		cfg.Trace = flagTrace
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if cmd.Flags().Changed("debounce") {
		cfg.Debounce = flagDebounce
	}
	if cmd.Flags().Changed("poll-interval") {
		cfg.PollInterval = flagPollInterval
	}
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return app.ExitCode(err)
}

func init() {
	rootCmd.Flags().IntVar(&flagWidth, "width", 0, "viewport width in cells (0 uses terminal width)")
	rootCmd.Flags().IntVar(&flagHeight, "height", 0, "viewport height in rows (0 uses terminal height)")
	rootCmd.Flags().BoolVar(&flagFooter, "footer", false, "show key-binding hint row")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "show success messages for activations")
	rootCmd.Flags().BoolVar(&flagStrict, "strict-match", false, "substring-only filtering, no fuzzy tier")
	rootCmd.Flags().BoolVar(&flagTrace, "trace", false, "enable verbose JSON trace logging")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "path to the log file")
	rootCmd.Flags().StringVar(&flagDebounce, "debounce", "", "quiet window for coalescing live updates (e.g. 200ms)")
	rootCmd.Flags().StringVar(&flagPollInterval, "poll-interval", "", "how often the event source re-inspects iTerm2 (e.g. 1.5s)")
	rootCmd.AddCommand(versionCmd)
}
