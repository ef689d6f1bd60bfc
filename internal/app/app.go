// Package app wires the provider, controller, coalescer, and Bubble Tea
// program together and owns the process exit-code contract.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollowbyte/it2jump/internal/config"
	"github.com/hollowbyte/it2jump/internal/logging"
	"github.com/hollowbyte/it2jump/internal/logging/events"
	"github.com/hollowbyte/it2jump/internal/picker"
	"github.com/hollowbyte/it2jump/internal/provider"
	"github.com/hollowbyte/it2jump/internal/provider/iterm2"
	"github.com/hollowbyte/it2jump/internal/refresh"
	"github.com/hollowbyte/it2jump/internal/ui"
)

// ErrInterrupted reports that the program was stopped by a signal.
var ErrInterrupted = errors.New("interrupted")

// UsageError marks configuration problems. They share the exit code of a
// missing provider because neither is a runtime failure.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode maps a Run error onto the process exit status: 0 on success,
// 2 when the provider or configuration is unusable, 130 on interrupt, and
// 1 for everything else (including a failed initial snapshot).
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInterrupted):
		return 130
	case errors.Is(err, provider.ErrUnavailable), errors.As(err, &usage):
		return 2
	default:
		return 1
	}
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg *config.Config) error {
	logging.Configure(cfg.LogFile)
	logging.SetTraceEnabled(cfg.Trace)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prov, err := iterm2.Detect(ctx, iterm2.WithPollInterval(cfg.PollDuration))
	if err != nil {
		return err
	}
	defer prov.Close()

	snap, err := prov.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}

	controller := picker.New(prov, snap, cfg.StrictMatch)
	coalescer := refresh.NewCoalescer(ctx, prov, cfg.DebounceDuration)
	notifications, err := prov.Events(ctx)
	if err != nil {
		// Live updates are best-effort; the picker still works on the
		// startup snapshot.
		logging.Error(err)
		coalescer = nil
	} else {
		go coalescer.Listen(notifications)
	}

	model := ui.NewModel(ctx, controller, coalescer, cfg.Width, cfg.Height, cfg.Footer, cfg.Verbose)
	events.App.Start(map[string]interface{}{
		"width":   cfg.Width,
		"height":  cfg.Height,
		"footer":  cfg.Footer,
		"verbose": cfg.Verbose,
		"strict":  cfg.StrictMatch,
		"config":  cfg.ConfigFile,
		"tty":     collectTTYDetails(),
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if ctx.Err() != nil {
		events.App.Quit("signal")
		return ErrInterrupted
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
