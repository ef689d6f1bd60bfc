package cmd

import (
	"testing"

	"github.com/hollowbyte/it2jump/internal/config"
)

func TestApplyFlagsOnlyCopiesChangedValues(t *testing.T) {
	cmd := rootCmd
	if err := cmd.Flags().Set("width", "42"); err != nil {
		t.Fatalf("set width: %v", err)
	}
	if err := cmd.Flags().Set("strict-match", "true"); err != nil {
		t.Fatalf("set strict-match: %v", err)
	}
	flagWidth = 42
	flagStrict = true

	cfg := config.Defaults()
	cfg.Height = 24
	applyFlags(cmd, cfg)

	if cfg.Width != 42 {
		t.Fatalf("expected width 42, got %d", cfg.Width)
	}
	if !cfg.StrictMatch {
		t.Fatalf("expected strict match enabled")
	}
	if cfg.Height != 24 {
		t.Fatalf("expected untouched height, got %d", cfg.Height)
	}
	if cfg.Debounce != "200ms" {
		t.Fatalf("expected untouched debounce, got %q", cfg.Debounce)
	}
}
