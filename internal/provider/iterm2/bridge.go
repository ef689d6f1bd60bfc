package iterm2

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// commander abstracts script execution so tests can substitute canned output.
type commander interface {
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

// newOSAScript builds the osascript invocation used for every bridge call.
// Tests replace this hook to inject fixtures.
var newOSAScript = func(ctx context.Context, script string) commander {
	return realCommander{cmd: exec.CommandContext(ctx, "osascript", "-l", "JavaScript", "-e", script)}
}

var lookPath = exec.LookPath

// runScript executes a JXA script against the host and returns its trimmed
// stdout.
func runScript(ctx context.Context, script string) (string, error) {
	out, err := newOSAScript(ctx, script).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("osascript: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("osascript: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
