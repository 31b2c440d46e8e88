package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	captureout "leadclip/internal/modules/capture/port/out"
)

// ExecClipboard reads the clipboard by shelling out to the platform
// tool: pbpaste on macOS, wl-paste or xclip on Linux.
type ExecClipboard struct {
	commands [][]string
}

func NewExecClipboard() captureout.Clipboard {
	switch runtime.GOOS {
	case "darwin":
		return &ExecClipboard{commands: [][]string{{"pbpaste"}}}
	default:
		return &ExecClipboard{commands: [][]string{
			{"wl-paste", "--no-newline"},
			{"xclip", "-selection", "clipboard", "-o"},
			{"xsel", "--clipboard", "--output"},
		}}
	}
}

func (c *ExecClipboard) Read(ctx context.Context) (string, error) {
	var lastErr error
	for _, argv := range c.commands {
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		out, err := cmd.Output()
		if err != nil {
			lastErr = err
			continue
		}
		return string(out), nil
	}
	return "", fmt.Errorf("read clipboard: %w", lastErr)
}
