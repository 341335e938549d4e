package opener

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// SystemOpener opens files with the platform's default application
type SystemOpener struct{}

// New creates a new system opener
func New() *SystemOpener {
	return &SystemOpener{}
}

// Open opens the file with the system's default viewer
func (o *SystemOpener) Open(ctx context.Context, filepath string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", filepath)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", filepath)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", filepath)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath, err)
	}
	return nil
}
