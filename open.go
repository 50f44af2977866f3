package fileaddr

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// OpenCommand returns the command that hands path to the default handler of
// the given operating system.
func OpenCommand(goos, path string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		return exec.Command("open", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// Open opens path with the operating system's default application.
func Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	out, err := OpenCommand(runtime.GOOS, path).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("failed to open file: %w: %s", err, msg)
		}
		return fmt.Errorf("failed to open file: %w", err)
	}
	return nil
}
