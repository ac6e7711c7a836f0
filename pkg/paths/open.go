package paths

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Opener shows a directory in the platform file browser.
type Opener struct {
	// Start launches the command without waiting for it.
	Start func(name string, args ...string) error
	GOOS  string
}

// NewOpener returns an opener for the running platform.
func NewOpener() *Opener {
	return &Opener{
		Start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
		GOOS: runtime.GOOS,
	}
}

// OpenDir creates dir if needed and opens it.
func (o *Opener) OpenDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	name, args := openCommand(o.GOOS, dir)
	if err := o.Start(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", dir, err)
	}
	return nil
}

func openCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
