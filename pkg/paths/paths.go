package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvDataDir = "INTERPRETER_DATA_DIR"

	appDirName = "open-interpreter"
)

// Well-known subdirectories of the data directory.
const (
	ProfilesDir      = "profiles"
	ModelsDir        = "models"
	ConversationsDir = "conversations"
	LogsDir          = "logs"
)

// DataDir returns the root storage directory. INTERPRETER_DATA_DIR wins,
// otherwise the platform user config directory is used.
func DataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvDataDir)); dir != "" {
		expanded, err := ExpandHome(dir)
		if err != nil {
			return "", err
		}
		return filepath.Clean(expanded), nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// Sub returns a subdirectory of the data directory without creating it.
func Sub(name string) (string, error) {
	base, err := DataDir()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		return base, nil
	}
	return filepath.Join(base, name), nil
}

// EnsureSub is Sub plus MkdirAll.
func EnsureSub(name string) (string, error) {
	dir, err := Sub(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}

// ExpandHome expands a leading "~" to the user's home directory.
func ExpandHome(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}

	return path, nil
}
