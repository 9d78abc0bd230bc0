package linter

import (
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultToolsDir returns the standard tools directory (~/.sym/tools).
func DefaultToolsDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sym", "tools")
}

// EnsureDir creates directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FindTool locates a tool binary, checking local path first, then global PATH.
// Returns empty string if not found.
func FindTool(localPath, globalName string) string {
	if localPath != "" {
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}
	if path, err := exec.LookPath(globalName); err == nil {
		return path
	}
	return ""
}
