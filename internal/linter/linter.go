package linter

import (
	"context"
)

// Linter wraps an external analysis tool (Checkstyle) that runs as a
// subprocess.
//
// Design:
// - Linters handle tool installation and availability checks
// - Invocation details are tool specific and live in the tool's package
type Linter interface {
	// Name returns the linter name (e.g., "checkstyle").
	Name() string

	// CheckAvailability checks if the tool is installed and usable.
	// Returns nil if available, error with details if not.
	CheckAvailability(ctx context.Context) error

	// Install installs the tool if not available.
	// Returns error if installation fails.
	Install(ctx context.Context, config InstallConfig) error
}

// InstallConfig holds tool installation settings.
type InstallConfig struct {
	// ToolsDir is where to install the tool.
	// Default: ~/.sym/tools
	ToolsDir string

	// Version is the tool version to install.
	// Empty = default version
	Version string

	// Force reinstalls even if already installed.
	Force bool
}

// ToolOutput is the raw output from a tool execution.
type ToolOutput struct {
	// Stdout is the standard output.
	Stdout string

	// Stderr is the error output.
	Stderr string

	// ExitCode is the process exit code.
	ExitCode int

	// Duration is how long the tool took to run.
	Duration string
}
