package checkstyle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/DevSymphony/sym-checkstyle/internal/linter"
)

// Compile-time interface check
var _ linter.Linter = (*Linter)(nil)

const (
	// DefaultVersion is the default Checkstyle version.
	DefaultVersion = "10.26.1"

	// GitHubReleaseURL is the GitHub Releases base URL for Checkstyle.
	GitHubReleaseURL = "https://github.com/checkstyle/checkstyle/releases/download"
)

// Linter wraps the Checkstyle command line for Java validation.
//
// Note: Linter is goroutine-safe and stateless; every Run starts a new JVM.
type Linter struct {
	// ToolsDir is where Checkstyle JAR is stored.
	// Default: ~/.sym/tools
	ToolsDir string

	// Version is the Checkstyle release to use.
	Version string

	// JarPath overrides the JAR location derived from ToolsDir and Version.
	JarPath string

	// JavaPath is the path to java executable.
	// Empty = use system java
	JavaPath string

	// ReleaseURL is the base URL releases are downloaded from.
	ReleaseURL string

	// executor runs subprocess
	executor *linter.SubprocessExecutor
}

// New creates a new Checkstyle linter.
func New(toolsDir, version string) *Linter {
	if toolsDir == "" {
		toolsDir = linter.DefaultToolsDir()
	}
	if version == "" {
		version = DefaultVersion
	}

	return &Linter{
		ToolsDir:   toolsDir,
		Version:    version,
		JavaPath:   linter.FindTool(javaHomeBinary(), "java"),
		ReleaseURL: GitHubReleaseURL,
		executor:   linter.NewSubprocessExecutor(),
	}
}

func javaHomeBinary() string {
	home := os.Getenv("JAVA_HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, "bin", "java")
}

// Name returns the linter name.
func (l *Linter) Name() string {
	return "checkstyle"
}

// CheckAvailability checks if Java and Checkstyle JAR are available.
func (l *Linter) CheckAvailability(ctx context.Context) error {
	if l.JavaPath == "" {
		return fmt.Errorf("java not found: please install Java or set JAVA_HOME")
	}

	cmd := exec.CommandContext(ctx, l.JavaPath, "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("java execution failed: %w", err)
	}

	jarPath := l.JARPath()
	if _, err := os.Stat(jarPath); os.IsNotExist(err) {
		return fmt.Errorf("checkstyle JAR not found at %s: run 'sym-checkstyle install' first", jarPath)
	}

	return nil
}

// Install downloads the Checkstyle JAR from GitHub Releases.
func (l *Linter) Install(ctx context.Context, config linter.InstallConfig) error {
	if config.ToolsDir != "" {
		l.ToolsDir = config.ToolsDir
	}
	if config.Version != "" {
		l.Version = config.Version
	}

	if err := linter.EnsureDir(l.ToolsDir); err != nil {
		return fmt.Errorf("failed to create tools dir: %w", err)
	}

	jarName := fmt.Sprintf("checkstyle-%s-all.jar", l.Version)
	url := fmt.Sprintf("%s/checkstyle-%s/%s", l.ReleaseURL, l.Version, jarName)
	jarPath := filepath.Join(l.ToolsDir, jarName)

	if !config.Force {
		if _, err := os.Stat(jarPath); err == nil {
			return nil // Already installed
		}
	}

	if err := downloadFile(ctx, url, jarPath); err != nil {
		return fmt.Errorf("failed to download checkstyle: %w", err)
	}

	return nil
}

// JARPath returns the path to the Checkstyle JAR.
func (l *Linter) JARPath() string {
	if l.JarPath != "" {
		return l.JarPath
	}
	return filepath.Join(l.ToolsDir, fmt.Sprintf("checkstyle-%s-all.jar", l.Version))
}

// SetTimeout bounds every engine run. Zero disables the limit.
func (l *Linter) SetTimeout(d time.Duration) {
	l.executor.Timeout = d
}

// downloadFile downloads a file from URL to destPath.
func downloadFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	tempFile := destPath + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(tempFile)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tempFile)
		return err
	}

	if err := os.Rename(tempFile, destPath); err != nil {
		_ = os.Remove(tempFile)
		return err
	}

	return nil
}
