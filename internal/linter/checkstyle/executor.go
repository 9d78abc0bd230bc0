package checkstyle

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/DevSymphony/sym-checkstyle/internal/linter"
)

// Invocation describes a single Checkstyle run.
type Invocation struct {
	// ConfigLocation is a configuration file path or a bundled resource such
	// as "/sun_checks.xml".
	ConfigLocation string

	// PropertiesFile is passed with -p when set.
	PropertiesFile string

	// OutputFile receives the XML result document.
	OutputFile string

	// Encoding sets the JVM file encoding when set.
	Encoding string

	// Files are the files to audit.
	Files []string
}

// Args builds the java command line for the invocation.
func (l *Linter) Args(inv Invocation) []string {
	var args []string
	if inv.Encoding != "" {
		args = append(args, "-Dfile.encoding="+inv.Encoding)
	}
	args = append(args,
		"-jar", l.JARPath(),
		"-c", inv.ConfigLocation,
		"-f", "xml",
		"-o", inv.OutputFile,
	)
	if inv.PropertiesFile != "" {
		args = append(args, "-p", inv.PropertiesFile)
	}
	return append(args, inv.Files...)
}

// Run executes Checkstyle for the invocation. The XML result is written to
// inv.OutputFile.
func (l *Linter) Run(ctx context.Context, inv Invocation) (*linter.ToolOutput, error) {
	if len(inv.Files) == 0 {
		return &linter.ToolOutput{Duration: "0s"}, nil
	}
	if l.JavaPath == "" {
		return nil, fmt.Errorf("java not found: please install Java or set JAVA_HOME")
	}

	start := time.Now()
	output, err := l.executor.Execute(ctx, l.JavaPath, l.Args(inv)...)
	if err != nil {
		return output, fmt.Errorf("checkstyle execution failed: %w", err)
	}
	output.Duration = time.Since(start).String()

	// Checkstyle exits with the number of errors found; that is expected as
	// long as the result document was produced.
	if output.ExitCode != 0 {
		if info, statErr := os.Stat(inv.OutputFile); statErr != nil || info.Size() == 0 {
			msg := strings.TrimSpace(output.Stderr)
			if msg == "" {
				msg = strings.TrimSpace(output.Stdout)
			}
			return output, fmt.Errorf("checkstyle exited with code %d: %s", output.ExitCode, msg)
		}
	}

	return output, nil
}
