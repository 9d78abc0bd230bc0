package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DevSymphony/sym-checkstyle/internal/executor"
	"github.com/DevSymphony/sym-checkstyle/internal/linter"
	"github.com/DevSymphony/sym-checkstyle/internal/linter/checkstyle"
	"github.com/DevSymphony/sym-checkstyle/internal/logging"
	"github.com/DevSymphony/sym-checkstyle/internal/project"
	"github.com/DevSymphony/sym-checkstyle/internal/ui"
)

var (
	// verbose is a global flag for verbose output
	verbose bool

	configFile string
	baseDir    string
)

var rootCmd = &cobra.Command{
	Use:   "sym-checkstyle",
	Short: "sym-checkstyle - Checkstyle audits, reports and violation gates",
	Long: `sym-checkstyle runs Checkstyle over Java projects.

Features:
  - Audit sources, tests and resources with any Checkstyle configuration
  - XML, plain and SARIF result files
  - HTML reports, per project or aggregated over every module
  - Build gate failing on violation thresholds
  - MCP server exposing audits to LLM coding tools`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "project file (default: .sym-checkstyle.yaml in the base directory)")
	rootCmd.PersistentFlags().StringVarP(&baseDir, "basedir", "b", ".", "project base directory")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	// Note: mcpCmd is registered in mcp.go's init()
}

func newLogger() *zap.SugaredLogger {
	return logging.New(os.Stderr, verbose)
}

// loadProject loads the project in --basedir, applying the command's flags.
func loadProject(cmd *cobra.Command) (*project.Project, error) {
	dir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("invalid base directory %s: %w", baseDir, err)
	}
	return project.Load(dir, configFile, cmd.Flags())
}

// newEngine returns the Checkstyle engine configured for p, installing the
// jar when it is missing.
func newEngine(ctx context.Context, p *project.Project, log *zap.SugaredLogger) (*checkstyle.Linter, error) {
	cs := p.Config.Checkstyle
	l := checkstyle.New(cs.ToolsDir, cs.Version)
	if cs.Jar != "" {
		l.JarPath = p.Config.Resolve(cs.Jar)
	}
	if cs.Java != "" {
		l.JavaPath = cs.Java
	}
	l.SetTimeout(cs.Timeout)

	if _, err := os.Stat(l.JARPath()); os.IsNotExist(err) && cs.Jar == "" {
		log.Infof("Downloading Checkstyle %s to %s", l.Version, l.ToolsDir)
		if err := l.Install(ctx, linter.InstallConfig{}); err != nil {
			return nil, err
		}
	}
	if err := l.CheckAvailability(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// newExecutor wires the engine into an executor.
func newExecutor(ctx context.Context, p *project.Project, log *zap.SugaredLogger) (*executor.Executor, error) {
	engine, err := newEngine(ctx, p, log)
	if err != nil {
		return nil, err
	}
	exec := executor.New(engine, log)
	exec.ShowProgress = !verbose
	return exec, nil
}
