package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-checkstyle/internal/linter"
	"github.com/DevSymphony/sym-checkstyle/internal/linter/checkstyle"
)

var (
	installForce    bool
	installVersion  string
	installToolsDir string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Download the Checkstyle jar",
	Long: `Download the Checkstyle "all" jar from the GitHub releases into the tools
directory. Other commands download it on first use as well.`,
	Example: `  sym-checkstyle install
  sym-checkstyle install --checkstyle-version 10.12.0 --force`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "download even when the jar is present")
	installCmd.Flags().StringVar(&installVersion, "checkstyle-version", "", "Checkstyle release (default: from the project file)")
	installCmd.Flags().StringVar(&installToolsDir, "tools-dir", "", "directory holding the jar (default: ~/.sym/tools)")
}

func runInstall(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	version, toolsDir := installVersion, installToolsDir
	if p, err := loadProject(cmd); err == nil {
		if version == "" {
			version = p.Config.Checkstyle.Version
		}
		if toolsDir == "" {
			toolsDir = p.Config.Checkstyle.ToolsDir
		}
	} else {
		log.Debugf("No project configuration: %v", err)
	}

	l := checkstyle.New(toolsDir, version)
	log.Infof("Installing Checkstyle %s into %s", l.Version, l.ToolsDir)
	if err := l.Install(cmd.Context(), linter.InstallConfig{Force: installForce}); err != nil {
		return err
	}
	fmt.Printf("Checkstyle %s is available at %s\n", l.Version, l.JARPath())
	return nil
}
