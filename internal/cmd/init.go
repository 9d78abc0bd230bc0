package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-checkstyle/internal/config"
	"github.com/DevSymphony/sym-checkstyle/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .sym-checkstyle.yaml project file",
	Long: `Create a .sym-checkstyle.yaml file in the base directory.

This command asks for:
  1. The Checkstyle configuration (Sun, Google or a custom location)
  2. The lowest severity that fails the build
  3. Whether test sources are audited`,
	Run: runInit,
}

var (
	initForce bool
	initYes   bool
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing project file")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept the defaults without prompting")
}

func runInit(cmd *cobra.Command, args []string) {
	dir, err := filepath.Abs(baseDir)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Invalid base directory: %v", err))
		os.Exit(1)
	}

	path := filepath.Join(dir, config.FileNames[0])
	if existing := config.FindFile(dir); existing != "" && !initForce {
		ui.PrintWarn(fmt.Sprintf("%s already exists", filepath.Base(existing)))
		fmt.Println("Use --force flag to overwrite")
		os.Exit(1)
	}

	cfg := config.Default(dir)
	if !initYes {
		if err := promptProject(cfg); err != nil {
			fmt.Println("\nSetup cancelled")
			return
		}
	}

	if err := config.Save(cfg, path); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
	ui.PrintOK(fmt.Sprintf("Created %s", path))
	ui.PrintIndent("Run 'sym-checkstyle check' to audit the project")
}

func promptProject(cfg *config.Config) error {
	ui.PrintTitle("Checkstyle", "Configure the audit")

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	rulesets := []string{"sun_checks.xml", "google_checks.xml", "Custom location"}
	rulesetPrompt := promptui.Select{
		Label:     "Which Checkstyle configuration should be used",
		Items:     rulesets,
		Templates: templates,
	}
	index, choice, err := rulesetPrompt.Run()
	if err != nil {
		return err
	}
	if index == len(rulesets)-1 {
		locationPrompt := promptui.Prompt{
			Label:   "Configuration file or URL",
			Default: "config/checkstyle.xml",
			Validate: func(s string) error {
				if s == "" {
					return fmt.Errorf("location is required")
				}
				return nil
			},
		}
		choice, err = locationPrompt.Run()
		if err != nil {
			return err
		}
	}
	cfg.Checkstyle.ConfigLocation = choice

	severityPrompt := promptui.Select{
		Label:     "Which severity should fail the build",
		Items:     []string{"error", "warning", "info"},
		Templates: templates,
	}
	_, severity, err := severityPrompt.Run()
	if err != nil {
		return err
	}
	cfg.Check.ViolationSeverity = severity

	testsPrompt := promptui.Prompt{
		Label:     "Audit test sources too",
		IsConfirm: true,
	}
	// A declined confirm prompt returns ErrAbort.
	if _, err := testsPrompt.Run(); err == nil {
		cfg.Sources.IncludeTestSourceDirectory = true
	} else if !errors.Is(err, promptui.ErrAbort) {
		return err
	}
	return nil
}
