package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-checkstyle/internal/report"
	"github.com/DevSymphony/sym-checkstyle/internal/ui"
)

var reportOpen bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the Checkstyle HTML report",
	Long: `Run Checkstyle over the project and render the results as an HTML page
with a severity summary, a per-file summary, a per-rule summary and the
details of every violation.`,
	Example: `  sym-checkstyle report
  sym-checkstyle report --locale de --open`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, false)
	},
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Generate one HTML report for every module of the project",
	Long: `Run Checkstyle over the project and all of its modules and render a single
aggregated HTML report. The project must declare at least one module.`,
	Example: `  sym-checkstyle aggregate --open`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, true)
	},
}

func init() {
	for _, c := range []*cobra.Command{reportCmd, aggregateCmd} {
		addAuditFlags(c.Flags())
		c.Flags().String("locale", "en", "report language")
		c.Flags().String("report-dir", "", "report output directory (default: <build dir>/site)")
		c.Flags().BoolVar(&reportOpen, "open", false, "open the report in the browser")
	}
}

func runReport(cmd *cobra.Command, aggregate bool) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	exec, err := newExecutor(cmd.Context(), p, log)
	if err != nil {
		return err
	}

	path, err := report.NewGenerator(exec, log).Generate(cmd.Context(), report.Options{
		Project:   p,
		Aggregate: aggregate,
		Open:      reportOpen,
	})
	if err != nil {
		return err
	}
	if path != "" {
		ui.PrintDone(fmt.Sprintf("Report written to %s", path))
	}
	return nil
}
