package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/check"
	"github.com/DevSymphony/sym-checkstyle/internal/config"
	"github.com/DevSymphony/sym-checkstyle/internal/executor"
	"github.com/DevSymphony/sym-checkstyle/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail when Checkstyle reports too many violations",
	Long: `Run Checkstyle over the project and fail when the number of violations
exceeds the allowed maximum.

Violations are counted from the XML result. Only events at or above
--violation-severity count (error < warning < info widens the set), and rules
listed in check.violation_ignore are skipped.`,
	Example: `  sym-checkstyle check
  sym-checkstyle check --violation-severity warning --max-allowed-violations 10
  sym-checkstyle check --skip-exec --output-file target/checkstyle-result.xml`,
	RunE: runCheck,
}

func init() {
	addAuditFlags(checkCmd.Flags())
	checkCmd.Flags().Bool("fail-on-violation", true, "fail when violations exceed the maximum")
	checkCmd.Flags().Int("max-allowed-violations", 0, "number of violations tolerated")
	checkCmd.Flags().String("violation-severity", config.DefaultViolationSeverity, "lowest severity counted: error, warning or info")
	checkCmd.Flags().Bool("skip-exec", false, "count an existing XML result instead of running Checkstyle")
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	var exec *executor.Executor
	if !p.Config.Skip && !p.Config.Check.SkipExec {
		exec, err = newExecutor(cmd.Context(), p, log)
		if err != nil {
			return err
		}
	}

	summary, err := check.New(exec, log).Check(cmd.Context(), p)
	if err != nil {
		return err
	}
	if summary == nil {
		return nil
	}

	counts := map[audit.Severity]int{}
	for _, v := range summary.Violations {
		counts[v.Severity]++
	}
	totals := ui.SeverityCounts(counts[audit.SeverityError], counts[audit.SeverityWarning], counts[audit.SeverityInfo])
	if summary.Exceeded() {
		ui.PrintWarn(fmt.Sprintf("Checkstyle found %d violations, %d allowed: %s", summary.Counted, summary.Allowed, totals))
		return nil
	}
	ui.PrintOK(fmt.Sprintf("Checkstyle check passed: %s", totals))
	return nil
}
