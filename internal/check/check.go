// Package check fails a build when Checkstyle reports more violations than
// allowed.
package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/config"
	"github.com/DevSymphony/sym-checkstyle/internal/executor"
	"github.com/DevSymphony/sym-checkstyle/internal/logging"
	"github.com/DevSymphony/sym-checkstyle/internal/output"
	"github.com/DevSymphony/sym-checkstyle/internal/project"
)

// CheckResultFile holds the XML result counted when the configured output
// format is not XML.
const CheckResultFile = "checkstyle-check-result.xml"

// Summary describes a finished check.
type Summary struct {
	Violations []Violation

	// Counted is the number of violations counted against the threshold.
	Counted int
	Ignored int
	Allowed int
}

// Exceeded reports whether more violations were counted than allowed.
func (s *Summary) Exceeded() bool {
	return s.Counted > s.Allowed
}

// Checker runs Checkstyle and compares the result with the configured
// thresholds.
type Checker struct {
	exec *executor.Executor
	log  *zap.SugaredLogger
}

// New creates a checker.
func New(exec *executor.Executor, log *zap.SugaredLogger) *Checker {
	if log == nil {
		log = logging.Nop()
	}
	return &Checker{exec: exec, log: log}
}

// Check audits p and returns a *ViolationError when the number of violations
// exceeds the allowed maximum and the build is set to fail. A nil summary
// with a nil error means there was nothing to check.
func (c *Checker) Check(ctx context.Context, p *project.Project) (*Summary, error) {
	cfg := p.Config
	if err := cfg.CheckDeprecated(); err != nil {
		return nil, err
	}
	if cfg.Skip {
		return nil, nil
	}

	format := cfg.Output.Format
	if format == "" {
		format = output.FormatXML
	}
	xmlFile := cfg.OutputFilePath()

	if cfg.Check.SkipExec {
		if format != output.FormatXML {
			return nil, fmt.Errorf("Output format is '%s', check requires format to be 'xml' when using skip_exec.", format)
		}
	} else {
		req := executor.NewRequest(p)
		req.Reactor = p.Reactor()
		if format != output.FormatXML {
			xmlFile = filepath.Join(cfg.BuildDir(), CheckResultFile)
			req.XMLFile = xmlFile
		}
		if _, err := c.exec.Execute(ctx, req); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(xmlFile)
	if os.IsNotExist(err) {
		c.log.Info("Unable to perform check, unable to find the Checkstyle output file.")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Unable to read Checkstyle results xml: %s: %w", xmlFile, err)
	}
	violations, err := ReadViolations(f, cfg.BaseDir)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("Unable to read Checkstyle results xml: %s: %w", xmlFile, err)
	}

	return c.evaluate(cfg, violations)
}

// evaluate counts, logs and judges violations.
func (c *Checker) evaluate(cfg *config.Config, violations []Violation) (*Summary, error) {
	threshold, err := audit.ParseSeverity(cfg.Check.ViolationSeverity)
	if err != nil {
		return nil, err
	}
	ignores := audit.ParseMatchers(strings.Split(cfg.Check.ViolationIgnore, ","))

	s := &Summary{Violations: violations}
	var counted []Violation
	for _, v := range violations {
		if !IsViolation(v.Severity, threshold) {
			continue
		}
		if audit.MatchAny(ignores, v.Source) {
			s.Ignored++
			continue
		}
		counted = append(counted, v)
	}
	s.Counted = len(counted)

	if s.Ignored > 0 {
		c.log.Infof("Ignored %d error%s, %d violation%s remaining.",
			s.Ignored, plural(s.Ignored > 1), s.Counted, plural(s.Counted > 1))
	}
	if cfg.Check.LogViolations {
		for _, v := range counted {
			c.logViolation(v)
		}
	}

	allowed := cfg.Check.MaxAllowedViolations
	s.Allowed = allowed
	if s.Exceeded() {
		if cfg.Check.FailOnViolation {
			return s, &ViolationError{Count: s.Counted, Max: allowed}
		}
		c.log.Warn("Violations detected but fail_on_violation is set to false")
	}
	if cfg.Check.LogViolationCount {
		c.log.Info(violationMessage(s.Counted, allowed))
	}
	return s, nil
}

func (c *Checker) logViolation(v Violation) {
	switch v.Severity {
	case audit.SeverityInfo:
		c.log.Info(v.String())
	case audit.SeverityWarning:
		c.log.Warn(v.String())
	default:
		c.log.Error(v.String())
	}
}
