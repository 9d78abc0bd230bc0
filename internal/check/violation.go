package check

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/linter/checkstyle"
)

// NoColumn marks a violation reported without a column.
const NoColumn = -1

// Violation is one entry of a Checkstyle XML result.
type Violation struct {
	Source   string
	File     string
	Line     int
	Column   int
	Severity audit.Severity
	Message  string
	RuleName string
	Category string
}

// String formats the violation the way it is logged:
// "file:[line,column] (category) Rule: message".
func (v Violation) String() string {
	column := ""
	if v.Column != NoColumn {
		column = fmt.Sprintf(",%d", v.Column)
	}
	return fmt.Sprintf("%s:[%d%s] (%s) %s: %s", v.File, v.Line, column, v.Category, v.RuleName, v.Message)
}

// ReadViolations parses a Checkstyle XML result. File names are made
// relative to baseDir when they lie below it.
func ReadViolations(r io.Reader, baseDir string) ([]Violation, error) {
	reader := &violationReader{baseDir: baseDir}
	if err := checkstyle.Decode(r, reader); err != nil {
		return nil, err
	}
	return reader.violations, nil
}

// violationReader is an audit.Listener collecting Violations.
type violationReader struct {
	baseDir    string
	file       string
	violations []Violation
}

func (v *violationReader) AuditStarted()              {}
func (v *violationReader) AuditFinished()             {}
func (v *violationReader) FileFinished(string)        {}
func (v *violationReader) AddException(string, error) {}

func (v *violationReader) FileStarted(file string) {
	v.file = relativePath(v.baseDir, file)
}

func (v *violationReader) AddError(e audit.Event) {
	column := e.Column
	if column == 0 {
		column = NoColumn
	}
	v.violations = append(v.violations, Violation{
		Source:   e.Source,
		File:     v.file,
		Line:     e.Line,
		Column:   column,
		Severity: e.Severity,
		Message:  e.Message,
		RuleName: e.RuleName(),
		Category: e.Category(),
	})
}

func relativePath(baseDir, file string) string {
	if baseDir != "" && filepath.IsAbs(file) {
		if rel, err := filepath.Rel(baseDir, file); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(file)
}

// IsViolation reports whether an event of severity counts against
// threshold: errors count for every threshold, warnings for "warning" and
// "info", infos only for "info".
func IsViolation(severity, threshold audit.Severity) bool {
	if severity == audit.SeverityIgnore || threshold == audit.SeverityIgnore {
		return false
	}
	return severity >= threshold
}
