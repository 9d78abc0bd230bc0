package output

import (
	"fmt"
	"io"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
)

// PlainWriter writes the line oriented format of Checkstyle's default logger.
type PlainWriter struct {
	out errWriter
}

// Compile-time interface check
var _ Writer = (*PlainWriter)(nil)

// NewPlainWriter creates a plain text writer.
func NewPlainWriter(w io.Writer) *PlainWriter {
	return &PlainWriter{out: errWriter{w: w}}
}

// FormatEvent renders one event the way the default logger does, e.g.
// "[WARN] /src/A.java:3:5: Line is longer than 80 characters. [LineLength]".
func FormatEvent(event audit.Event) string {
	location := fmt.Sprintf("%s:%d", event.File, event.Line)
	if event.Column > 0 {
		location = fmt.Sprintf("%s:%d", location, event.Column)
	}
	return fmt.Sprintf("[%s] %s: %s [%s]", severityLabel(event.Severity), location, event.Message, event.RuleName())
}

func severityLabel(s audit.Severity) string {
	switch s {
	case audit.SeverityError:
		return "ERROR"
	case audit.SeverityWarning:
		return "WARN"
	case audit.SeverityInfo:
		return "INFO"
	default:
		return "IGNORE"
	}
}

func (p *PlainWriter) AuditStarted() {
	p.out.printf("Starting audit...\n")
}

func (p *PlainWriter) AuditFinished() {
	p.out.printf("Audit done.\n")
}

func (p *PlainWriter) FileStarted(string) {}

func (p *PlainWriter) FileFinished(string) {}

func (p *PlainWriter) AddError(event audit.Event) {
	if event.Severity == audit.SeverityIgnore {
		return
	}
	p.out.printf("%s\n", FormatEvent(event))
}

func (p *PlainWriter) AddException(file string, err error) {
	p.out.printf("Error auditing %s\n%v\n", file, err)
}

// Err returns the first write error.
func (p *PlainWriter) Err() error {
	return p.out.err
}
