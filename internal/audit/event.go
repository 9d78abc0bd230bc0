// Package audit defines the diagnostic events produced by Checkstyle and the
// listener contract used to route them through the tool.
package audit

import (
	"fmt"
	"strings"
)

// Severity classifies how serious an audit event is.
type Severity int

const (
	SeverityIgnore Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// Severities lists the reportable severities in ascending order.
var Severities = []Severity{SeverityInfo, SeverityWarning, SeverityError}

// Name returns the lower-case Checkstyle name ("info", "warning", ...).
func (s Severity) Name() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "ignore"
	}
}

func (s Severity) String() string {
	return s.Name()
}

// ParseSeverity converts a Checkstyle severity name to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "ignore":
		return SeverityIgnore, nil
	default:
		return SeverityIgnore, fmt.Errorf("unknown severity: %q", s)
	}
}

// Event is a single diagnostic reported by Checkstyle.
type Event struct {
	// File is the path as reported by the engine (usually absolute).
	File     string
	Line     int
	Column   int // 0 when the engine reported no column
	Severity Severity
	Message  string

	// Source is the check class name or the configured module id.
	Source string
}

// RuleName is shorthand for RuleName(e.Source).
func (e Event) RuleName() string {
	return RuleName(e.Source)
}

// Category is shorthand for Category(e.Source).
func (e Event) Category() string {
	return Category(e.Source)
}
