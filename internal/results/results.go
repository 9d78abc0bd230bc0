// Package results holds the aggregated outcome of a Checkstyle audit.
package results

import (
	"sort"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/ruleconfig"
)

// Results maps each audited file to the events reported for it, together with
// the rule configuration the audit ran with.
type Results struct {
	files         map[string][]audit.Event
	configuration *ruleconfig.Module
}

// New creates empty results.
func New() *Results {
	return &Results{files: make(map[string][]audit.Event)}
}

// Files returns the underlying file map.
func (r *Results) Files() map[string][]audit.Event {
	return r.files
}

// SetFiles replaces the file map.
func (r *Results) SetFiles(files map[string][]audit.Event) {
	if files == nil {
		files = make(map[string][]audit.Event)
	}
	r.files = files
}

// FileCount returns the number of files seen, including files without events.
func (r *Results) FileCount() int {
	return len(r.files)
}

// FileViolations returns the events for file. The result is never nil.
func (r *Results) FileViolations(file string) []audit.Event {
	if events, ok := r.files[file]; ok && events != nil {
		return events
	}
	return []audit.Event{}
}

// SetFileViolations records the events for file.
func (r *Results) SetFileViolations(file string, events []audit.Event) {
	if events == nil {
		events = []audit.Event{}
	}
	r.files[file] = events
}

// SeverityCount counts events of the given severity across all files.
func (r *Results) SeverityCount(sev audit.Severity) int {
	count := 0
	for _, events := range r.files {
		count += CountSeverity(events, sev)
	}
	return count
}

// FileSeverityCount counts events of the given severity in one file.
func (r *Results) FileSeverityCount(file string, sev audit.Severity) int {
	return CountSeverity(r.files[file], sev)
}

// CountSeverity counts events of the given severity.
func CountSeverity(events []audit.Event, sev audit.Severity) int {
	count := 0
	for _, e := range events {
		if e.Severity == sev {
			count++
		}
	}
	return count
}

// SortedFiles returns the file keys in lexical order.
func (r *Results) SortedFiles() []string {
	files := make([]string, 0, len(r.files))
	for f := range r.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Configuration returns the rule tree, or nil when unknown.
func (r *Results) Configuration() *ruleconfig.Module {
	return r.configuration
}

// SetConfiguration sets the rule tree.
func (r *Results) SetConfiguration(m *ruleconfig.Module) {
	r.configuration = m
}
