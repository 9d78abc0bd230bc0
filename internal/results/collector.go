package results

import (
	"strings"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/ruleconfig"
)

// Collector is an audit.Listener that builds Results. Files are keyed by
// their path relative to the first source directory containing them.
type Collector struct {
	sourceDirs     []string
	severityFilter *audit.Severity
	configuration  *ruleconfig.Module

	results     *Results
	currentFile string
	events      []audit.Event
}

// Compile-time interface check
var _ audit.Listener = (*Collector)(nil)

// NewCollector creates a collector for the given source directories.
func NewCollector(sourceDirs ...string) *Collector {
	c := &Collector{results: New()}
	for _, d := range sourceDirs {
		c.AddSourceDir(d)
	}
	return c
}

// AddSourceDir registers another source directory.
func (c *Collector) AddSourceDir(dir string) {
	c.sourceDirs = append(c.sourceDirs, strings.TrimSuffix(toSlash(dir), "/"))
}

// SetSeverityFilter keeps only events of exactly sev.
func (c *Collector) SetSeverityFilter(sev audit.Severity) {
	c.severityFilter = &sev
}

// SeverityFilter returns the filter and whether one is set.
func (c *Collector) SeverityFilter() (audit.Severity, bool) {
	if c.severityFilter == nil {
		return audit.SeverityIgnore, false
	}
	return *c.severityFilter, true
}

// SetConfiguration sets the rule tree attached to the results.
func (c *Collector) SetConfiguration(m *ruleconfig.Module) {
	c.configuration = m
}

// Results returns the collected results.
func (c *Collector) Results() *Results {
	c.results.SetConfiguration(c.configuration)
	return c.results
}

func (c *Collector) AuditStarted() {
	c.results = New()
}

func (c *Collector) AuditFinished() {}

func (c *Collector) FileStarted(file string) {
	name := toSlash(file)
	c.currentFile = name
	for _, dir := range c.sourceDirs {
		if strings.HasPrefix(name, dir+"/") {
			c.currentFile = name[len(dir)+1:]
			break
		}
	}
	c.events = append([]audit.Event(nil), c.results.files[c.currentFile]...)
}

func (c *Collector) FileFinished(string) {
	c.results.SetFileViolations(c.currentFile, c.events)
	c.currentFile = ""
	c.events = nil
}

func (c *Collector) AddError(event audit.Event) {
	if event.Severity == audit.SeverityIgnore {
		return
	}
	if c.severityFilter == nil || *c.severityFilter == event.Severity {
		c.events = append(c.events, event)
	}
}

func (c *Collector) AddException(string, error) {}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
