package results

import (
	"testing"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/ruleconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fire(collectors []*Collector, fn func(audit.Listener)) {
	for _, c := range collectors {
		fn(c)
	}
}

func feed(collectors []*Collector, file string, sev audit.Severity, n int) {
	fire(collectors, func(l audit.Listener) { l.FileStarted(file) })
	for i := 0; i < n; i++ {
		fire(collectors, func(l audit.Listener) {
			l.AddError(audit.Event{File: file, Severity: sev})
		})
	}
	fire(collectors, func(l audit.Listener) { l.FileFinished(file) })
}

func TestCollector_SeverityFilters(t *testing.T) {
	filters := []audit.Severity{audit.SeverityInfo, audit.SeverityWarning, audit.SeverityError, audit.SeverityIgnore}
	collectors := make([]*Collector, len(filters))
	for i, sev := range filters {
		collectors[i] = NewCollector("/source/path")
		collectors[i].SetSeverityFilter(sev)
	}

	fire(collectors, func(l audit.Listener) { l.AuditStarted() })
	feed(collectors, "/source/path/file1", audit.SeverityInfo, 1)
	feed(collectors, "/source/path/file2", audit.SeverityWarning, 2)
	feed(collectors, "/source/path/file3", audit.SeverityError, 3)
	feed(collectors, "/source/path/file4", audit.SeverityIgnore, 4)
	fire(collectors, func(l audit.Listener) { l.AuditFinished() })

	checks := []struct {
		file string
		want map[audit.Severity]int
	}{
		{"file1", map[audit.Severity]int{audit.SeverityInfo: 1}},
		{"file2", map[audit.Severity]int{audit.SeverityWarning: 2}},
		{"file3", map[audit.Severity]int{audit.SeverityError: 3}},
		{"file4", map[audit.Severity]int{}},
	}

	for i, c := range collectors {
		r := c.Results()
		assert.Equal(t, 4, r.FileCount())
		assert.Len(t, r.Files(), 4)

		check := checks[i]
		total := 0
		for _, sev := range append(audit.Severities, audit.SeverityIgnore) {
			assert.Equal(t, check.want[sev], r.FileSeverityCount(check.file, sev), "%s/%s", check.file, sev)
			total += check.want[sev]
		}
		assert.Len(t, r.FileViolations(check.file), total)
	}
}

func TestCollector_NoFilterKeepsAllButIgnore(t *testing.T) {
	c := NewCollector("/source/path")
	c.AuditStarted()
	c.FileStarted("/source/path/A.java")
	c.AddError(audit.Event{Severity: audit.SeverityInfo})
	c.AddError(audit.Event{Severity: audit.SeverityError})
	c.AddError(audit.Event{Severity: audit.SeverityIgnore})
	c.FileFinished("/source/path/A.java")

	_, ok := c.SeverityFilter()
	assert.False(t, ok)
	assert.Len(t, c.Results().FileViolations("A.java"), 2)
}

func TestCollector_FileKeys(t *testing.T) {
	c := NewCollector(`C:\project\src\main\java`, "/project/src/test/java/")
	c.AuditStarted()

	for _, f := range []string{
		`C:\project\src\main\java\org\A.java`,
		"/project/src/test/java/org/ATest.java",
		"/elsewhere/B.java",
	} {
		c.FileStarted(f)
		c.AddError(audit.Event{File: f, Severity: audit.SeverityWarning})
		c.FileFinished(f)
	}

	r := c.Results()
	assert.Equal(t, []string{"/elsewhere/B.java", "org/A.java", "org/ATest.java"}, r.SortedFiles())
}

func TestCollector_ContinuesExistingFile(t *testing.T) {
	c := NewCollector("/src")
	c.AuditStarted()
	for i := 0; i < 2; i++ {
		c.FileStarted("/src/A.java")
		c.AddError(audit.Event{Severity: audit.SeverityError})
		c.FileFinished("/src/A.java")
	}

	assert.Len(t, c.Results().FileViolations("A.java"), 2)
}

func TestCollector_AuditStartedResets(t *testing.T) {
	c := NewCollector("/src")
	c.AuditStarted()
	c.FileStarted("/src/A.java")
	c.FileFinished("/src/A.java")
	require.Equal(t, 1, c.Results().FileCount())

	c.AuditStarted()
	assert.Equal(t, 0, c.Results().FileCount())
}

func TestCollector_Configuration(t *testing.T) {
	m := &ruleconfig.Module{Name: "Checker"}
	c := NewCollector()
	c.SetConfiguration(m)
	c.AuditStarted()
	assert.Same(t, m, c.Results().Configuration())
}
