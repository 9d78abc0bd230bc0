// Package report renders Checkstyle results as an HTML page.
package report

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/config"
	"github.com/DevSymphony/sym-checkstyle/internal/results"
)

// EngineURL is linked from the report introduction.
const EngineURL = "https://checkstyle.org/"

// Renderer renders results as an HTML report.
type Renderer struct {
	Messages Messages
	Lang     language.Tag

	// BaseDir is the project base directory, used to shorten header paths.
	BaseDir       string
	EngineVersion string
	Ruleset       string

	EnableRulesSummary    bool
	EnableSeveritySummary bool
	EnableFilesSummary    bool

	// XRefLocation and XRefTestLocation are paths to the source cross
	// reference, relative to the report. Empty disables line links.
	XRefLocation     string
	XRefTestLocation string
	TestSourceDirs   []string

	TreeWalkerNames []string
}

// NewRenderer creates a renderer for locale with every section enabled.
func NewRenderer(locale string) *Renderer {
	messages, tag := Catalog(locale)
	return &Renderer{
		Messages:              messages,
		Lang:                  tag,
		EnableRulesSummary:    true,
		EnableSeveritySummary: true,
		EnableFilesSummary:    true,
		TreeWalkerNames:       []string{config.DefaultTreeWalker},
	}
}

// Title returns the report title.
func (r *Renderer) Title() string {
	return r.Messages.Get("title")
}

type page struct {
	Lang  string
	Title string
	M     Messages

	EngineURL     string
	EngineVersion string
	Ruleset       string

	ShowSeverity bool
	Severity     severityRow

	ShowFiles bool
	Files     []fileRow

	ShowRules bool
	IsChecker bool
	Rules     []ruleRow

	Details []fileDetail
}

type severityRow struct {
	Files, Info, Warning, Error int
}

type fileRow struct {
	Name, Anchor         string
	Info, Warning, Error int
}

type ruleRow struct {
	// Category is empty when it repeats the previous row's.
	Category   string
	Rule       string
	Link       string
	Attributes []attributeRow
	Violations int
	Severity   string
}

type attributeRow struct {
	Name  string
	Value string
	// Lines is set for multi-line headers instead of Value.
	Lines []string
}

type fileDetail struct {
	Name, Anchor string
	Events       []eventRow
}

type eventRow struct {
	Severity string
	Category string
	Rule     string
	Message  string
	Line     int
	LineLink string
}

// Render writes the report for res to w.
func (r *Renderer) Render(w io.Writer, res *results.Results) error {
	p := page{
		Lang:          r.Lang.String(),
		Title:         r.Title(),
		M:             r.Messages,
		EngineURL:     EngineURL,
		EngineVersion: r.EngineVersion,
		Ruleset:       r.Ruleset,
		ShowSeverity:  r.EnableSeveritySummary,
		ShowFiles:     r.EnableFilesSummary,
		ShowRules:     r.EnableRulesSummary && res.Configuration() != nil,
		IsChecker:     IsChecker(res.Configuration()),
	}

	p.Severity = severityRow{
		Files:   res.FileCount(),
		Info:    res.SeverityCount(audit.SeverityInfo),
		Warning: res.SeverityCount(audit.SeverityWarning),
		Error:   res.SeverityCount(audit.SeverityError),
	}

	for _, name := range res.SortedFiles() {
		events := res.FileViolations(name)
		if len(events) == 0 {
			continue
		}
		p.Files = append(p.Files, fileRow{
			Name:    name,
			Anchor:  AnchorID(name),
			Info:    results.CountSeverity(events, audit.SeverityInfo),
			Warning: results.CountSeverity(events, audit.SeverityWarning),
			Error:   results.CountSeverity(events, audit.SeverityError),
		})
		p.Details = append(p.Details, r.fileDetail(name, events))
	}

	if p.ShowRules && p.IsChecker {
		previous := ""
		for _, s := range SummarizeRules(res, r.TreeWalkerNames) {
			row := r.ruleRow(s)
			if s.Category == previous {
				row.Category = ""
			}
			previous = s.Category
			p.Rules = append(p.Rules, row)
		}
	}

	tmpl, err := template.New("checkstyle").Funcs(template.FuncMap{
		"label": func(m Messages, severity, suffix string) string {
			return m.Get(severity + suffix)
		},
		"add": func(a, b int) int {
			return a + b
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	return tmpl.Execute(w, p)
}

func (r *Renderer) ruleRow(s RuleSummary) ruleRow {
	row := ruleRow{
		Category:   s.Category,
		Rule:       s.Rule(),
		Violations: s.Violations,
		Severity:   s.Severity(),
	}
	if s.Category != "extension" {
		row.Link = fmt.Sprintf("https://checkstyle.org/config_%s.html#%s", s.Category, s.Rule())
	}

	for _, name := range s.Module.AttributeNames() {
		if name == "severity" {
			continue
		}
		value, _ := s.Module.Attribute(name)
		attr := attributeRow{Name: name, Value: value}
		switch {
		case name == "header" && (row.Rule == "Header" || row.Rule == "RegexpHeader"):
			attr.Lines = HeaderLines(value)
		case name == "headerFile" && row.Rule == "RegexpHeader":
			attr.Value = r.relative(value)
		}
		row.Attributes = append(row.Attributes, attr)
	}
	return row
}

func (r *Renderer) fileDetail(name string, events []audit.Event) fileDetail {
	d := fileDetail{Name: name, Anchor: AnchorID(name)}

	xref := r.XRefLocation
	if r.isTestSource(events[0].File) {
		xref = r.XRefTestLocation
	}

	for _, e := range events {
		row := eventRow{
			Severity: e.Severity.Name(),
			Category: e.Category(),
			Rule:     e.RuleName(),
			Message:  e.Message,
			Line:     e.Line,
		}
		if xref != "" && e.Line != 0 {
			row.LineLink = fmt.Sprintf("%s/%s#L%d", xref, xrefPage(name), e.Line)
		}
		d.Events = append(d.Events, row)
	}
	return d
}

// xrefPage maps a source file to its cross reference page.
func xrefPage(name string) string {
	if base, ok := strings.CutSuffix(name, ".java"); ok {
		return base + ".html"
	}
	return name
}

func (r *Renderer) isTestSource(file string) bool {
	file = filepath.ToSlash(file)
	for _, dir := range r.TestSourceDirs {
		if strings.HasPrefix(file, filepath.ToSlash(dir)) {
			return true
		}
	}
	return false
}

// relative returns path relative to the base directory when it lies below it.
func (r *Renderer) relative(path string) string {
	if r.BaseDir != "" && filepath.IsAbs(path) {
		if rel, err := filepath.Rel(r.BaseDir, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// HeaderLines splits a Header check's header value into lines. Both the
// escaped "\n" sequence and real line breaks separate lines; empty lines are
// dropped.
func HeaderLines(value string) []string {
	var lines []string
	for _, part := range strings.Split(value, `\n`) {
		for _, line := range strings.Split(part, "\n") {
			line = strings.TrimSuffix(line, "\r")
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// AnchorID turns s into a valid HTML id: it starts with a letter, spaces
// become underscores, and characters other than letters, digits and "-_.:"
// are replaced by the hex value of their UTF-8 bytes.
func AnchorID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	if r, _ := utf8.DecodeRuneInString(s); !isASCIILetter(r) {
		b.WriteByte('a')
	}
	for _, r := range s {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case isASCIILetter(r), r >= '0' && r <= '9', r == '-', r == '_', r == '.', r == ':':
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "%x", string(r))
		}
	}
	return b.String()
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
