package report

import (
	"slices"
	"sort"
	"strings"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/results"
	"github.com/DevSymphony/sym-checkstyle/internal/ruleconfig"
)

// RuleSummary is the violation count of one configured rule.
type RuleSummary struct {
	Category   string
	Module     *ruleconfig.Module
	Violations int

	// parents lists the enclosing modules, nearest first.
	parents []*ruleconfig.Module
	order   int
}

// Rule returns the configured rule name.
func (s RuleSummary) Rule() string {
	return s.Module.Name
}

// Severity returns the configured severity of the rule, looked up through the
// enclosing modules. It defaults to "error".
func (s RuleSummary) Severity() string {
	if v, ok := s.Module.Attribute("severity"); ok {
		return v
	}
	for _, p := range s.parents {
		if v, ok := p.Attribute("severity"); ok {
			return v
		}
	}
	return audit.SeverityError.Name()
}

// MatchRule reports whether event was raised by the configured rule m. When
// m sets a message or a severity, the event has to carry the same.
func MatchRule(event audit.Event, m *ruleconfig.Module) bool {
	if m.Name != event.RuleName() {
		return false
	}
	if msg, ok := m.Attribute("message"); ok {
		// Checkstyle formats messages with MessageFormat, which drops single quotes.
		if msg != event.Message && strings.ReplaceAll(msg, "'", "") != event.Message {
			return false
		}
	}
	if sev, ok := m.Attribute("severity"); ok && sev != event.Severity.Name() {
		return false
	}
	return true
}

// IsChecker reports whether root is a Checker module.
func IsChecker(root *ruleconfig.Module) bool {
	return root != nil && strings.EqualFold(root.Name, "checker")
}

// SummarizeRules counts the violations of every rule configured below
// res's configuration. Modules named in treeWalkers are descended into
// rather than counted. Rules without violations are left out. The result is
// sorted by category, then rule name, then latest configured first.
func SummarizeRules(res *results.Results, treeWalkers []string) []RuleSummary {
	root := res.Configuration()
	if root == nil {
		return nil
	}

	files := res.SortedFiles()
	var out []RuleSummary

	// Rules directly below the root inherit nothing. Rules below a tree walker
	// inherit from the walker's enclosing modules, not from the walker.
	var walk func(m *ruleconfig.Module, parents []*ruleconfig.Module)
	walk = func(m *ruleconfig.Module, parents []*ruleconfig.Module) {
		for _, child := range m.Children {
			if slices.Contains(treeWalkers, child.Name) {
				walk(child, append([]*ruleconfig.Module{m}, parents...))
				continue
			}

			count := 0
			var last audit.Event
			for _, f := range files {
				for _, e := range res.FileViolations(f) {
					if MatchRule(e, child) {
						last = e
						count++
					}
				}
			}
			if count == 0 {
				continue
			}
			out = append(out, RuleSummary{
				Category:   last.Category(),
				Module:     child,
				Violations: count,
				parents:    parents,
				order:      len(out),
			})
		}
	}
	walk(root, nil)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Module.Name != b.Module.Name {
			return a.Module.Name < b.Module.Name
		}
		return a.order > b.order
	})
	return out
}
