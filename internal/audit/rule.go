package audit

import (
	"strings"
	"unicode"
)

// ChecksPackage is the Java package holding Checkstyle's bundled checks.
const ChecksPackage = "com.puppycrawl.tools.checkstyle.checks"

// RuleName extracts the rule name from an event source.
// Example: "com.puppycrawl.tools.checkstyle.checks.naming.TypeNameCheck" -> "TypeName"
func RuleName(source string) string {
	if source == "" {
		return ""
	}
	source = strings.TrimSuffix(source, "Check")
	return source[strings.LastIndex(source, ".")+1:]
}

// Category extracts the rule category from an event source: the last package
// segment for bundled checks, "misc" for checks directly in ChecksPackage and
// "extension" for everything else.
func Category(source string) string {
	if source == "" {
		return ""
	}
	pkg := source
	if end := strings.LastIndex(source, "."); end != -1 {
		pkg = source[:end]
	}
	if pkg == ChecksPackage {
		return "misc"
	}
	if !strings.HasPrefix(pkg, ChecksPackage) {
		return "extension"
	}
	return pkg[strings.LastIndex(pkg, ".")+1:]
}

// Matcher selects event sources, e.g. for ignoring violations.
type Matcher interface {
	Match(source string) bool
}

type ruleMatcher struct {
	rule string
}

func (m ruleMatcher) Match(source string) bool {
	return m.rule == RuleName(source)
}

type packageMatcher struct {
	pkg string
}

func (m packageMatcher) Match(source string) bool {
	end := strings.LastIndex(source, ".")
	if end == -1 {
		return false
	}
	return source[:end] == m.pkg
}

type extensionMatcher struct{}

func (extensionMatcher) Match(source string) bool {
	return !strings.HasPrefix(source, ChecksPackage)
}

// ParseMatchers builds matchers from patterns such as "misc", "naming",
// "extension", "LineLength" or "com.example.checks". Blank patterns are skipped.
func ParseMatchers(patterns []string) []Matcher {
	matchers := make([]Matcher, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		switch {
		case unicode.IsUpper([]rune(p)[0]):
			matchers = append(matchers, ruleMatcher{rule: p})
		case p == "misc":
			matchers = append(matchers, packageMatcher{pkg: ChecksPackage})
		case p == "extension":
			matchers = append(matchers, extensionMatcher{})
		case !strings.Contains(p, "."):
			matchers = append(matchers, packageMatcher{pkg: ChecksPackage + "." + p})
		default:
			matchers = append(matchers, packageMatcher{pkg: p})
		}
	}
	return matchers
}

// MatchAny reports whether any matcher selects the source.
func MatchAny(matchers []Matcher, source string) bool {
	for _, m := range matchers {
		if m.Match(source) {
			return true
		}
	}
	return false
}
