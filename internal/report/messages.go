package report

import (
	"fmt"

	"golang.org/x/text/language"
)

// Messages holds the report texts of one locale.
type Messages map[string]string

// Get returns the text for key, or the key itself when it is missing.
func (m Messages) Get(key string) string {
	if s, ok := m[key]; ok {
		return s
	}
	return key
}

// Getf formats the text for key with args.
func (m Messages) Getf(key string, args ...any) string {
	return fmt.Sprintf(m.Get(key), args...)
}

var catalogs = map[language.Tag]Messages{
	language.English: {
		"title":           "Checkstyle Results",
		"description":     "Report on coding style conventions.",
		"checkstylelink":  "The following document contains the results of",
		"ruleset":         "with %s ruleset",
		"summary":         "Summary",
		"files":           "Files",
		"file":            "File",
		"rules":           "Rules",
		"rule":            "Rule",
		"rule.category":   "Category",
		"violations":      "Violations",
		"norule":          "The configuration has no Checker root module, no rules to summarize.",
		"details":         "Details",
		"column.severity": "Severity",
		"column.message":  "Message",
		"column.line":     "Line",
		"info":            "Info",
		"infos":           "Infos",
		"infos.abbrev":    "I",
		"warning":         "Warning",
		"warnings":        "Warnings",
		"warnings.abbrev": "W",
		"error":           "Error",
		"errors":          "Errors",
		"errors.abbrev":   "E",
	},
	language.German: {
		"title":           "Checkstyle-Ergebnisse",
		"description":     "Bericht über die Einhaltung von Programmierrichtlinien.",
		"checkstylelink":  "Dieses Dokument enthält die Ergebnisse von",
		"ruleset":         "mit dem Regelsatz %s",
		"summary":         "Zusammenfassung",
		"files":           "Dateien",
		"file":            "Datei",
		"rules":           "Regeln",
		"rule":            "Regel",
		"rule.category":   "Kategorie",
		"violations":      "Verstöße",
		"norule":          "Die Konfiguration hat kein Checker-Wurzelmodul, es gibt keine Regeln zum Zusammenfassen.",
		"details":         "Details",
		"column.severity": "Schweregrad",
		"column.message":  "Meldung",
		"column.line":     "Zeile",
		"info":            "Information",
		"infos":           "Informationen",
		"infos.abbrev":    "I",
		"warning":         "Warnung",
		"warnings":        "Warnungen",
		"warnings.abbrev": "W",
		"error":           "Fehler",
		"errors":          "Fehler",
		"errors.abbrev":   "F",
	},
}

// The first entry is the fallback.
var supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(supported)

// Catalog returns the messages best matching locale, e.g. "de", "de-CH" or
// "en_US", and the tag that was chosen.
func Catalog(locale string) (Messages, language.Tag) {
	tag, _ := language.MatchStrings(matcher, locale)
	base, _ := tag.Base()
	for _, t := range supported {
		if b, _ := t.Base(); b == base {
			return catalogs[t], t
		}
	}
	return catalogs[language.English], language.English
}
