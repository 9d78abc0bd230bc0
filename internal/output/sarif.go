package output

import (
	"encoding/json"
	"io"
	"net/url"
	"path/filepath"
	"sort"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri"`
	Version        string      `json:"version,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID string `json:"id"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// SARIFWriter buffers events and writes a SARIF 2.1.0 log when the audit
// finishes.
type SARIFWriter struct {
	out     errWriter
	version string
	results []sarifResult
	rules   map[string]struct{}
}

// Compile-time interface check
var _ Writer = (*SARIFWriter)(nil)

// NewSARIFWriter creates a SARIF writer.
func NewSARIFWriter(w io.Writer) *SARIFWriter {
	return &SARIFWriter{out: errWriter{w: w}, rules: make(map[string]struct{})}
}

// SetEngineVersion sets the tool version recorded in the log.
func (s *SARIFWriter) SetEngineVersion(v string) {
	s.version = v
}

func sarifLevel(sev audit.Severity) string {
	switch sev {
	case audit.SeverityError:
		return "error"
	case audit.SeverityWarning:
		return "warning"
	case audit.SeverityInfo:
		return "note"
	default:
		return "none"
	}
}

func fileURI(path string) string {
	if filepath.IsAbs(path) {
		return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
	}
	return filepath.ToSlash(path)
}

func (s *SARIFWriter) AuditStarted() {
	s.results = nil
	s.rules = make(map[string]struct{})
}

func (s *SARIFWriter) AuditFinished() {
	ids := make([]string, 0, len(s.rules))
	for id := range s.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rules := make([]sarifRule, len(ids))
	for i, id := range ids {
		rules[i] = sarifRule{ID: id}
	}

	results := s.results
	if results == nil {
		results = []sarifResult{}
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           "Checkstyle",
				InformationURI: "https://checkstyle.org/",
				Version:        s.version,
				Rules:          rules,
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(&s.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(log); err != nil {
		s.out.setErr(err)
	}
}

func (s *SARIFWriter) FileStarted(string) {}

func (s *SARIFWriter) FileFinished(string) {}

func (s *SARIFWriter) AddError(event audit.Event) {
	if event.Severity == audit.SeverityIgnore {
		return
	}
	s.rules[event.Source] = struct{}{}

	loc := sarifPhysicalLocation{ArtifactLocation: sarifArtifactLocation{URI: fileURI(event.File)}}
	if event.Line > 0 {
		loc.Region = &sarifRegion{StartLine: event.Line, StartColumn: event.Column}
	}
	s.results = append(s.results, sarifResult{
		RuleID:    event.Source,
		Level:     sarifLevel(event.Severity),
		Message:   sarifMessage{Text: event.Message},
		Locations: []sarifLocation{{PhysicalLocation: loc}},
	})
}

func (s *SARIFWriter) AddException(string, error) {}

// Err returns the first write error.
func (s *SARIFWriter) Err() error {
	return s.out.err
}
