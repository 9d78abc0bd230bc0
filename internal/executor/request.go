// Package executor runs Checkstyle over a project and routes the resulting
// events to the configured listeners.
package executor

import (
	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/config"
	"github.com/DevSymphony/sym-checkstyle/internal/project"
)

// Request describes one audit.
type Request struct {
	// Project is the project being audited. With Aggregate set, every
	// project of Reactor is audited together.
	Project   *project.Project
	Reactor   []*project.Project
	Aggregate bool

	// ConsoleOutput logs every event as it is read.
	ConsoleOutput bool
	FailsOnError  bool

	Includes                   string
	Excludes                   string
	ResourceIncludes           string
	ResourceExcludes           string
	IncludeResources           bool
	IncludeTestResources       bool
	IncludeTestSourceDirectory bool
	ExcludeGeneratedSources    bool

	// Listener receives every event in addition to the built-in listeners.
	Listener audit.Listener

	ConfigLocation             string
	PropertiesLocation         string
	PropertyExpansion          string
	HeaderLocation             string
	SuppressionsLocation       string
	SuppressionsFileExpression string
	CacheFile                  string
	Encoding                   string
	OmitIgnoredModules         bool

	// InlineRules, when set, are written to RulesFile and used as the
	// configuration.
	InlineRules string
	RulesFile   string
	RulesHeader string

	// SeverityFilter restricts the collected results to one severity.
	SeverityFilter *audit.Severity

	OutputFile   string
	OutputFormat string

	// XMLFile receives an additional XML result when set.
	XMLFile string

	// UseFile receives a plain text copy of the results when set.
	UseFile string

	// BatchSize splits the files over several engine runs; 0 runs once.
	BatchSize   int
	Parallelism int
}

// NewRequest builds a request from the project's configuration.
func NewRequest(p *project.Project) *Request {
	cfg := p.Config
	return &Request{
		Project:                    p,
		ConsoleOutput:              cfg.Checkstyle.ConsoleOutput,
		FailsOnError:               cfg.Checkstyle.FailsOnError,
		Includes:                   cfg.Sources.Includes,
		Excludes:                   cfg.Sources.Excludes,
		ResourceIncludes:           cfg.Sources.ResourceIncludes,
		ResourceExcludes:           cfg.Sources.ResourceExcludes,
		IncludeResources:           cfg.Sources.IncludeResources,
		IncludeTestResources:       cfg.Sources.IncludeTestResources,
		IncludeTestSourceDirectory: cfg.Sources.IncludeTestSourceDirectory,
		ExcludeGeneratedSources:    cfg.Sources.ExcludeGeneratedSources,
		ConfigLocation:             cfg.Checkstyle.ConfigLocation,
		PropertiesLocation:         cfg.Checkstyle.PropertiesLocation,
		PropertyExpansion:          cfg.Checkstyle.PropertyExpansion,
		HeaderLocation:             cfg.Checkstyle.HeaderLocation,
		SuppressionsLocation:       cfg.Checkstyle.SuppressionsLocation,
		SuppressionsFileExpression: cfg.Checkstyle.SuppressionsFileExpression,
		CacheFile:                  cfg.CacheFilePath(),
		Encoding:                   cfg.Encoding,
		OmitIgnoredModules:         cfg.Checkstyle.OmitIgnoredModules,
		InlineRules:                cfg.Checkstyle.Rules,
		RulesFile:                  cfg.RulesFilePath(),
		RulesHeader:                cfg.Checkstyle.RulesHeader,
		OutputFile:                 cfg.OutputFilePath(),
		OutputFormat:               cfg.Output.Format,
		UseFile:                    cfg.UseFilePath(),
		BatchSize:                  cfg.Checkstyle.BatchSize,
		Parallelism:                cfg.Checkstyle.Parallelism,
	}
}

// projects returns the projects whose files are audited.
func (r *Request) projects() []*project.Project {
	if r.Aggregate && len(r.Reactor) > 0 {
		return r.Reactor
	}
	return []*project.Project{r.Project}
}

func (r *Request) config() *config.Config {
	return r.Project.Config
}
