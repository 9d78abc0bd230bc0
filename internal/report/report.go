package report

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/DevSymphony/sym-checkstyle/internal/config"
	"github.com/DevSymphony/sym-checkstyle/internal/executor"
	"github.com/DevSymphony/sym-checkstyle/internal/logging"
	"github.com/DevSymphony/sym-checkstyle/internal/project"
	"github.com/DevSymphony/sym-checkstyle/internal/source"
)

// Options selects what Generate renders.
type Options struct {
	Project *project.Project

	// Aggregate merges the results of every project in the reactor.
	Aggregate bool

	// Open shows the rendered report in the default browser.
	Open bool
}

// Generator runs the audit and writes the HTML report.
type Generator struct {
	exec *executor.Executor
	log  *zap.SugaredLogger

	Fs afero.Fs

	// OpenFile opens the rendered report.
	OpenFile func(path string) error
}

// NewGenerator creates a report generator.
func NewGenerator(exec *executor.Executor, log *zap.SugaredLogger) *Generator {
	if log == nil {
		log = logging.Nop()
	}
	return &Generator{
		exec:     exec,
		log:      log,
		Fs:       afero.NewOsFs(),
		OpenFile: browser.OpenFile,
	}
}

// OutputName returns the report file name without extension.
func OutputName(aggregate bool) string {
	if aggregate {
		return "checkstyle-aggregate"
	}
	return "checkstyle"
}

// CanGenerate reports whether there is anything to report on.
func (g *Generator) CanGenerate(p *project.Project, aggregate bool) bool {
	cfg := p.Config
	if cfg.Skip || cfg.Report.Skip {
		return false
	}
	if aggregate {
		return len(p.Reactor()) > 1
	}

	for _, dir := range cfg.SourceDirs() {
		if source.DirExists(g.Fs, dir) {
			return true
		}
	}
	if cfg.Sources.IncludeTestSourceDirectory {
		for _, dir := range cfg.TestSourceDirs() {
			if source.DirExists(g.Fs, dir) {
				return true
			}
		}
	}
	return (cfg.Sources.IncludeResources && g.anyExists(cfg.ResolveAll(cfg.Sources.Resources))) ||
		(cfg.Sources.IncludeTestResources && g.anyExists(cfg.ResolveAll(cfg.Sources.TestResources)))
}

func (g *Generator) anyExists(dirs []string) bool {
	for _, dir := range dirs {
		if source.DirExists(g.Fs, dir) {
			return true
		}
	}
	return false
}

// Generate audits the project and writes the report. It returns the path of
// the written file, or "" when the report was skipped.
func (g *Generator) Generate(ctx context.Context, opts Options) (string, error) {
	p := opts.Project
	cfg := p.Config

	if err := cfg.CheckDeprecated(); err != nil {
		return "", err
	}
	if !g.CanGenerate(p, opts.Aggregate) {
		g.log.Infof("Skipping %s report", OutputName(opts.Aggregate))
		return "", nil
	}

	req := executor.NewRequest(p)
	req.Aggregate = opts.Aggregate
	req.Reactor = p.Reactor()

	res, err := g.exec.Execute(ctx, req)
	if err != nil {
		return "", err
	}

	reportDir := cfg.ReportDir()
	r := NewRenderer(cfg.Report.Locale)
	r.BaseDir = cfg.BaseDir
	r.EngineVersion = g.exec.EngineVersion()
	r.Ruleset = ruleset(cfg)
	r.EnableRulesSummary = cfg.Report.EnableRulesSummary
	r.EnableSeveritySummary = cfg.Report.EnableSeveritySummary
	r.EnableFilesSummary = cfg.Report.EnableFilesSummary
	if len(cfg.Report.TreeWalkerNames) > 0 {
		r.TreeWalkerNames = cfg.Report.TreeWalkerNames
	}
	if cfg.Report.LinkXRef {
		r.XRefLocation = g.xrefLocation(reportDir, cfg.XRefDir())
		r.XRefTestLocation = g.xrefLocation(reportDir, cfg.XRefTestDir())
		r.TestSourceDirs = cfg.TestSourceDirs()
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, res); err != nil {
		return "", err
	}

	if err := g.Fs.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	path := filepath.Join(reportDir, OutputName(opts.Aggregate)+".html")
	if err := afero.WriteFile(g.Fs, path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	g.log.Infof("Checkstyle report written to %s", path)

	if opts.Open && g.OpenFile != nil {
		if err := g.OpenFile(path); err != nil {
			g.log.Warnf("Could not open browser: %v", err)
		}
	}
	return path, nil
}

// ruleset names the configuration the report was produced with.
func ruleset(cfg *config.Config) string {
	if cfg.HasInlineRules() {
		return cfg.RulesFilePath()
	}
	return cfg.Checkstyle.ConfigLocation
}

// xrefLocation returns dir relative to the report directory, or "" when the
// cross reference has not been generated.
func (g *Generator) xrefLocation(reportDir, dir string) string {
	if !source.DirExists(g.Fs, dir) {
		g.log.Warnf("Unable to locate source cross reference %s to link to, line links disabled", dir)
		return ""
	}
	rel, err := filepath.Rel(reportDir, dir)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(rel)
}
