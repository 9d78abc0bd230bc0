package executor

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/config"
	"github.com/DevSymphony/sym-checkstyle/internal/linter"
	"github.com/DevSymphony/sym-checkstyle/internal/linter/checkstyle"
	"github.com/DevSymphony/sym-checkstyle/internal/locator"
	"github.com/DevSymphony/sym-checkstyle/internal/logging"
	"github.com/DevSymphony/sym-checkstyle/internal/results"
	"github.com/DevSymphony/sym-checkstyle/internal/ruleconfig"
	"github.com/DevSymphony/sym-checkstyle/internal/source"
	"github.com/DevSymphony/sym-checkstyle/internal/ui"
)

// Property names passed to the engine.
const (
	HeaderFileProperty = "checkstyle.header.file"
	CacheFileProperty  = "checkstyle.cache.file"
)

// Runner runs the engine. *checkstyle.Linter implements it.
type Runner interface {
	Run(ctx context.Context, inv checkstyle.Invocation) (*linter.ToolOutput, error)
	BuiltinConfig(name string) ([]byte, error)
	EngineVersion() string
}

// Compile-time interface check
var _ Runner = (*checkstyle.Linter)(nil)

// Executor runs audits.
type Executor struct {
	runner Runner
	log    *zap.SugaredLogger

	// Fs holds the project files, the build directory and the result files.
	// The runner must see the same filesystem.
	Fs afero.Fs

	// Client downloads remote resources.
	Client *http.Client

	// ShowProgress renders a progress bar for multi-batch runs.
	ShowProgress bool
}

// New creates an executor.
func New(runner Runner, log *zap.SugaredLogger) *Executor {
	if log == nil {
		log = logging.Nop()
	}
	return &Executor{
		runner: runner,
		log:    log,
		Fs:     afero.NewOsFs(),
		Client: http.DefaultClient,
	}
}

// EngineVersion returns the version of the engine in use.
func (e *Executor) EngineVersion() string {
	return e.runner.EngineVersion()
}

// setup is the resolved engine configuration.
type setup struct {
	// configArg is passed to the engine with -c.
	configArg  string
	properties map[string]string
	tree       *ruleconfig.Module
}

// Execute audits the request's files and returns the collected results.
func (e *Executor) Execute(ctx context.Context, req *Request) (*results.Results, error) {
	cfg := req.config()
	buildDir := cfg.BuildDir()
	if err := e.Fs.MkdirAll(buildDir, 0755); err != nil {
		return nil, &ExecutionError{Err: err}
	}

	files, err := e.discover(ctx, req)
	if err != nil {
		return nil, &ExecutionError{Err: fmt.Errorf("error getting files to process: %w", err)}
	}
	e.log.Debugf("Auditing %d files in %s", len(files), cfg.BaseDir)

	s, err := e.configure(ctx, req, buildDir)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	collector := results.NewCollector(e.sourceDirs(req)...)
	collector.SetConfiguration(s.tree)
	if req.SeverityFilter != nil {
		collector.SetSeverityFilter(*req.SeverityFilter)
	}
	errs := &errorCounter{}

	sinks, err := e.openSinks(req)
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}

	listener := audit.NewCompositeListener(collector, errs, req.Listener)
	for _, sk := range sinks {
		listener.Add(sk.w)
	}
	if req.ConsoleOutput {
		listener.Add(logging.NewConsoleListener(e.log))
	}

	outputs, runErr := e.runBatches(ctx, req, s, files, buildDir)
	if runErr == nil {
		runErr = e.replay(outputs, listener)
	}
	if err := closeSinks(sinks); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return nil, &ExecutionError{Err: runErr}
	}

	if req.FailsOnError && errs.count > 0 {
		return nil, &ExecutionError{Err: fmt.Errorf("There are %d errors reported by Checkstyle %s with %s ruleset.",
			errs.count, e.runner.EngineVersion(), req.ConfigLocation)}
	}

	return collector.Results(), nil
}

// discover collects the files of every audited project.
func (e *Executor) discover(ctx context.Context, req *Request) ([]string, error) {
	projects := req.projects()
	found := make([][]string, len(projects))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range projects {
		g.Go(func() error {
			files, err := source.Collect(ctx, e.Fs, e.sourceOptions(req, p.Config))
			if err != nil {
				return err
			}
			found[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	for _, batch := range found {
		for _, f := range batch {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				files = append(files, f)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func (e *Executor) sourceOptions(req *Request, cfg *config.Config) source.Options {
	return source.Options{
		SourceDirs:              cfg.SourceDirs(),
		TestSourceDirs:          cfg.TestSourceDirs(),
		IncludeTestSources:      req.IncludeTestSourceDirectory,
		Includes:                req.Includes,
		Excludes:                req.Excludes,
		ResourceDirs:            cfg.ResolveAll(cfg.Sources.Resources),
		TestResourceDirs:        cfg.ResolveAll(cfg.Sources.TestResources),
		IncludeResources:        req.IncludeResources,
		IncludeTestResources:    req.IncludeTestResources,
		ResourceIncludes:        req.ResourceIncludes,
		ResourceExcludes:        req.ResourceExcludes,
		ExcludeGeneratedSources: req.ExcludeGeneratedSources,
		BuildDir:                cfg.BuildDir(),
	}
}

// sourceDirs lists the directories file keys are made relative to.
func (e *Executor) sourceDirs(req *Request) []string {
	var dirs []string
	for _, p := range req.projects() {
		cfg := p.Config
		dirs = append(dirs, cfg.SourceDirs()...)
		if req.IncludeTestSourceDirectory {
			dirs = append(dirs, cfg.TestSourceDirs()...)
		}
		if req.IncludeResources {
			dirs = append(dirs, cfg.ResolveAll(cfg.Sources.Resources)...)
		}
		if req.IncludeTestResources {
			dirs = append(dirs, cfg.ResolveAll(cfg.Sources.TestResources)...)
		}
	}
	return dirs
}

// configure resolves the rule configuration and the properties it uses.
func (e *Executor) configure(ctx context.Context, req *Request, buildDir string) (*setup, error) {
	cfg := req.config()

	location := req.ConfigLocation
	if strings.TrimSpace(req.InlineRules) != "" {
		if location != config.DefaultConfigLocation {
			return nil, fmt.Errorf("If you use inline configuration for rules, don't specify a configLocation")
		}
		doc, err := ruleconfig.InlineDocument(req.RulesHeader, req.InlineRules)
		if err != nil {
			return nil, err
		}
		if err := e.writeFile(req.RulesFile, doc); err != nil {
			return nil, err
		}
		location = req.RulesFile
	}

	loc := locator.NewWithFs(e.Fs, cfg.BaseDir, buildDir)
	loc.Client = e.Client
	loc.IsBuiltin = checkstyle.IsBuiltinConfig

	props, err := e.properties(ctx, req, loc)
	if err != nil {
		return nil, err
	}

	res, err := loc.Resolve(ctx, location, "checkstyle-checker.xml")
	if err != nil {
		return nil, fmt.Errorf("unable to find configuration file at location: %s: %w", location, err)
	}

	var content []byte
	configArg := res.Path
	if res.Builtin {
		content, err = e.runner.BuiltinConfig(res.Path)
		configArg = "/" + strings.TrimPrefix(res.Path, "/")
	} else {
		content, err = afero.ReadFile(e.Fs, res.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration %s: %w", location, err)
	}

	tree, err := ruleconfig.Parse(bytes.NewReader(content), props)
	if err != nil {
		return nil, err
	}

	if req.OmitIgnoredModules {
		tree = tree.OmitIgnored()
		data, err := tree.Marshal()
		if err != nil {
			return nil, err
		}
		configArg = filepath.Join(buildDir, "checkstyle-checker.xml")
		if err := e.writeFile(configArg, data); err != nil {
			return nil, err
		}
	}

	return &setup{configArg: configArg, properties: props, tree: tree}, nil
}

// properties builds the property set handed to the engine.
func (e *Executor) properties(ctx context.Context, req *Request, loc *locator.Locator) (map[string]string, error) {
	props := make(map[string]string)

	if req.PropertiesLocation != "" {
		res, err := loc.Resolve(ctx, req.PropertiesLocation, "checkstyle-checker.properties")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve properties location %s: %w", req.PropertiesLocation, err)
		}
		data, err := afero.ReadFile(e.Fs, res.Path)
		if err != nil {
			return nil, err
		}
		loaded, err := ruleconfig.ParseProperties(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		for k, v := range loaded {
			props[k] = v
		}
	}

	if req.PropertyExpansion != "" {
		// Backslashes are literal in the expansion string.
		expansion := strings.ReplaceAll(req.PropertyExpansion, `\`, `\\`)
		loaded, err := ruleconfig.ParseProperties(strings.NewReader(expansion))
		if err != nil {
			return nil, err
		}
		for k, v := range loaded {
			props[k] = v
		}
	}

	header, err := loc.ResolveOptional(ctx, req.HeaderLocation, "checkstyle-header.txt")
	if err != nil {
		return nil, err
	}
	if header.Path != "" {
		props[HeaderFileProperty] = header.Path
	} else if req.HeaderLocation != "" {
		e.log.Debugf("Unable to process header location %s: ${%s} stays unset", req.HeaderLocation, HeaderFileProperty)
	}

	if req.SuppressionsLocation != "" {
		res, err := loc.Resolve(ctx, req.SuppressionsLocation, "checkstyle-suppressions.xml")
		if err != nil {
			return nil, fmt.Errorf("unable to process suppressions location %s: %w", req.SuppressionsLocation, err)
		}
		if req.SuppressionsFileExpression != "" {
			props[req.SuppressionsFileExpression] = res.Path
		}
	}

	if req.CacheFile != "" {
		props[CacheFileProperty] = req.CacheFile
	}

	return props, nil
}

// runBatches runs the engine over files and returns the XML result files in
// batch order.
func (e *Executor) runBatches(ctx context.Context, req *Request, s *setup, files []string, buildDir string) ([]string, error) {
	batches := split(files, req.BatchSize)
	if len(batches) == 0 {
		return nil, nil
	}

	limit := req.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	progress := ui.NewProgress(e.ShowProgress, "checkstyle", len(batches))
	defer progress.Complete()

	outputs := make([]string, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, batch := range batches {
		g.Go(func() error {
			props := make(map[string]string, len(s.properties))
			for k, v := range s.properties {
				props[k] = v
			}
			name := "checkstyle-checker.properties"
			out := filepath.Join(buildDir, "checkstyle-batch.xml")
			if len(batches) > 1 {
				name = fmt.Sprintf("checkstyle-checker-%d.properties", i)
				out = filepath.Join(buildDir, fmt.Sprintf("checkstyle-batch-%d.xml", i))
				if c, ok := props[CacheFileProperty]; ok {
					props[CacheFileProperty] = fmt.Sprintf("%s.%d", c, i)
				}
			}

			propsFile := filepath.Join(buildDir, name)
			var buf bytes.Buffer
			if err := ruleconfig.WriteProperties(&buf, props); err != nil {
				return err
			}
			if err := e.writeFile(propsFile, buf.Bytes()); err != nil {
				return err
			}
			_ = e.Fs.Remove(out)

			inv := checkstyle.Invocation{
				ConfigLocation: s.configArg,
				PropertiesFile: propsFile,
				OutputFile:     out,
				Encoding:       req.Encoding,
				Files:          batch,
			}
			if _, err := e.runner.Run(gctx, inv); err != nil {
				return err
			}

			outputs[i] = out
			progress.Increment(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// replay streams the batch results into l as a single audit.
func (e *Executor) replay(outputs []string, l audit.Listener) error {
	l.AuditStarted()
	for _, out := range outputs {
		if err := e.decodeFile(out, l); err != nil {
			return err
		}
		_ = e.Fs.Remove(out)
	}
	l.AuditFinished()
	return nil
}

func (e *Executor) decodeFile(path string, l audit.Listener) error {
	f, err := e.Fs.Open(path)
	if err != nil {
		return fmt.Errorf("unable to read checkstyle results: %w", err)
	}
	defer func() { _ = f.Close() }()
	return checkstyle.Decode(f, l)
}

func split(files []string, size int) [][]string {
	if len(files) == 0 {
		return nil
	}
	if size <= 0 || size >= len(files) {
		return [][]string{files}
	}
	var batches [][]string
	for start := 0; start < len(files); start += size {
		end := min(start+size, len(files))
		batches = append(batches, files[start:end])
	}
	return batches
}

func (e *Executor) writeFile(path string, data []byte) error {
	if err := e.Fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(e.Fs, path, data, 0644)
}

// errorCounter counts events of severity error.
type errorCounter struct {
	count int
}

func (c *errorCounter) AuditStarted()              { c.count = 0 }
func (c *errorCounter) AuditFinished()             {}
func (c *errorCounter) FileStarted(string)         {}
func (c *errorCounter) FileFinished(string)        {}
func (c *errorCounter) AddException(string, error) {}

func (c *errorCounter) AddError(event audit.Event) {
	if event.Severity == audit.SeverityError {
		c.count++
	}
}
