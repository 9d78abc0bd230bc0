// Package config loads the per-project settings of sym-checkstyle from a
// project file, environment variables and command line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/DevSymphony/sym-checkstyle/internal/ruleconfig"
)

// Defaults shared with the engine.
const (
	DefaultConfigLocation         = "sun_checks.xml"
	DefaultHeaderLocation         = "LICENSE.txt"
	DefaultSuppressionsExpression = "checkstyle.suppressions.file"
	DefaultBuildDirectory         = "target"
	DefaultOutputFormat           = "xml"
	DefaultViolationSeverity      = "error"
	DefaultCheckstyleVersion      = "10.26.1"
	DefaultTreeWalker             = "TreeWalker"

	// EnvPrefix prefixes every environment override, e.g.
	// SYM_CHECKSTYLE_CHECK_MAX_ALLOWED_VIOLATIONS.
	EnvPrefix = "SYM_CHECKSTYLE"
)

// FileNames are the project file names looked up in the base directory.
var FileNames = []string{
	".sym-checkstyle.yaml",
	".sym-checkstyle.yml",
	".sym-checkstyle.json",
	".sym-checkstyle.toml",
}

// Config is the complete configuration of one project.
type Config struct {
	// BaseDir is the project directory every relative path resolves against.
	BaseDir string `mapstructure:"-" yaml:"-"`

	// File is the project file the configuration was read from, if any.
	File string `mapstructure:"-" yaml:"-"`

	Project        ProjectConfig    `mapstructure:"project" yaml:"project"`
	BuildDirectory string           `mapstructure:"build_directory" yaml:"build_directory"`
	Encoding       string           `mapstructure:"encoding" yaml:"encoding,omitempty"`
	Skip           bool             `mapstructure:"skip" yaml:"skip,omitempty"`
	Sources        SourcesConfig    `mapstructure:"sources" yaml:"sources"`
	Checkstyle     CheckstyleConfig `mapstructure:"checkstyle" yaml:"checkstyle"`
	Output         OutputConfig     `mapstructure:"output" yaml:"output"`
	Check          CheckConfig      `mapstructure:"check" yaml:"check"`
	Report         ReportConfig     `mapstructure:"report" yaml:"report"`
}

// ProjectConfig names the project and its sub-modules.
type ProjectConfig struct {
	Name    string   `mapstructure:"name" yaml:"name,omitempty"`
	Modules []string `mapstructure:"modules" yaml:"modules,omitempty"`
}

// SourcesConfig selects the files to audit.
type SourcesConfig struct {
	SourceDirectories          []string `mapstructure:"source_directories" yaml:"source_directories"`
	TestSourceDirectories      []string `mapstructure:"test_source_directories" yaml:"test_source_directories"`
	IncludeTestSourceDirectory bool     `mapstructure:"include_test_source_directory" yaml:"include_test_source_directory"`
	Includes                   string   `mapstructure:"includes" yaml:"includes"`
	Excludes                   string   `mapstructure:"excludes" yaml:"excludes,omitempty"`
	Resources                  []string `mapstructure:"resources" yaml:"resources"`
	TestResources              []string `mapstructure:"test_resources" yaml:"test_resources"`
	IncludeResources           bool     `mapstructure:"include_resources" yaml:"include_resources"`
	IncludeTestResources       bool     `mapstructure:"include_test_resources" yaml:"include_test_resources"`
	ResourceIncludes           string   `mapstructure:"resource_includes" yaml:"resource_includes"`
	ResourceExcludes           string   `mapstructure:"resource_excludes" yaml:"resource_excludes,omitempty"`
	ExcludeGeneratedSources    bool     `mapstructure:"exclude_generated_sources" yaml:"exclude_generated_sources,omitempty"`

	// Removed settings, rejected when present.
	SourceDirectory     string `mapstructure:"source_directory" yaml:"source_directory,omitempty"`
	TestSourceDirectory string `mapstructure:"test_source_directory" yaml:"test_source_directory,omitempty"`
}

// CheckstyleConfig controls the engine and its rule configuration.
type CheckstyleConfig struct {
	Version                    string        `mapstructure:"version" yaml:"version"`
	ToolsDir                   string        `mapstructure:"tools_dir" yaml:"tools_dir,omitempty"`
	Jar                        string        `mapstructure:"jar" yaml:"jar,omitempty"`
	Java                       string        `mapstructure:"java" yaml:"java,omitempty"`
	ConfigLocation             string        `mapstructure:"config_location" yaml:"config_location"`
	PropertiesLocation         string        `mapstructure:"properties_location" yaml:"properties_location,omitempty"`
	PropertyExpansion          string        `mapstructure:"property_expansion" yaml:"property_expansion,omitempty"`
	HeaderLocation             string        `mapstructure:"header_location" yaml:"header_location"`
	SuppressionsLocation       string        `mapstructure:"suppressions_location" yaml:"suppressions_location,omitempty"`
	SuppressionsFileExpression string        `mapstructure:"suppressions_file_expression" yaml:"suppressions_file_expression"`
	CacheFile                  string        `mapstructure:"cache_file" yaml:"cache_file,omitempty"`
	Rules                      string        `mapstructure:"rules" yaml:"rules,omitempty"`
	RulesFile                  string        `mapstructure:"rules_file" yaml:"rules_file,omitempty"`
	RulesHeader                string        `mapstructure:"rules_header" yaml:"rules_header,omitempty"`
	OmitIgnoredModules         bool          `mapstructure:"omit_ignored_modules" yaml:"omit_ignored_modules,omitempty"`
	FailsOnError               bool          `mapstructure:"fails_on_error" yaml:"fails_on_error,omitempty"`
	ConsoleOutput              bool          `mapstructure:"console_output" yaml:"console_output,omitempty"`
	BatchSize                  int           `mapstructure:"batch_size" yaml:"batch_size,omitempty"`
	Parallelism                int           `mapstructure:"parallelism" yaml:"parallelism,omitempty"`
	Timeout                    time.Duration `mapstructure:"timeout" yaml:"-"`
}

// OutputConfig selects the result file.
type OutputConfig struct {
	File    string `mapstructure:"file" yaml:"file,omitempty"`
	Format  string `mapstructure:"format" yaml:"format"`
	UseFile string `mapstructure:"use_file" yaml:"use_file,omitempty"`
}

// CheckConfig controls the violation gate.
type CheckConfig struct {
	FailOnViolation      bool   `mapstructure:"fail_on_violation" yaml:"fail_on_violation"`
	MaxAllowedViolations int    `mapstructure:"max_allowed_violations" yaml:"max_allowed_violations"`
	ViolationSeverity    string `mapstructure:"violation_severity" yaml:"violation_severity"`
	ViolationIgnore      string `mapstructure:"violation_ignore" yaml:"violation_ignore,omitempty"`
	SkipExec             bool   `mapstructure:"skip_exec" yaml:"skip_exec,omitempty"`
	LogViolations        bool   `mapstructure:"log_violations" yaml:"log_violations"`
	LogViolationCount    bool   `mapstructure:"log_violation_count" yaml:"log_violation_count"`
}

// ReportConfig controls the HTML report.
type ReportConfig struct {
	OutputDirectory       string   `mapstructure:"output_directory" yaml:"output_directory,omitempty"`
	Locale                string   `mapstructure:"locale" yaml:"locale"`
	EnableRulesSummary    bool     `mapstructure:"enable_rules_summary" yaml:"enable_rules_summary"`
	EnableSeveritySummary bool     `mapstructure:"enable_severity_summary" yaml:"enable_severity_summary"`
	EnableFilesSummary    bool     `mapstructure:"enable_files_summary" yaml:"enable_files_summary"`
	LinkXRef              bool     `mapstructure:"link_xref" yaml:"link_xref"`
	XRefLocation          string   `mapstructure:"xref_location" yaml:"xref_location,omitempty"`
	XRefTestLocation      string   `mapstructure:"xref_test_location" yaml:"xref_test_location,omitempty"`
	TreeWalkerNames       []string `mapstructure:"tree_walker_names" yaml:"tree_walker_names"`
	Skip                  bool     `mapstructure:"skip" yaml:"skip,omitempty"`
}

// FlagKeys maps command line flag names to configuration keys.
var FlagKeys = map[string]string{
	"config-location":        "checkstyle.config_location",
	"checkstyle-version":     "checkstyle.version",
	"encoding":               "encoding",
	"skip":                   "skip",
	"include-tests":          "sources.include_test_source_directory",
	"output-file":            "output.file",
	"format":                 "output.format",
	"fail-on-violation":      "check.fail_on_violation",
	"max-allowed-violations": "check.max_allowed_violations",
	"violation-severity":     "check.violation_severity",
	"skip-exec":              "check.skip_exec",
	"locale":                 "report.locale",
	"report-dir":             "report.output_directory",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project.name", "")
	v.SetDefault("project.modules", []string{})
	v.SetDefault("build_directory", DefaultBuildDirectory)
	v.SetDefault("encoding", "")
	v.SetDefault("skip", false)

	v.SetDefault("sources.source_directories", []string{"src/main/java"})
	v.SetDefault("sources.test_source_directories", []string{"src/test/java"})
	v.SetDefault("sources.include_test_source_directory", false)
	v.SetDefault("sources.includes", "**/*.java")
	v.SetDefault("sources.excludes", "")
	v.SetDefault("sources.resources", []string{"src/main/resources"})
	v.SetDefault("sources.test_resources", []string{"src/test/resources"})
	v.SetDefault("sources.include_resources", true)
	v.SetDefault("sources.include_test_resources", true)
	v.SetDefault("sources.resource_includes", "**/*.properties")
	v.SetDefault("sources.resource_excludes", "")
	v.SetDefault("sources.exclude_generated_sources", false)
	v.SetDefault("sources.source_directory", "")
	v.SetDefault("sources.test_source_directory", "")

	v.SetDefault("checkstyle.version", DefaultCheckstyleVersion)
	v.SetDefault("checkstyle.tools_dir", "")
	v.SetDefault("checkstyle.jar", "")
	v.SetDefault("checkstyle.java", "")
	v.SetDefault("checkstyle.config_location", DefaultConfigLocation)
	v.SetDefault("checkstyle.properties_location", "")
	v.SetDefault("checkstyle.property_expansion", "")
	v.SetDefault("checkstyle.header_location", DefaultHeaderLocation)
	v.SetDefault("checkstyle.suppressions_location", "")
	v.SetDefault("checkstyle.suppressions_file_expression", DefaultSuppressionsExpression)
	v.SetDefault("checkstyle.cache_file", "")
	v.SetDefault("checkstyle.rules", "")
	v.SetDefault("checkstyle.rules_file", "")
	v.SetDefault("checkstyle.rules_header", ruleconfig.DefaultHeader)
	v.SetDefault("checkstyle.omit_ignored_modules", false)
	v.SetDefault("checkstyle.fails_on_error", false)
	v.SetDefault("checkstyle.console_output", false)
	v.SetDefault("checkstyle.batch_size", 0)
	v.SetDefault("checkstyle.parallelism", 0)
	v.SetDefault("checkstyle.timeout", 10*time.Minute)

	v.SetDefault("output.file", "")
	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("output.use_file", "")

	v.SetDefault("check.fail_on_violation", true)
	v.SetDefault("check.max_allowed_violations", 0)
	v.SetDefault("check.violation_severity", DefaultViolationSeverity)
	v.SetDefault("check.violation_ignore", "")
	v.SetDefault("check.skip_exec", false)
	v.SetDefault("check.log_violations", true)
	v.SetDefault("check.log_violation_count", true)

	v.SetDefault("report.output_directory", "")
	v.SetDefault("report.locale", "en")
	v.SetDefault("report.enable_rules_summary", true)
	v.SetDefault("report.enable_severity_summary", true)
	v.SetDefault("report.enable_files_summary", true)
	v.SetDefault("report.link_xref", true)
	v.SetDefault("report.xref_location", "")
	v.SetDefault("report.xref_test_location", "")
	v.SetDefault("report.tree_walker_names", []string{DefaultTreeWalker})
	v.SetDefault("report.skip", false)
}

// Default returns the configuration used when nothing is configured.
func Default(baseDir string) *Config {
	cfg, err := load(viper.New(), baseDir, "", nil)
	if err != nil {
		// Defaults alone always decode.
		panic(err)
	}
	return cfg
}

// FindFile returns the first project file present in dir, or "".
func FindFile(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads the configuration of the project in baseDir. configPath, when
// set, overrides file discovery. Flags that were changed on the command line
// take precedence over environment variables, which take precedence over the
// project file.
func Load(baseDir, configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = FindFile(baseDir)
	}
	return load(v, baseDir, configPath, flags)
}

func load(v *viper.Viper, baseDir, configPath string, flags *pflag.FlagSet) (*Config, error) {
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("invalid base directory %s: %w", baseDir, err)
	}
	cfg.BaseDir = abs
	cfg.File = configPath
	if cfg.Project.Name == "" {
		cfg.Project.Name = filepath.Base(abs)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks enumerations and mutually exclusive settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "xml", "plain", "sarif":
	default:
		return fmt.Errorf("Invalid output file format: (%s). Must be 'plain', 'sarif' or 'xml'.", c.Output.Format)
	}

	switch c.Check.ViolationSeverity {
	case "error", "warning", "info":
	default:
		return fmt.Errorf("check.violation_severity must be one of error, warning, info, got %q", c.Check.ViolationSeverity)
	}

	if c.Check.MaxAllowedViolations < 0 {
		return fmt.Errorf("check.max_allowed_violations must be >= 0, got %d", c.Check.MaxAllowedViolations)
	}
	if c.Checkstyle.BatchSize < 0 {
		return fmt.Errorf("checkstyle.batch_size must be >= 0, got %d", c.Checkstyle.BatchSize)
	}
	if c.Checkstyle.Parallelism < 0 {
		return fmt.Errorf("checkstyle.parallelism must be >= 0, got %d", c.Checkstyle.Parallelism)
	}

	if c.HasInlineRules() && c.Checkstyle.ConfigLocation != DefaultConfigLocation {
		return fmt.Errorf("If you use inline configuration for rules, don't specify a configLocation")
	}
	return nil
}

// CheckDeprecated fails when a removed setting is used.
func (c *Config) CheckDeprecated() error {
	if c.Sources.SourceDirectory != "" {
		return deprecated("sources.source_directory", "sources.source_directories")
	}
	if c.Sources.TestSourceDirectory != "" {
		return deprecated("sources.test_source_directory", "sources.test_source_directories")
	}
	return nil
}

func deprecated(name, replacement string) error {
	return fmt.Errorf("You are using '%s' which has been removed from sym-checkstyle. Please use '%s' instead.", name, replacement)
}

// HasInlineRules reports whether rules are configured inline.
func (c *Config) HasInlineRules() bool {
	return strings.TrimSpace(c.Checkstyle.Rules) != ""
}

// Clone returns a deep copy rooted at baseDir.
func (c *Config) Clone(baseDir string) *Config {
	out := *c
	out.BaseDir = baseDir
	out.File = ""
	out.Project.Name = filepath.Base(baseDir)
	out.Project.Modules = nil
	out.Sources.SourceDirectories = slices.Clone(c.Sources.SourceDirectories)
	out.Sources.TestSourceDirectories = slices.Clone(c.Sources.TestSourceDirectories)
	out.Sources.Resources = slices.Clone(c.Sources.Resources)
	out.Sources.TestResources = slices.Clone(c.Sources.TestResources)
	out.Report.TreeWalkerNames = slices.Clone(c.Report.TreeWalkerNames)
	return &out
}

// Save writes cfg as YAML to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
