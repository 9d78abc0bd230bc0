package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/work/demo")

	assert.Equal(t, "/work/demo", cfg.BaseDir)
	assert.Equal(t, "demo", cfg.Project.Name)
	assert.Equal(t, "target", cfg.BuildDirectory)
	assert.Equal(t, []string{"src/main/java"}, cfg.Sources.SourceDirectories)
	assert.Equal(t, "**/*.java", cfg.Sources.Includes)
	assert.Equal(t, "**/*.properties", cfg.Sources.ResourceIncludes)
	assert.True(t, cfg.Sources.IncludeResources)
	assert.Equal(t, DefaultConfigLocation, cfg.Checkstyle.ConfigLocation)
	assert.Equal(t, DefaultHeaderLocation, cfg.Checkstyle.HeaderLocation)
	assert.Equal(t, DefaultSuppressionsExpression, cfg.Checkstyle.SuppressionsFileExpression)
	assert.Equal(t, 10*time.Minute, cfg.Checkstyle.Timeout)
	assert.Equal(t, "xml", cfg.Output.Format)
	assert.True(t, cfg.Check.FailOnViolation)
	assert.Equal(t, "error", cfg.Check.ViolationSeverity)
	assert.True(t, cfg.Check.LogViolationCount)
	assert.Equal(t, []string{"TreeWalker"}, cfg.Report.TreeWalkerNames)
	assert.True(t, cfg.Report.EnableRulesSummary)
}

func TestPaths(t *testing.T) {
	cfg := Default("/work/demo")

	assert.Equal(t, filepath.Join("/work/demo", "target", "checkstyle-result.xml"), cfg.OutputFilePath())
	assert.Equal(t, filepath.Join("/work/demo", "target", "checkstyle-rules.xml"), cfg.RulesFilePath())
	assert.Equal(t, filepath.Join("/work/demo", "target", "checkstyle-cachefile"), cfg.CacheFilePath())
	assert.Equal(t, filepath.Join("/work/demo", "target", "site"), cfg.ReportDir())
	assert.Equal(t, filepath.Join("/work/demo", "target", "site", "xref"), cfg.XRefDir())
	assert.Equal(t, filepath.Join("/work/demo", "target", "site", "xref-test"), cfg.XRefTestDir())
	assert.Equal(t, "", cfg.UseFilePath())
	assert.Equal(t, []string{filepath.Join("/work/demo", "src/main/java")}, cfg.SourceDirs())

	cfg.Output.File = "reports/cs.xml"
	cfg.Report.XRefLocation = "/abs/xref"
	assert.Equal(t, filepath.Join("/work/demo", "reports/cs.xml"), cfg.OutputFilePath())
	assert.Equal(t, "/abs/xref", cfg.XRefDir())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sym-checkstyle.yaml"), []byte(`
project:
  name: shop
  modules: [core, web]
sources:
  include_test_source_directory: true
  excludes: "**/generated/**"
checkstyle:
  config_location: config/checkstyle.xml
  timeout: 2m
check:
  max_allowed_violations: 5
  violation_severity: warning
`), 0644))

	cfg, err := Load(dir, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.Project.Name)
	assert.Equal(t, []string{"core", "web"}, cfg.Project.Modules)
	assert.True(t, cfg.Sources.IncludeTestSourceDirectory)
	assert.Equal(t, "**/generated/**", cfg.Sources.Excludes)
	assert.Equal(t, "config/checkstyle.xml", cfg.Checkstyle.ConfigLocation)
	assert.Equal(t, 2*time.Minute, cfg.Checkstyle.Timeout)
	assert.Equal(t, 5, cfg.Check.MaxAllowedViolations)
	assert.Equal(t, "warning", cfg.Check.ViolationSeverity)
	assert.Equal(t, filepath.Join(dir, ".sym-checkstyle.yaml"), cfg.File)

	// untouched keys keep their defaults
	assert.True(t, cfg.Check.FailOnViolation)
	assert.Equal(t, "**/*.java", cfg.Sources.Includes)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sym-checkstyle.json"),
		[]byte(`{"check": {"max_allowed_violations": 1, "violation_severity": "info"}}`), 0644))

	t.Setenv("SYM_CHECKSTYLE_CHECK_MAX_ALLOWED_VIOLATIONS", "7")
	t.Setenv("SYM_CHECKSTYLE_OUTPUT_FORMAT", "plain")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "xml", "")
	flags.String("violation-severity", "error", "")
	require.NoError(t, flags.Parse([]string{"--format", "sarif"}))

	cfg, err := Load(dir, "", flags)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Check.MaxAllowedViolations)
	assert.Equal(t, "sarif", cfg.Output.Format)
	// unchanged flag does not override the file
	assert.Equal(t, "info", cfg.Check.ViolationSeverity)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(t.TempDir(), "/does/not/exist.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad format", func(c *Config) { c.Output.Format = "html" },
			"Invalid output file format: (html). Must be 'plain', 'sarif' or 'xml'."},
		{"bad severity", func(c *Config) { c.Check.ViolationSeverity = "fatal" }, "violation_severity"},
		{"negative max", func(c *Config) { c.Check.MaxAllowedViolations = -1 }, "max_allowed_violations"},
		{"negative batch", func(c *Config) { c.Checkstyle.BatchSize = -1 }, "batch_size"},
		{"inline rules with default location", func(c *Config) {
			c.Checkstyle.Rules = `<module name="Checker"/>`
		}, ""},
		{"inline rules with custom location", func(c *Config) {
			c.Checkstyle.Rules = `<module name="Checker"/>`
			c.Checkstyle.ConfigLocation = "my.xml"
		}, "If you use inline configuration for rules, don't specify a configLocation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("/p")
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckDeprecated(t *testing.T) {
	cfg := Default("/p")
	assert.NoError(t, cfg.CheckDeprecated())

	cfg.Sources.SourceDirectory = "src"
	err := cfg.CheckDeprecated()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'sources.source_directory' which has been removed")

	cfg = Default("/p")
	cfg.Sources.TestSourceDirectory = "test"
	assert.Error(t, cfg.CheckDeprecated())
}

func TestClone(t *testing.T) {
	cfg := Default("/p")
	cfg.Project.Modules = []string{"a"}

	clone := cfg.Clone("/p/a")
	clone.Sources.SourceDirectories[0] = "changed"

	assert.Equal(t, "/p/a", clone.BaseDir)
	assert.Equal(t, "a", clone.Project.Name)
	assert.Empty(t, clone.Project.Modules)
	assert.Equal(t, "src/main/java", cfg.Sources.SourceDirectories[0])
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default(dir)
	cfg.Project.Name = "roundtrip"
	cfg.Check.MaxAllowedViolations = 3

	path := filepath.Join(dir, ".sym-checkstyle.yaml")
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(dir, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "roundtrip", loaded.Project.Name)
	assert.Equal(t, 3, loaded.Check.MaxAllowedViolations)
	assert.Equal(t, cfg.Checkstyle.RulesHeader, loaded.Checkstyle.RulesHeader)
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, FindFile(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sym-checkstyle.toml"), []byte("skip = true\n"), 0644))
	assert.Equal(t, filepath.Join(dir, ".sym-checkstyle.toml"), FindFile(dir))

	cfg, err := Load(dir, "", nil)
	require.NoError(t, err)
	assert.True(t, cfg.Skip)
}
