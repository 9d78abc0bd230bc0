package config

import (
	"path/filepath"
)

// Resolve returns p made absolute against the base directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// ResolveAll resolves every path in ps.
func (c *Config) ResolveAll(ps []string) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		if p != "" {
			out = append(out, c.Resolve(p))
		}
	}
	return out
}

// BuildDir returns the absolute build directory.
func (c *Config) BuildDir() string {
	return c.Resolve(c.BuildDirectory)
}

func (c *Config) inBuildDir(p, def string) string {
	if p == "" {
		return filepath.Join(c.BuildDir(), def)
	}
	return c.Resolve(p)
}

// OutputFilePath returns the result file.
func (c *Config) OutputFilePath() string {
	return c.inBuildDir(c.Output.File, "checkstyle-result.xml")
}

// RulesFilePath returns the file inline rules are written to.
func (c *Config) RulesFilePath() string {
	return c.inBuildDir(c.Checkstyle.RulesFile, "checkstyle-rules.xml")
}

// CacheFilePath returns the engine cache file.
func (c *Config) CacheFilePath() string {
	return c.inBuildDir(c.Checkstyle.CacheFile, "checkstyle-cachefile")
}

// UseFilePath returns the plain copy of the console output, or "".
func (c *Config) UseFilePath() string {
	return c.Resolve(c.Output.UseFile)
}

// ReportDir returns the HTML report directory.
func (c *Config) ReportDir() string {
	return c.inBuildDir(c.Report.OutputDirectory, "site")
}

// XRefDir returns the source cross reference directory.
func (c *Config) XRefDir() string {
	if c.Report.XRefLocation != "" {
		return c.Resolve(c.Report.XRefLocation)
	}
	return filepath.Join(c.ReportDir(), "xref")
}

// XRefTestDir returns the test source cross reference directory.
func (c *Config) XRefTestDir() string {
	if c.Report.XRefTestLocation != "" {
		return c.Resolve(c.Report.XRefTestLocation)
	}
	return filepath.Join(c.ReportDir(), "xref-test")
}

// SourceDirs returns the absolute source directories.
func (c *Config) SourceDirs() []string {
	return c.ResolveAll(c.Sources.SourceDirectories)
}

// TestSourceDirs returns the absolute test source directories.
func (c *Config) TestSourceDirs() []string {
	return c.ResolveAll(c.Sources.TestSourceDirectories)
}
