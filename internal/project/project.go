// Package project models a (possibly multi-module) project tree.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/DevSymphony/sym-checkstyle/internal/config"
)

// Project is one directory with its configuration and sub-modules.
type Project struct {
	Name    string
	BaseDir string
	Config  *config.Config
	Modules []*Project
}

// Load loads the project in baseDir and its modules. configPath and flags
// apply to the root project only; modules read their own project file or
// inherit the parent configuration.
func Load(baseDir, configPath string, flags *pflag.FlagSet) (*Project, error) {
	cfg, err := config.Load(baseDir, configPath, flags)
	if err != nil {
		return nil, err
	}
	return build(cfg, map[string]bool{})
}

// New wraps an already loaded configuration.
func New(cfg *config.Config) (*Project, error) {
	return build(cfg, map[string]bool{})
}

func build(cfg *config.Config, seen map[string]bool) (*Project, error) {
	if seen[cfg.BaseDir] {
		return nil, fmt.Errorf("module cycle at %s", cfg.BaseDir)
	}
	seen[cfg.BaseDir] = true

	p := &Project{
		Name:    cfg.Project.Name,
		BaseDir: cfg.BaseDir,
		Config:  cfg,
	}

	for _, m := range cfg.Project.Modules {
		dir := cfg.Resolve(m)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("module %q of %s is not a directory", m, p.Name)
		}

		var modCfg *config.Config
		if file := config.FindFile(dir); file != "" {
			modCfg, err = config.Load(dir, file, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to load module %s: %w", m, err)
			}
		} else {
			modCfg = cfg.Clone(filepath.Clean(dir))
		}

		child, err := build(modCfg, seen)
		if err != nil {
			return nil, err
		}
		p.Modules = append(p.Modules, child)
	}
	return p, nil
}

// Reactor returns p followed by every module, depth first.
func (p *Project) Reactor() []*Project {
	out := []*Project{p}
	for _, m := range p.Modules {
		out = append(out, m.Reactor()...)
	}
	return out
}

// IsAggregator reports whether the project has modules.
func (p *Project) IsAggregator() bool {
	return len(p.Modules) > 0
}
