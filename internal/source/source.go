// Package source discovers the files a Checkstyle run audits.
package source

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Default patterns.
const (
	JavaFiles       = "**/*.java"
	PropertiesFiles = "**/*.properties"
)

// DefaultExcludes are skipped in every directory.
var DefaultExcludes = []string{
	"**/.git/**",
	"**/.svn/**",
	"**/.hg/**",
	"**/CVS/**",
	"**/.DS_Store",
	"**/*~",
}

// Options selects the directories and patterns to scan.
type Options struct {
	SourceDirs         []string
	TestSourceDirs     []string
	IncludeTestSources bool

	// Includes and Excludes are comma separated Ant patterns for sources.
	Includes string
	Excludes string

	ResourceDirs         []string
	TestResourceDirs     []string
	IncludeResources     bool
	IncludeTestResources bool
	ResourceIncludes     string
	ResourceExcludes     string

	// ExcludeGeneratedSources skips source directories under BuildDir.
	ExcludeGeneratedSources bool
	BuildDir                string
}

// SplitPatterns splits a comma separated pattern list. Patterns ending with
// a slash match everything below that directory.
func SplitPatterns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = filepath.ToSlash(p)
		if strings.HasSuffix(p, "/") {
			p += "**"
		}
		out = append(out, p)
	}
	return out
}

type scan struct {
	dir      string
	includes []string
	excludes []string
}

// Collect returns the sorted, de-duplicated files selected by opts.
// Directories that do not exist are skipped.
func Collect(ctx context.Context, fs afero.Fs, opts Options) ([]string, error) {
	var scans []scan

	includes := SplitPatterns(opts.Includes)
	if len(includes) == 0 {
		includes = []string{JavaFiles}
	}
	excludes := SplitPatterns(opts.Excludes)

	sourceDirs := opts.SourceDirs
	if opts.IncludeTestSources {
		sourceDirs = append(append([]string(nil), sourceDirs...), opts.TestSourceDirs...)
	}
	for _, dir := range sourceDirs {
		if opts.ExcludeGeneratedSources && IsUnder(dir, opts.BuildDir) {
			continue
		}
		scans = append(scans, scan{dir: dir, includes: includes, excludes: excludes})
	}

	resIncludes := SplitPatterns(opts.ResourceIncludes)
	if len(resIncludes) == 0 {
		resIncludes = []string{PropertiesFiles}
	}
	resExcludes := SplitPatterns(opts.ResourceExcludes)
	if opts.IncludeResources {
		for _, dir := range opts.ResourceDirs {
			scans = append(scans, scan{dir: dir, includes: resIncludes, excludes: resExcludes})
		}
	}
	if opts.IncludeTestResources {
		for _, dir := range opts.TestResourceDirs {
			scans = append(scans, scan{dir: dir, includes: resIncludes, excludes: resExcludes})
		}
	}

	var (
		mu    sync.Mutex
		found = make(map[string]struct{})
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range scans {
		g.Go(func() error {
			files, err := Scan(ctx, fs, s.dir, s.includes, s.excludes)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, f := range files {
				found[f] = struct{}{}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(found))
	for f := range found {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

// Scan walks dir and returns the files whose slash separated relative path
// matches an include and no exclude.
func Scan(ctx context.Context, fs afero.Fs, dir string, includes, excludes []string) ([]string, error) {
	if !DirExists(fs, dir) {
		return nil, nil
	}
	excludes = append(append([]string(nil), excludes...), DefaultExcludes...)

	var files []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchAny(includes, rel) && !matchAny(excludes, rel) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// DirExists reports whether dir is an existing directory.
func DirExists(fs afero.Fs, dir string) bool {
	if dir == "" {
		return false
	}
	ok, err := afero.DirExists(fs, dir)
	return err == nil && ok
}

// IsUnder reports whether path lies inside dir.
func IsUnder(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
