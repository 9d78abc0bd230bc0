// Package locator resolves configuration, header, suppression and property
// locations to files Checkstyle can read.
package locator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// NotFoundError reports a location that could not be resolved.
type NotFoundError struct {
	Location string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unable to find resource %q", e.Location)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Resource is a resolved location.
type Resource struct {
	// Path is a local file, or the bundled name when Builtin is set.
	Path string

	// Builtin marks configurations shipped inside the Checkstyle JAR.
	Builtin bool
}

// Locator resolves locations against a base directory. Remote resources are
// downloaded into OutputDir.
type Locator struct {
	BaseDir   string
	OutputDir string
	Client    *http.Client

	// IsBuiltin reports locations served from the engine itself.
	IsBuiltin func(location string) bool

	fs afero.Fs
}

// New creates a locator on the OS filesystem.
func New(baseDir, outputDir string) *Locator {
	return NewWithFs(afero.NewOsFs(), baseDir, outputDir)
}

// NewWithFs creates a locator on fs.
func NewWithFs(fs afero.Fs, baseDir, outputDir string) *Locator {
	return &Locator{
		BaseDir:   baseDir,
		OutputDir: outputDir,
		Client:    http.DefaultClient,
		fs:        fs,
	}
}

// Resolve resolves location. name is the file name used when the resource
// has to be copied into OutputDir.
func (l *Locator) Resolve(ctx context.Context, location, name string) (Resource, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Resource{}, &NotFoundError{Location: location}
	}

	if l.IsBuiltin != nil && l.IsBuiltin(location) {
		return Resource{Path: location, Builtin: true}, nil
	}

	if u, err := url.Parse(location); err == nil && len(u.Scheme) > 1 {
		switch u.Scheme {
		case "file":
			return l.resolveFile(location, filepath.FromSlash(u.Path))
		case "http", "https":
			path, err := l.download(ctx, location, name)
			if err != nil {
				return Resource{}, &NotFoundError{Location: location, Err: err}
			}
			return Resource{Path: path}, nil
		}
	}

	return l.resolveFile(location, location)
}

// ResolveOptional is like Resolve but returns an empty resource when the
// location does not exist.
func (l *Locator) ResolveOptional(ctx context.Context, location, name string) (Resource, error) {
	if strings.TrimSpace(location) == "" {
		return Resource{}, nil
	}
	r, err := l.Resolve(ctx, location, name)
	if IsNotFound(err) {
		return Resource{}, nil
	}
	return r, err
}

func (l *Locator) resolveFile(location, path string) (Resource, error) {
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	info, err := l.fs.Stat(path)
	if err != nil {
		return Resource{}, &NotFoundError{Location: location, Err: err}
	}
	if info.IsDir() {
		return Resource{}, &NotFoundError{Location: location, Err: fmt.Errorf("%s is a directory", path)}
	}
	return Resource{Path: path}, nil
}

func (l *Locator) download(ctx context.Context, location, name string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", err
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	if name == "" {
		name = filepath.Base(resp.Request.URL.Path)
	}
	if err := l.fs.MkdirAll(l.OutputDir, 0755); err != nil {
		return "", err
	}
	dest := filepath.Join(l.OutputDir, name)

	f, err := l.fs.Create(dest)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return "", err
	}
	return dest, f.Close()
}
