package executor

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/DevSymphony/sym-checkstyle/internal/output"
)

type sink struct {
	path string
	f    afero.File
	w    output.Writer
}

// openSinks creates the result files requested.
func (e *Executor) openSinks(req *Request) ([]*sink, error) {
	var sinks []*sink

	add := func(path, format string) error {
		if err := e.Fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		f, err := e.Fs.Create(path)
		if err != nil {
			return fmt.Errorf("Unable to create output stream: %s: %w", path, err)
		}
		w, err := output.NewWriter(format, f)
		if err != nil {
			_ = f.Close()
			return err
		}
		if sw, ok := w.(*output.SARIFWriter); ok {
			sw.SetEngineVersion(e.runner.EngineVersion())
		}
		sinks = append(sinks, &sink{path: path, f: f, w: w})
		return nil
	}

	if req.OutputFile != "" {
		format := req.OutputFormat
		if format == "" {
			format = output.FormatXML
		}
		if !output.ValidFormat(format) {
			return nil, fmt.Errorf("Invalid output file format: (%s). Must be 'plain', 'sarif' or 'xml'.", format)
		}
		if err := add(req.OutputFile, format); err != nil {
			return nil, err
		}
	}
	if req.XMLFile != "" {
		if err := add(req.XMLFile, output.FormatXML); err != nil {
			_ = closeSinks(sinks)
			return nil, err
		}
	}
	if req.UseFile != "" {
		if err := add(req.UseFile, output.FormatPlain); err != nil {
			_ = closeSinks(sinks)
			return nil, err
		}
	}
	return sinks, nil
}

func closeSinks(sinks []*sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.w.Err(); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %s: %w", s.path, err))
		}
		if err := s.f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
