// Package output writes audit events to result files in the formats
// Checkstyle supports.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
)

// Supported output formats.
const (
	FormatXML   = "xml"
	FormatPlain = "plain"
	FormatSARIF = "sarif"
)

// Writer is an audit listener that serialises events to an io.Writer.
// Write failures are remembered and reported by Err.
type Writer interface {
	audit.Listener
	Err() error
}

// NewWriter returns the writer for format.
func NewWriter(format string, w io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatXML:
		return NewXMLWriter(w), nil
	case FormatPlain:
		return NewPlainWriter(w), nil
	case FormatSARIF:
		return NewSARIFWriter(w), nil
	default:
		return nil, fmt.Errorf("Invalid output file format: (%s). Must be 'plain', 'sarif' or 'xml'.", format)
	}
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatXML, FormatPlain, FormatSARIF:
		return true
	}
	return false
}

// errWriter keeps the first write error and drops every write after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) setErr(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Write implements io.Writer so the encoder shares the error state.
func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
