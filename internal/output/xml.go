package output

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
)

// XMLVersion is the version attribute written on the root element.
const XMLVersion = "4.3"

type xmlFile struct {
	XMLName    xml.Name       `xml:"file"`
	Name       string         `xml:"name,attr"`
	Errors     []xmlError     `xml:"error"`
	Exceptions []xmlException `xml:"exception"`
}

type xmlError struct {
	Line     int    `xml:"line,attr"`
	Column   string `xml:"column,attr,omitempty"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

type xmlException struct {
	Text string `xml:",cdata"`
}

// XMLWriter writes the Checkstyle XML result format. Each file element is
// written when the file finishes.
type XMLWriter struct {
	out     errWriter
	enc     *xml.Encoder
	current *xmlFile
}

// Compile-time interface check
var _ Writer = (*XMLWriter)(nil)

// NewXMLWriter creates an XML writer.
func NewXMLWriter(w io.Writer) *XMLWriter {
	x := &XMLWriter{out: errWriter{w: w}}
	x.enc = xml.NewEncoder(&x.out)
	return x
}

func (x *XMLWriter) AuditStarted() {
	x.out.printf("%s<checkstyle version=\"%s\">\n", xml.Header, XMLVersion)
}

func (x *XMLWriter) AuditFinished() {
	x.out.printf("</checkstyle>\n")
}

func (x *XMLWriter) FileStarted(file string) {
	x.current = &xmlFile{Name: file}
}

func (x *XMLWriter) FileFinished(file string) {
	if x.current == nil {
		x.current = &xmlFile{Name: file}
	}
	if err := x.enc.Encode(x.current); err != nil {
		x.out.setErr(err)
	}
	if err := x.enc.Flush(); err != nil {
		x.out.setErr(err)
	}
	x.out.printf("\n")
	x.current = nil
}

func (x *XMLWriter) AddError(event audit.Event) {
	if event.Severity == audit.SeverityIgnore {
		return
	}
	if x.current == nil {
		x.current = &xmlFile{Name: event.File}
	}
	e := xmlError{
		Line:     event.Line,
		Severity: event.Severity.Name(),
		Message:  event.Message,
		Source:   event.Source,
	}
	if event.Column > 0 {
		e.Column = strconv.Itoa(event.Column)
	}
	x.current.Errors = append(x.current.Errors, e)
}

func (x *XMLWriter) AddException(file string, err error) {
	if x.current == nil {
		x.current = &xmlFile{Name: file}
	}
	x.current.Exceptions = append(x.current.Exceptions, xmlException{Text: err.Error()})
}

// Err returns the first write error.
func (x *XMLWriter) Err() error {
	return x.out.err
}
