package checkstyle

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
)

// Decode streams a Checkstyle XML result document into l. Only file level
// callbacks are fired; AuditStarted and AuditFinished are left to the caller
// so that several documents can feed one audit.
func Decode(r io.Reader, l audit.Listener) error {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var file string
	inFile := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to parse checkstyle output: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "file":
				file = attr(t, "name")
				inFile = true
				l.FileStarted(file)
			case "error":
				event, err := decodeError(t, file)
				if err != nil {
					return err
				}
				l.AddError(event)
			case "exception":
				var body string
				if err := dec.DecodeElement(&body, &t); err != nil {
					return fmt.Errorf("failed to parse checkstyle output: %w", err)
				}
				l.AddException(file, errors.New(body))
			}
		case xml.EndElement:
			if t.Name.Local == "file" && inFile {
				l.FileFinished(file)
				inFile = false
			}
		}
	}
	return nil
}

func decodeError(t xml.StartElement, file string) (audit.Event, error) {
	severity, err := audit.ParseSeverity(attr(t, "severity"))
	if err != nil {
		return audit.Event{}, fmt.Errorf("failed to parse checkstyle output: %w", err)
	}
	return audit.Event{
		File:     file,
		Line:     atoi(attr(t, "line")),
		Column:   atoi(attr(t, "column")),
		Severity: severity,
		Message:  attr(t, "message"),
		Source:   attr(t, "source"),
	}, nil
}

func attr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
