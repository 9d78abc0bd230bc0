package ruleconfig

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMultipleRoots is returned for inline rules with more than one root.
var ErrMultipleRoots = errors.New("Currently only one root module is supported")

// InlineDocument validates an inline rule fragment and returns it as a
// complete configuration document starting with header. The fragment must
// hold exactly one root module.
func InlineDocument(header, fragment string) ([]byte, error) {
	fragment = strings.TrimSpace(fragment)
	dec := xml.NewDecoder(strings.NewReader("<rules>" + fragment + "</rules>"))

	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse inline rules: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 1 && t.Name.Local == "module" {
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	switch {
	case roots == 0:
		return nil, fmt.Errorf("failed to parse inline rules: no root module")
	case roots > 1:
		return nil, ErrMultipleRoots
	}
	return []byte(header + fragment + "\n"), nil
}
