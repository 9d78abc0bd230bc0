package ruleconfig

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/magiconair/properties"
	"golang.org/x/text/encoding/charmap"
)

// ParseProperties reads a Java properties document. The input is decoded as
// ISO-8859-1, like java.util.Properties does, and ${} references are left
// as they are.
func ParseProperties(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties: %w", err)
	}

	loader := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}
	return p.Map(), nil
}

// WriteProperties writes props sorted by key in the ISO-8859-1 form the JVM
// expects. Runes outside Latin-1 are written as \uXXXX escapes.
func WriteProperties(w io.Writer, props map[string]string) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, k := range keys {
		if _, _, err := p.Set(k, props[k]); err != nil {
			return fmt.Errorf("failed to set property %s: %w", k, err)
		}
	}

	// The library escapes runes above Latin-1 but emits the rest as UTF-8.
	var buf bytes.Buffer
	if _, err := p.Write(&buf, properties.ISO_8859_1); err != nil {
		return fmt.Errorf("failed to write properties: %w", err)
	}
	latin1, err := charmap.ISO8859_1.NewEncoder().Bytes(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to encode properties: %w", err)
	}
	_, err = w.Write(latin1)
	return err
}
