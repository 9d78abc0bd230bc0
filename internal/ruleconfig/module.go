// Package ruleconfig models the Checkstyle configuration tree: nested
// modules, each carrying an ordered set of attributes.
package ruleconfig

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// DefaultHeader is prepended to configuration files written by this tool.
const DefaultHeader = `<?xml version="1.0"?>
<!DOCTYPE module PUBLIC "-//Checkstyle//DTD Checkstyle Configuration 1.3//EN"
        "https://checkstyle.org/dtds/configuration_1_3.dtd">
`

// Attribute is a single configured module property.
type Attribute struct {
	Name  string
	Value string
}

// Module is a node of the Checkstyle configuration tree. Messages holds the
// custom message overrides (key and text) and Metadata the <metadata>
// entries; both are passed through to the engine untouched.
type Module struct {
	Name       string
	Attributes []Attribute
	Messages   []Attribute
	Metadata   []Attribute
	Children   []*Module
}

// Attribute returns the value of the named attribute.
func (m *Module) Attribute(name string) (string, bool) {
	for _, a := range m.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttributeNames returns attribute names in configuration order.
func (m *Module) AttributeNames() []string {
	names := make([]string, 0, len(m.Attributes))
	for _, a := range m.Attributes {
		names = append(names, a.Name)
	}
	return names
}

// OmitIgnored returns a copy of the tree without modules configured with
// severity "ignore". The root is always kept.
func (m *Module) OmitIgnored() *Module {
	clone := &Module{
		Name:       m.Name,
		Attributes: append([]Attribute(nil), m.Attributes...),
		Messages:   append([]Attribute(nil), m.Messages...),
		Metadata:   append([]Attribute(nil), m.Metadata...),
	}
	for _, child := range m.Children {
		if sev, ok := child.Attribute("severity"); ok && strings.EqualFold(sev, "ignore") {
			continue
		}
		clone.Children = append(clone.Children, child.OmitIgnored())
	}
	return clone
}

// Walk calls fn for the module and every descendant, depth first.
func (m *Module) Walk(fn func(*Module)) {
	fn(m)
	for _, child := range m.Children {
		child.Walk(fn)
	}
}

type xmlProperty struct {
	Name    string `xml:"name,attr"`
	Value   string `xml:"value,attr"`
	Default string `xml:"default,attr,omitempty"`
}

type xmlMessage struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

type xmlMetadata struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlModule struct {
	XMLName    xml.Name      `xml:"module"`
	Name       string        `xml:"name,attr"`
	Properties []xmlProperty `xml:"property,omitempty"`
	Metadata   []xmlMetadata `xml:"metadata,omitempty"`
	Messages   []xmlMessage  `xml:"message,omitempty"`
	Modules    []xmlModule   `xml:"module,omitempty"`
}

// Parse reads a Checkstyle XML configuration, expanding ${name} references
// in property values from props.
func Parse(r io.Reader, props map[string]string) (*Module, error) {
	var root xmlModule
	dec := xml.NewDecoder(r)
	dec.Strict = false
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to parse checkstyle configuration: %w", err)
	}
	if root.Name == "" {
		return nil, fmt.Errorf("failed to parse checkstyle configuration: root module has no name")
	}
	return convert(root, props)
}

// Load parses the configuration file at path.
func Load(path string, props map[string]string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Parse(f, props)
}

func convert(x xmlModule, props map[string]string) (*Module, error) {
	m := &Module{Name: x.Name}
	for _, p := range x.Properties {
		value, err := expand(p.Value, p.Default, props)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", x.Name, err)
		}
		m.Attributes = append(m.Attributes, Attribute{Name: p.Name, Value: value})
	}
	for _, md := range x.Metadata {
		m.Metadata = append(m.Metadata, Attribute{Name: md.Name, Value: md.Value})
	}
	for _, msg := range x.Messages {
		m.Messages = append(m.Messages, Attribute{Name: msg.Key, Value: msg.Value})
	}
	for _, c := range x.Modules {
		child, err := convert(c, props)
		if err != nil {
			return nil, err
		}
		m.Children = append(m.Children, child)
	}
	return m, nil
}

var propertyRef = regexp.MustCompile(`\$\{([^}]*)\}`)

// expand replaces ${name} references. An undefined reference falls back to
// the property's default value when one is declared.
func expand(value, def string, props map[string]string) (string, error) {
	var missing string
	out := propertyRef.ReplaceAllStringFunc(value, func(ref string) string {
		name := ref[2 : len(ref)-1]
		if v, ok := props[name]; ok {
			return v
		}
		if missing == "" {
			missing = name
		}
		return ref
	})
	if missing == "" {
		return out, nil
	}
	if def != "" {
		return def, nil
	}
	return "", fmt.Errorf("property ${%s} has not been set", missing)
}

func toXML(m *Module) xmlModule {
	x := xmlModule{Name: m.Name}
	for _, a := range m.Attributes {
		x.Properties = append(x.Properties, xmlProperty{Name: a.Name, Value: a.Value})
	}
	for _, md := range m.Metadata {
		x.Metadata = append(x.Metadata, xmlMetadata{Name: md.Name, Value: md.Value})
	}
	for _, msg := range m.Messages {
		x.Messages = append(x.Messages, xmlMessage{Key: msg.Name, Value: msg.Value})
	}
	for _, c := range m.Children {
		x.Modules = append(x.Modules, toXML(c))
	}
	return x
}

// Marshal renders the tree as a Checkstyle configuration document.
func (m *Module) Marshal() ([]byte, error) {
	content, err := xml.MarshalIndent(toXML(m), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultHeader)
	buf.Write(content)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
