package ruleconfig

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProperties(t *testing.T) {
	input := `# comment
! another comment

checkstyle.header.file = /tmp/LICENSE.txt
max.line:120
spaced value
multi = first \
        second
path=C:\\work\\project
unicode=caf\u00e9
`
	props, err := ParseProperties(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"checkstyle.header.file": "/tmp/LICENSE.txt",
		"max.line":               "120",
		"spaced":                 "value",
		"multi":                  "first second",
		"path":                   `C:\work\project`,
		"unicode":                "café",
	}, props)
}

func TestWriteProperties(t *testing.T) {
	props := map[string]string{
		"b.key":    `C:\dir`,
		"a.key":    "x=y",
		"unicode":  "café",
		"extended": "ā",
		"ref":      "${not.expanded}",
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProperties(&buf, props))
	out := buf.String()

	assert.Less(t, strings.Index(out, "a.key"), strings.Index(out, "b.key"), "sorted by key")
	assert.Contains(t, out, "caf\xe9", "Latin-1 runes are written as single bytes")
	assert.NotContains(t, out, "café")
	assert.Contains(t, out, `\u0101`)

	parsed, err := ParseProperties(&buf)
	require.NoError(t, err)
	assert.Equal(t, props, parsed)
}
