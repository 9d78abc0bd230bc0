package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/config"
	"github.com/DevSymphony/sym-checkstyle/internal/executor"
	"github.com/DevSymphony/sym-checkstyle/internal/linter"
	"github.com/DevSymphony/sym-checkstyle/internal/linter/checkstyle"
	"github.com/DevSymphony/sym-checkstyle/internal/project"
)

const (
	srcNeedBraces = "com.puppycrawl.tools.checkstyle.checks.blocks.NeedBracesCheck"
	srcLineLength = "com.puppycrawl.tools.checkstyle.checks.sizes.LineLengthCheck"
	srcJavadoc    = "com.puppycrawl.tools.checkstyle.checks.javadoc.JavadocMethodCheck"
)

// resultXML reports an error, a warning and an info on every file.
func resultXML(files ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<checkstyle version=\"10.26.1\">\n")
	for _, f := range files {
		fmt.Fprintf(&b, "<file name=%q>\n", f)
		fmt.Fprintf(&b, "<error line=\"3\" column=\"9\" severity=\"error\" message=\"'if' construct must use '{}'s.\" source=%q/>\n", srcNeedBraces)
		fmt.Fprintf(&b, "<error line=\"10\" severity=\"warning\" message=\"Line is longer than 80 characters.\" source=%q/>\n", srcLineLength)
		fmt.Fprintf(&b, "<error line=\"1\" severity=\"info\" message=\"Missing a Javadoc comment.\" source=%q/>\n", srcJavadoc)
		b.WriteString("</file>\n")
	}
	b.WriteString("</checkstyle>\n")
	return b.String()
}

type stubRunner struct {
	runs int
}

func (s *stubRunner) Run(_ context.Context, inv checkstyle.Invocation) (*linter.ToolOutput, error) {
	s.runs++
	return &linter.ToolOutput{}, os.WriteFile(inv.OutputFile, []byte(resultXML(inv.Files...)), 0644)
}

func (s *stubRunner) BuiltinConfig(string) ([]byte, error) {
	return []byte(`<module name="Checker"/>`), nil
}

func (s *stubRunner) EngineVersion() string { return "10.26.1" }

func newProject(t *testing.T) *project.Project {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "src/main/java/org/A.java")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("class A {}"), 0644))

	p, err := project.New(config.Default(dir))
	require.NoError(t, err)
	return p
}

func newChecker(runner *stubRunner) (*Checker, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core).Sugar()
	return New(executor.New(runner, log), log), logs
}

func messages(logs *observer.ObservedLogs, level zapcore.Level) []string {
	var out []string
	for _, e := range logs.FilterLevelExact(level).All() {
		out = append(out, e.Message)
	}
	return out
}

func TestCheck_Fails(t *testing.T) {
	p := newProject(t)
	runner := &stubRunner{}
	c, logs := newChecker(runner)

	s, err := c.Check(context.Background(), p)
	require.Error(t, err)

	var verr *ViolationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Count)
	assert.EqualError(t, err, "You have 1 Checkstyle violation.")
	assert.Equal(t, 1, runner.runs)

	require.NotNil(t, s)
	assert.Len(t, s.Violations, 3)
	assert.Equal(t, []string{
		"src/main/java/org/A.java:[3,9] (blocks) NeedBraces: 'if' construct must use '{}'s.",
	}, messages(logs, zapcore.ErrorLevel))
}

func TestCheck_Thresholds(t *testing.T) {
	tests := []struct {
		name      string
		severity  string
		max       int
		fail      bool
		wantErr   string
		wantInfo  string
		wantCount int
	}{
		{"warnings counted", "warning", 0, true, "You have 2 Checkstyle violations.", "", 2},
		{"infos counted", "info", 0, true, "You have 3 Checkstyle violations.", "", 3},
		{"over maximum", "info", 2, true, "You have 3 Checkstyle violations. The maximum number of allowed violations is 2.", "", 3},
		{"within maximum", "info", 3, true, "", "You have 3 Checkstyle violations. The maximum number of allowed violations is 3.", 3},
		{"not failing", "warning", 0, false, "", "You have 2 Checkstyle violations.", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProject(t)
			p.Config.Check.ViolationSeverity = tt.severity
			p.Config.Check.MaxAllowedViolations = tt.max
			p.Config.Check.FailOnViolation = tt.fail
			c, logs := newChecker(&stubRunner{})

			s, err := c.Check(context.Background(), p)
			require.NotNil(t, s)
			assert.Equal(t, tt.wantCount, s.Counted)
			assert.Equal(t, tt.wantCount > tt.max, s.Exceeded())
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, messages(logs, zapcore.InfoLevel), tt.wantInfo)
			if !tt.fail && tt.wantCount > 0 {
				assert.Contains(t, messages(logs, zapcore.WarnLevel), "Violations detected but fail_on_violation is set to false")
			}
		})
	}
}

func TestCheck_Ignore(t *testing.T) {
	p := newProject(t)
	p.Config.Check.ViolationSeverity = "info"
	p.Config.Check.ViolationIgnore = "NeedBraces, javadoc"
	c, logs := newChecker(&stubRunner{})

	s, err := c.Check(context.Background(), p)
	require.Error(t, err)
	assert.Equal(t, 2, s.Ignored)
	assert.Equal(t, 1, s.Counted)

	info := messages(logs, zapcore.InfoLevel)
	assert.Contains(t, info, "Ignored 2 errors, 1 violation remaining.")
	assert.NotContains(t, info, "src/main/java/org/A.java:[1] (javadoc) JavadocMethod: Missing a Javadoc comment.")
	assert.Contains(t, messages(logs, zapcore.WarnLevel), "src/main/java/org/A.java:[10] (sizes) LineLength: Line is longer than 80 characters.")
}

func TestCheck_QuietLogging(t *testing.T) {
	p := newProject(t)
	p.Config.Check.LogViolations = false
	p.Config.Check.LogViolationCount = false
	p.Config.Check.FailOnViolation = false
	c, logs := newChecker(&stubRunner{})

	_, err := c.Check(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, messages(logs, zapcore.ErrorLevel))
	assert.NotContains(t, messages(logs, zapcore.InfoLevel), "You have 1 Checkstyle violation.")
}

func TestCheck_PlainOutputFormat(t *testing.T) {
	p := newProject(t)
	p.Config.Output.Format = "plain"
	c, _ := newChecker(&stubRunner{})

	_, err := c.Check(context.Background(), p)
	require.Error(t, err)
	assert.EqualError(t, err, "You have 1 Checkstyle violation.")

	plain, err := os.ReadFile(p.Config.OutputFilePath())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(plain), "Starting audit..."))
	assert.FileExists(t, filepath.Join(p.Config.BuildDir(), CheckResultFile))
}

func TestCheck_SkipExec(t *testing.T) {
	p := newProject(t)
	p.Config.Check.SkipExec = true
	runner := &stubRunner{}
	c, logs := newChecker(runner)

	s, err := c.Check(context.Background(), p)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Contains(t, messages(logs, zapcore.InfoLevel), "Unable to perform check, unable to find the Checkstyle output file.")

	file := filepath.Join(p.BaseDir, "src/main/java/org/A.java")
	require.NoError(t, os.MkdirAll(p.Config.BuildDir(), 0755))
	require.NoError(t, os.WriteFile(p.Config.OutputFilePath(), []byte(resultXML(file)), 0644))

	_, err = c.Check(context.Background(), p)
	assert.EqualError(t, err, "You have 1 Checkstyle violation.")
	assert.Zero(t, runner.runs)

	p.Config.Output.Format = "sarif"
	_, err = c.Check(context.Background(), p)
	assert.EqualError(t, err, "Output format is 'sarif', check requires format to be 'xml' when using skip_exec.")
}

func TestCheck_Skip(t *testing.T) {
	p := newProject(t)
	p.Config.Skip = true
	runner := &stubRunner{}
	c, _ := newChecker(runner)

	s, err := c.Check(context.Background(), p)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Zero(t, runner.runs)
}

func TestCheck_Deprecated(t *testing.T) {
	p := newProject(t)
	p.Config.Sources.TestSourceDirectory = "src/test"
	c, _ := newChecker(&stubRunner{})

	_, err := c.Check(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sources.test_source_directory")
}

func TestCheck_InvalidResult(t *testing.T) {
	p := newProject(t)
	p.Config.Check.SkipExec = true
	require.NoError(t, os.MkdirAll(p.Config.BuildDir(), 0755))
	require.NoError(t, os.WriteFile(p.Config.OutputFilePath(), []byte(`<checkstyle><file name="A.java"><error line="1" severity="fatal"/></file></checkstyle>`), 0644))
	c, _ := newChecker(&stubRunner{})

	_, err := c.Check(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to read Checkstyle results xml: "+p.Config.OutputFilePath())
}

func TestReadViolations(t *testing.T) {
	doc := resultXML("/work/proj/src/A.java", "/elsewhere/B.java")

	got, err := ReadViolations(strings.NewReader(doc), "/work/proj")
	require.NoError(t, err)
	require.Len(t, got, 6)

	assert.Equal(t, Violation{
		Source:   srcNeedBraces,
		File:     "src/A.java",
		Line:     3,
		Column:   9,
		Severity: audit.SeverityError,
		Message:  "'if' construct must use '{}'s.",
		RuleName: "NeedBraces",
		Category: "blocks",
	}, got[0])
	assert.Equal(t, NoColumn, got[1].Column)
	assert.Equal(t, "/elsewhere/B.java", got[3].File)
}

func TestIsViolation(t *testing.T) {
	tests := []struct {
		severity, threshold audit.Severity
		want                bool
	}{
		{audit.SeverityError, audit.SeverityError, true},
		{audit.SeverityError, audit.SeverityWarning, true},
		{audit.SeverityError, audit.SeverityInfo, true},
		{audit.SeverityWarning, audit.SeverityError, false},
		{audit.SeverityWarning, audit.SeverityWarning, true},
		{audit.SeverityWarning, audit.SeverityInfo, true},
		{audit.SeverityInfo, audit.SeverityWarning, false},
		{audit.SeverityInfo, audit.SeverityInfo, true},
		{audit.SeverityIgnore, audit.SeverityInfo, false},
		{audit.SeverityError, audit.SeverityIgnore, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsViolation(tt.severity, tt.threshold), "%s against %s", tt.severity, tt.threshold)
	}
}

func TestViolationString(t *testing.T) {
	v := Violation{File: "A.java", Line: 4, Column: NoColumn, Category: "misc", RuleName: "TodoComment", Message: "TODO found"}
	assert.Equal(t, "A.java:[4] (misc) TodoComment: TODO found", v.String())

	v.Column = 2
	assert.Equal(t, "A.java:[4,2] (misc) TodoComment: TODO found", v.String())
}
