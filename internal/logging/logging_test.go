package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
)

func TestNew_Format(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Info("Audit done.")
	log.Warn("careful")
	log.Debug("hidden")

	assert.Equal(t, "[INFO] Audit done.\n[WARN] careful\n", buf.String())
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debug("shown")

	assert.Equal(t, "[DEBUG] shown\n", buf.String())
}

func TestConsoleListener(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewConsoleListener(zap.New(core).Sugar())

	l.AuditStarted()
	l.FileStarted("A.java")
	l.AddError(audit.Event{
		File:     "A.java",
		Line:     2,
		Column:   1,
		Severity: audit.SeverityError,
		Message:  "Missing a Javadoc comment.",
		Source:   "com.puppycrawl.tools.checkstyle.checks.javadoc.MissingJavadocMethodCheck",
	})
	l.AddError(audit.Event{File: "A.java", Severity: audit.SeverityIgnore})
	l.AddException("A.java", errors.New("boom"))
	l.FileFinished("A.java")
	l.AuditFinished()

	infos := logs.FilterLevelExact(zapcore.InfoLevel).All()
	if assert.Len(t, infos, 1) {
		assert.Equal(t, "[ERROR] A.java:2:1: Missing a Javadoc comment. [MissingJavadocMethod]", infos[0].Message)
	}
	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, "Error auditing A.java: boom", errs[0].Message)
	}
}
