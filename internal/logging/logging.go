// Package logging builds the zap logger used across the tool and the console
// audit listener that reports events through it.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/DevSymphony/sym-checkstyle/internal/audit"
	"github.com/DevSymphony/sym-checkstyle/internal/output"
)

// New returns a console logger writing to w. Debug messages are enabled when
// verbose is set.
func New(w io.Writer, verbose bool) *zap.SugaredLogger {
	if w == nil {
		w = os.Stderr
	}
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		NameKey:          "logger",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      bracketLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core).Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// ConsoleListener logs every audit event in the plain Checkstyle format.
type ConsoleListener struct {
	log *zap.SugaredLogger
}

// Compile-time interface check
var _ audit.Listener = (*ConsoleListener)(nil)

// NewConsoleListener creates a listener logging to log.
func NewConsoleListener(log *zap.SugaredLogger) *ConsoleListener {
	return &ConsoleListener{log: log}
}

func (c *ConsoleListener) AuditStarted() {
	c.log.Debug("Starting audit...")
}

func (c *ConsoleListener) AuditFinished() {
	c.log.Debug("Audit done.")
}

func (c *ConsoleListener) FileStarted(file string) {
	c.log.Debugf("Processing %s", file)
}

func (c *ConsoleListener) FileFinished(file string) {
	c.log.Debugf("Finished %s", file)
}

func (c *ConsoleListener) AddError(event audit.Event) {
	if event.Severity == audit.SeverityIgnore {
		return
	}
	c.log.Info(output.FormatEvent(event))
}

func (c *ConsoleListener) AddException(file string, err error) {
	c.log.Errorf("Error auditing %s: %v", file, err)
}
