package ui

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Progress tracks completion of a fixed number of steps.
type Progress interface {
	Increment(n int)
	Complete()
}

// NewProgress returns a progress bar on stderr when enabled and stderr is a
// terminal, otherwise a no-op.
func NewProgress(enabled bool, description string, total int) Progress {
	if !enabled || total <= 1 || !term.IsTerminal(int(os.Stderr.Fd())) {
		return noopProgress{}
	}
	return newBar(os.Stderr, description, total)
}

func newBar(w io.Writer, description string, total int) *barProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
	)
	return &barProgress{bar: bar}
}

type barProgress struct {
	bar *progressbar.ProgressBar
}

func (p *barProgress) Increment(n int) {
	_ = p.bar.Add(n)
}

func (p *barProgress) Complete() {
	_ = p.bar.Finish()
}

type noopProgress struct{}

func (noopProgress) Increment(int) {}
func (noopProgress) Complete()     {}
