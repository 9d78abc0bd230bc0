package ui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Bold   = "\033[1m"
)

// isTTY checks if stdout is a terminal
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// colorize applies color only if output is a TTY
func colorize(color, msg string) string {
	if !isTTY() {
		return msg
	}
	return color + msg + Reset
}

// OK formats a success message with [OK] prefix in green
func OK(msg string) string {
	return fmt.Sprintf("%s %s", colorize(Green, "[OK]"), msg)
}

// Error formats an error message with [ERROR] prefix in red
func Error(msg string) string {
	return fmt.Sprintf("%s %s", colorize(Red, "[ERROR]"), msg)
}

// Warn formats a warning message with [WARN] prefix in yellow
func Warn(msg string) string {
	return fmt.Sprintf("%s %s", colorize(Yellow, "[WARN]"), msg)
}

// TitleWithDesc formats a section title with description
func TitleWithDesc(title, desc string) string {
	return fmt.Sprintf("%s %s", colorize(Bold+Cyan, fmt.Sprintf("[%s]", title)), desc)
}

// Done formats a completion message with [DONE] prefix in green
func Done(msg string) string {
	return fmt.Sprintf("%s %s", colorize(Green+Bold, "[DONE]"), msg)
}

// SeverityCounts formats violation counts, coloring the non-zero ones.
func SeverityCounts(errors, warnings, infos int) string {
	count := func(color string, n int, label string) string {
		s := fmt.Sprintf("%d %s", n, label)
		if n == 0 {
			return s
		}
		return colorize(color, s)
	}
	return fmt.Sprintf("%s, %s, %s",
		count(Red, errors, "errors"),
		count(Yellow, warnings, "warnings"),
		count(Blue, infos, "infos"))
}

// PrintOK prints a success message
func PrintOK(msg string) {
	fmt.Println(OK(msg))
}

// PrintError prints an error message
func PrintError(msg string) {
	fmt.Println(Error(msg))
}

// PrintWarn prints a warning message
func PrintWarn(msg string) {
	fmt.Println(Warn(msg))
}

// PrintTitle prints a section title
func PrintTitle(title, desc string) {
	fmt.Println(TitleWithDesc(title, desc))
}

// PrintDone prints a completion message
func PrintDone(msg string) {
	fmt.Println(Done(msg))
}

// Indent returns the message with indentation
func Indent(msg string) string {
	return "     " + msg
}

// PrintIndent prints an indented message
func PrintIndent(msg string) {
	fmt.Println(Indent(msg))
}
