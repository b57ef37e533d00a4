package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of CLI content. With color enabled the text is
// colorized; otherwise open and close are wrapped around it.
type Formatter struct {
	color *color.Color
	open  string
	close string
}

func newFormatter(attr color.Attribute, open, close string) Formatter {
	return Formatter{color: color.New(attr), open: open, close: close}
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.open + text + f.close
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor reports whether color output is disabled, either through
// NO_COLOR (https://no-color.org/) or fatih/color's terminal detection.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats runnable commands. `backticks` without color.
	Code = newFormatter(color.FgYellow, "`", "`")

	// Path formats file and directory paths.
	Path = newFormatter(color.FgYellow, "", "")

	// Flag formats CLI flags like --keep.
	Flag = newFormatter(color.FgYellow, "", "")

	Success = newFormatter(color.FgGreen, "", "")
	Error   = newFormatter(color.FgRed, "", "")
	Warning = newFormatter(color.FgYellow, "", "")
	Info    = newFormatter(color.FgCyan, "", "")

	// Highlight formats user supplied values such as KDF modes and key names.
	// 'single quotes' without color.
	Highlight = newFormatter(color.FgCyan, "'", "'")

	// Muted formats secondary text. (parentheses) without color.
	Muted = newFormatter(color.FgHiBlack, "(", ")")
)
