// Package ui provides styled terminal output helpers shared by the
// reposnap commands. Status helpers write to stderr so the document
// stream on stdout stays machine readable.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Renderer is the lipgloss renderer bound to stderr. The color profile
// comes from the environment (NO_COLOR, CLICOLOR_FORCE) and downgrades
// to plain text when stderr is not a terminal.
var Renderer = newRenderer()

func newRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(os.Stderr)
	r.SetColorProfile(termenv.NewOutput(os.Stderr).EnvColorProfile())
	return r
}

// Color palette.
var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// Public styles.
var (
	// StyleTitle for main headings.
	StyleTitle = Renderer.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values such as usernames.
	StyleHighlight = Renderer.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = Renderer.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = Renderer.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = Renderer.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = Renderer.NewStyle().Foreground(colorGreen)

	// StyleError for error messages.
	StyleError = Renderer.NewStyle().Foreground(colorRed)

	// StyleWarning for warning messages.
	StyleWarning = Renderer.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = Renderer.NewStyle().Foreground(colorGreen)
	styleIconError   = Renderer.NewStyle().Foreground(colorRed)
	styleIconWarning = Renderer.NewStyle().Foreground(colorYellow)
	styleIconInfo    = Renderer.NewStyle().Foreground(colorGray)
)

// Icons used for status lines. Exported so commands can compose their
// own listings with the same visual language.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "›"
	IconArrow   = "→"
)

// Success prints a success message.
func Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, styleIconSuccess.Render(IconSuccess)+" "+msg)
}

// Error prints an error message.
func Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, styleIconError.Render(IconError)+" "+msg)
}

// Warning prints a warning message.
func Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, styleIconWarning.Render(IconWarning)+" "+StyleWarning.Render(msg))
}

// Info prints an info/status message.
func Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, styleIconInfo.Render(IconInfo)+" "+msg)
}

// Detail prints an indented detail line.
func Detail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, "  "+StyleDim.Render(msg))
}

// File prints a file output line.
func File(path string) {
	fmt.Fprintln(os.Stderr, "  "+StyleDim.Render(IconArrow)+" "+StyleValue.Render(path))
}

// Newline prints an empty line.
func Newline() {
	fmt.Fprintln(os.Stderr)
}
