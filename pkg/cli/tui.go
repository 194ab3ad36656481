package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of status lines.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Warn    lipgloss.Color
	Error   lipgloss.Color
	Dim     lipgloss.Color // Dimmed/help text color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Warn:    lipgloss.Color("#ffb86c"),
	Error:   lipgloss.Color("#ff5555"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Label   lipgloss.Style
	Dim     lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Success: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Info:    lipgloss.NewStyle().Foreground(t.Primary),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(t.Warn),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Label:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Dim:     lipgloss.NewStyle().Foreground(t.Dim),
	}
}

var styles = NewStyles(DefaultTheme)

// Printer writes styled status lines.
type Printer struct {
	Out    io.Writer
	Err    io.Writer
	Styles Styles
}

// Std returns a Printer on stdout and stderr with the default theme.
func Std() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr, Styles: styles}
}

// Success prints a success message with checkmark
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.Out, p.Styles.Success.Render("✓")+" "+fmt.Sprintf(format, args...))
}

// Info prints an info message
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.Out, p.Styles.Info.Render("ℹ")+" "+fmt.Sprintf(format, args...))
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.Err, p.Styles.Warning.Render("⚠")+" "+fmt.Sprintf(format, args...))
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.Err, p.Styles.Error.Render("Error:")+" "+fmt.Sprintf(format, args...))
}

// Field prints an aligned "label: value" line.
func (p *Printer) Field(label string, value any) {
	fmt.Fprintf(p.Out, "  %s %v\n", p.Styles.Label.Width(10).Render(label+":"), value)
}

// Hint prints dimmed help text.
func (p *Printer) Hint(format string, args ...any) {
	fmt.Fprintln(p.Err, p.Styles.Dim.Render(fmt.Sprintf(format, args...)))
}

// PrintSuccess prints a success message with checkmark
func PrintSuccess(format string, args ...any) { Std().Success(format, args...) }

// PrintInfo prints an info message
func PrintInfo(format string, args ...any) { Std().Info(format, args...) }

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...any) { Std().Warning(format, args...) }

// PrintError prints an error message to stderr
func PrintError(format string, args ...any) { Std().Error(format, args...) }

// PrintHint prints dimmed help text to stderr
func PrintHint(format string, args ...any) { Std().Hint(format, args...) }
