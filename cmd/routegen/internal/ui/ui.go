// Package ui prints the wizard banners and the generation report.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/recera/routegen/cmd/routegen/internal/emitter"
	"github.com/recera/routegen/cmd/routegen/internal/template"
	"github.com/recera/routegen/cmd/routegen/internal/wizard"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#3b82f6")
	secondaryColor = lipgloss.Color("#64748b")
	successColor   = lipgloss.Color("#10b981")
	warningColor   = lipgloss.Color("#f59e0b")
	errorColor     = lipgloss.Color("#ef4444")
	mutedColor     = lipgloss.Color("#94a3b8")
)

// Styles holds the lipgloss styles used by a Printer.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Step     lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Key      lipgloss.Style
	Box      lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primaryColor),
		Subtitle: lipgloss.NewStyle().Foreground(secondaryColor),
		Step:     lipgloss.NewStyle().Foreground(primaryColor).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(successColor).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(warningColor),
		Error:    lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(mutedColor),
		Key:      lipgloss.NewStyle().Foreground(primaryColor),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1),
	}
}

// PlainStyles returns styles that add no escape sequences.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain,
		Subtitle: plain,
		Step:     plain,
		Success:  plain,
		Warning:  plain,
		Error:    plain,
		Muted:    plain,
		Key:      plain,
		Box:      plain,
	}
}

// Printer writes human readable progress and results.
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter creates a Printer. Colors are only used when color is set.
func NewPrinter(w io.Writer, color bool) *Printer {
	styles := PlainStyles()
	if color {
		styles = DefaultStyles()
	}
	return &Printer{w: w, styles: styles}
}

// Intro prints the greeting shown before the first question.
func (p *Printer) Intro() {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Title.Render("🚀 Route Generator"))
	fmt.Fprintln(p.w, p.styles.Subtitle.Render("Create a new API route handler"))
	fmt.Fprintln(p.w, p.styles.Muted.Render("ctrl+c to cancel at any step"))
}

// Banner announces the active step.
func (p *Printer) Banner(step wizard.Step, position, total int) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Step.Render(fmt.Sprintf("Step %d/%d · %s", position, total, step.Title())))
}

// Success reports a written (or previewed) file.
func (p *Printer) Success(res emitter.Result) {
	ms := float64(res.Elapsed.Microseconds()) / 1000
	if res.DryRun {
		fmt.Fprintf(p.w, "\n%s %s %s\n",
			p.styles.Warning.Render("📝 Dry run:"),
			res.Path,
			p.styles.Muted.Render(fmt.Sprintf("(rendered in %.2fms, nothing written)", ms)),
		)
		fmt.Fprintln(p.w, p.styles.Box.Render(strings.TrimRight(res.Content, "\n")))
		return
	}
	fmt.Fprintf(p.w, "\n%s %s %s\n",
		p.styles.Success.Render("✅ Created"),
		res.Path,
		p.styles.Muted.Render(fmt.Sprintf("in %.2fms", ms)),
	)
}

// Failure reports an emission error for route.
func (p *Printer) Failure(route string, err error) {
	fmt.Fprintf(p.w, "\n%s %v\n",
		p.styles.Error.Render(fmt.Sprintf("❌ Failed to generate route %q:", route)),
		err,
	)
}

// Cancelled reports a user abort.
func (p *Printer) Cancelled() {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Warning.Render("Operation cancelled."))
}

// Outro closes the session, ok tells whether a file was produced.
func (p *Printer) Outro(ok bool) {
	if ok {
		fmt.Fprintln(p.w, p.styles.Success.Render("✨ Route generation complete!"))
		return
	}
	fmt.Fprintln(p.w, p.styles.Error.Render("Route generation failed."))
}

// Error prints a top-level error.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.w, "%s %v\n", p.styles.Error.Render("Error:"), err)
}

// Templates lists the built-in templates.
func (p *Printer) Templates(defs []template.Definition) {
	width := 0
	for _, d := range defs {
		if len(d.Key) > width {
			width = len(d.Key)
		}
	}
	for _, d := range defs {
		fmt.Fprintf(p.w, "  %s  %s %s\n",
			p.styles.Key.Render(fmt.Sprintf("%-*s", width, d.Key)),
			d.Name,
			p.styles.Muted.Render("- "+d.Description),
		)
	}
}

// Info prints one neutral line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// IsTerminal reports whether f is attached to a character device.
func IsTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
