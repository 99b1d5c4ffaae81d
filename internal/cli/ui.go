package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all user-facing status lines. Tests swap it out.
var stdout io.Writer = os.Stdout

// Palette, ANSI 256.
var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// marker is a one-glyph line prefix.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = marker{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = marker{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markInfo    = marker{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (m marker) println(format string, args ...any) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { markSuccess.println(format, args...) }
func printError(format string, args ...any)   { markError.println(format, args...) }
func printInfo(format string, args ...any)    { markInfo.println(format, args...) }

// printDetail prints an indented muted line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarizes a scene on one line, e.g.
// "2 sections · 8 items · cached".
func printStats(sections, items int, cached bool) {
	status := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		status = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}
	parts := []string{
		StyleDim.Render(plural(sections, "section")),
		StyleDim.Render(plural(items, "item")),
		status,
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
