package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionWidth is the width of the dashed section banners
const SectionWidth = 40

// Logo is printed at the top of interactive runs
const Logo = `
 __   __ _  __  ___             _
 \ \ / /| |/ / | _ ) __ _  __ | |__ _  _  _ __
  \ V / | ' <  | _ \/ _' |/ _|| / /| || || '_ \
   \_/  |_|\_\ |___/\__,_|\__||_\_\ \_,_|| .__/
                                         |_|
      VK photos  ->  Yandex Disk
`

var (
	palette = struct {
		blue, green, red, yellow, cyan, magenta, dim lipgloss.Color
	}{
		blue:    lipgloss.Color("12"),
		green:   lipgloss.Color("10"),
		red:     lipgloss.Color("9"),
		yellow:  lipgloss.Color("11"),
		cyan:    lipgloss.Color("14"),
		magenta: lipgloss.Color("13"),
		dim:     lipgloss.Color("8"),
	}

	out    io.Writer = os.Stdout
	styles           = newStyles(lipgloss.NewRenderer(os.Stdout))
)

type styleSet struct {
	section   lipgloss.Style
	err       lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	highlight lipgloss.Style
	prompt    lipgloss.Style
	dim       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styleSet {
	return styleSet{
		section:   r.NewStyle().Foreground(palette.blue).Bold(true),
		err:       r.NewStyle().Foreground(palette.red).Bold(true),
		success:   r.NewStyle().Foreground(palette.green),
		warning:   r.NewStyle().Foreground(palette.yellow),
		label:     r.NewStyle().Foreground(palette.cyan),
		value:     r.NewStyle().Foreground(palette.yellow),
		highlight: r.NewStyle().Foreground(palette.magenta),
		prompt:    r.NewStyle().Foreground(palette.green).Bold(true),
		dim:       r.NewStyle().Foreground(palette.dim),
	}
}

// SetOutput redirects all printing to w. Colors follow what w supports,
// so a plain buffer gets uncolored text.
func SetOutput(w io.Writer) {
	out = w
	styles = newStyles(lipgloss.NewRenderer(w))
}

// Output returns the current writer
func Output() io.Writer {
	return out
}

// Section prints a title centered in a dashed rule:
// "---------------Starting---------------"
func Section(title string) {
	rule := lipgloss.PlaceHorizontal(SectionWidth, lipgloss.Center, title,
		lipgloss.WithWhitespaceChars("-"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.section.Render(rule))
}

// PrintLogo prints the application banner
func PrintLogo() {
	fmt.Fprint(out, styles.label.Render(Logo))
	fmt.Fprintln(out)
}

// PrintError prints an error message in red, with an optional cause
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	fmt.Fprintln(out, styles.err.Render(msg))
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	fmt.Fprintln(out, styles.success.Render(msg))
}

// PrintInfo prints "label: value"
func PrintInfo(label string, value string) {
	fmt.Fprintf(out, "%s: %s\n", styles.label.Render(label), styles.value.Render(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	fmt.Fprintln(out, styles.warning.Render(msg))
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	fmt.Fprintln(out, styles.highlight.Render(msg))
}

// PrintList prints one line per item, dimmed when the list is empty
func PrintList(lines []string) {
	if len(lines) == 0 {
		fmt.Fprintln(out, styles.dim.Render("(empty)"))
		return
	}
	fmt.Fprintln(out, strings.Join(lines, "\n"))
}
