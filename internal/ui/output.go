package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charliek/git-preserves/internal/check"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Output handles formatted output to the terminal
type Output struct {
	out     io.Writer
	err     io.Writer
	verbose bool
	json    bool
	styles  styles
}

type styles struct {
	pass  lipgloss.Style
	fail  lipgloss.Style
	glyph lipgloss.Style
	muted lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		pass:  r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		glyph: r.NewStyle().Foreground(lipgloss.Color("3")),
		muted: r.NewStyle().Faint(true),
	}
}

// NewOutput creates a new output handler. Colour is used only when stdout
// is a terminal and NO_COLOR is unset
func NewOutput(verbose, jsonOutput bool) *Output {
	color := IsTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
	return newOutput(os.Stdout, os.Stderr, verbose, jsonOutput, color)
}

// NewOutputWithWriters creates an output handler with custom writers (for testing)
func NewOutputWithWriters(out, err io.Writer, verbose, jsonOutput bool) *Output {
	return newOutput(out, err, verbose, jsonOutput, false)
}

func newOutput(out, err io.Writer, verbose, jsonOutput, color bool) *Output {
	return &Output{
		out:     out,
		err:     err,
		verbose: verbose,
		json:    jsonOutput,
		styles:  newStyles(out, color),
	}
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Println prints a message to stdout with a newline
func (o *Output) Println(args ...interface{}) {
	fmt.Fprintln(o.out, args...)
}

// Printf prints a formatted message to stdout
func (o *Output) Printf(format string, args ...interface{}) {
	fmt.Fprintf(o.out, format, args...)
}

// Error prints an error message to stderr
func (o *Output) Error(format string, args ...interface{}) {
	fmt.Fprintf(o.err, "Error: "+format+"\n", args...)
}

// Warn prints a warning message to stderr
func (o *Output) Warn(format string, args ...interface{}) {
	fmt.Fprintf(o.err, "Warning: "+format+"\n", args...)
}

// Verbose prints a message only if verbose mode is enabled
func (o *Output) Verbose(format string, args ...interface{}) {
	if o.verbose {
		fmt.Fprintf(o.err, format+"\n", args...)
	}
}

// JSON outputs data as JSON
func (o *Output) JSON(data interface{}) error {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// IsJSON returns true if JSON output mode is enabled
func (o *Output) IsJSON() bool {
	return o.json
}

// Status prints a label/value line
func (o *Output) Status(label, value string) {
	fmt.Fprintf(o.out, "%-20s %s\n", label+":", value)
}

// Check prints one doctor-style result line
func (o *Output) Check(label string, err error) {
	if err != nil {
		fmt.Fprintf(o.out, "  %-28s %s %v\n", label, o.styles.fail.Render("FAILED"), err)
		return
	}
	fmt.Fprintf(o.out, "  %-28s %s\n", label, o.styles.pass.Render("OK"))
}

// Table prints a simple table
func (o *Output) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, 0, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				parts = append(parts, cell+strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
			}
		}
		fmt.Fprintln(o.out, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// Summary prints one line per check: a pass/fail mark, the check's glyph
// and its label, plus the offending count for Bad results
func (o *Output) Summary(s check.Summary) {
	for _, it := range s.Items {
		mark := o.styles.pass.Render("✓")
		if !it.Passed {
			mark = o.styles.fail.Render("✗")
		}
		line := fmt.Sprintf("%s %s %s", mark, o.styles.glyph.Render(it.Glyph), it.Label)
		if it.Result.Outcome == check.Bad {
			line += o.styles.muted.Render(fmt.Sprintf(" (%d)", it.Result.Count))
		}
		fmt.Fprintln(o.out, line)
	}
}

// Glyphs prints the glyphs of failing checks on one line, for shell prompts.
// Nothing is printed when every check passed
func (o *Output) Glyphs(s check.Summary) {
	var b strings.Builder
	for _, it := range s.Items {
		if !it.Passed {
			b.WriteString(it.Glyph)
		}
	}
	if b.Len() > 0 {
		fmt.Fprintln(o.out, o.styles.fail.Render(b.String()))
	}
}
