package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	word    lipgloss.Style
	label   lipgloss.Style
	elapsed lipgloss.Style
	warn    lipgloss.Style
	prompt  lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{word: plain, label: plain, elapsed: plain, warn: plain, prompt: plain}
	}
	return styles{
		word: lipgloss.NewStyle().Italic(true).Underline(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		elapsed: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"}),
		warn: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
		prompt: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#56949f", Dark: "#31748f"}),
	}
}

// RenderResult prints the words of r, columns per row, followed by the
// total and the elapsed time.
func RenderResult(out io.Writer, r *solver.Result, columns int, color bool) error {
	return renderResult(out, r, columns, newStyles(color))
}

func renderResult(out io.Writer, r *solver.Result, columns int, st styles) error {
	if columns < 1 {
		columns = 1
	}
	width := 0
	for _, w := range r.Words {
		width = max(width, len(w))
	}

	var b strings.Builder
	for i, w := range r.Words {
		b.WriteString(st.word.Render(w))
		if (i+1)%columns == 0 || i == len(r.Words)-1 {
			b.WriteByte('\n')
			continue
		}
		// pad outside the style so underlines stop at the word
		b.WriteString(strings.Repeat(" ", width-len(w)+2))
	}
	fmt.Fprintf(&b, "%s %s\n", st.label.Render("Total words found:"), utils.FormatWithCommas(r.Count))
	fmt.Fprintf(&b, "%s %s\n", st.elapsed.Render("Time Elapsed:"), r.Elapsed.Round(10*time.Microsecond))

	_, err := io.WriteString(out, b.String())
	return err
}
