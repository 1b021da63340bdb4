package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/cetheme/internal/model"
)

// SwatchFormatter prints each theme name followed by its colour table
// rendered as coloured cells.
type SwatchFormatter struct {
	opts  FormatterOptions
	name  lipgloss.Style
	label lipgloss.Style
}

// NewSwatchFormatter creates a new swatch formatter.
func NewSwatchFormatter(opts FormatterOptions) *SwatchFormatter {
	return &SwatchFormatter{
		opts:  opts,
		name:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Format writes one block per theme.
func (f *SwatchFormatter) Format(w io.Writer, themes []model.Theme) error {
	if len(themes) == 0 {
		_, err := fmt.Fprintln(w, NoThemesMessage)
		return err
	}

	for i := range themes {
		t := &themes[i]
		header := f.name.Render(displayName(t)) + " " + f.label.Render(t.Key)
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}

		colors := t.ConsoleColors()
		if f.opts.AllColors {
			colors = t.Colors
		}
		if len(colors) == 0 {
			if _, err := fmt.Fprintln(w, f.label.Render("  no colour table")); err != nil {
				return err
			}
			continue
		}

		// Eight cells per row, matching the normal/bright split of the console palette.
		for start := 0; start < len(colors); start += 8 {
			end := min(start+8, len(colors))
			if _, err := fmt.Fprintln(w, "  "+renderRow(colors[start:end])); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderRow(colors []model.Color) string {
	cells := make([]string, 0, len(colors))
	for _, c := range colors {
		cells = append(cells, renderCell(c))
	}
	return strings.Join(cells, "")
}

func renderCell(c model.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex)).
		Foreground(lipgloss.Color(ContrastColor(c))).
		Render(fmt.Sprintf(" %02d ", c.Index))
}

// ContrastColor returns black or white, whichever reads better on c.
func ContrastColor(c model.Color) string {
	l, _, _ := c.Colorful().Lab()
	if l > 0.55 {
		return "#000000"
	}
	return "#ffffff"
}
