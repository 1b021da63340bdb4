package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/cetheme/internal/model"
)

// NamesFormatter outputs just the theme names, one per line.
// Useful for piping to other commands.
type NamesFormatter struct{}

// NewNamesFormatter creates a new names formatter.
func NewNamesFormatter() *NamesFormatter {
	return &NamesFormatter{}
}

// Format writes theme names to the writer, one per line.
func (f *NamesFormatter) Format(w io.Writer, themes []model.Theme) error {
	for _, t := range themes {
		if _, err := fmt.Fprintln(w, t.Name); err != nil {
			return err
		}
	}
	return nil
}
