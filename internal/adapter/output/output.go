// Package output provides output formatters for installed themes.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/cetheme/internal/model"
)

// NoThemesMessage is printed by the human-readable formatters for an empty list.
const NoThemesMessage = "We didn't find any custom themes installed."

// Formatter formats themes for output.
type Formatter interface {
	// Format writes formatted themes to the writer.
	Format(w io.Writer, themes []model.Theme) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain  FormatType = "plain"
	FormatJSON   FormatType = "json"
	FormatYAML   FormatType = "yaml"
	FormatNames  FormatType = "names"
	FormatSwatch FormatType = "swatch"
)

// Formats lists the supported format names.
func Formats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatNames, FormatSwatch}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	f := FormatType(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatPlain, nil
	}
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format: %s", s)
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatNames:
		return NewNamesFormatter()
	case FormatSwatch:
		return NewSwatchFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom template for plain format
	ShowTime   bool   // Show humanised modified time
	ShowColors bool   // Include the colour table in json/yaml output
	AllColors  bool   // Swatch the full 32-entry table instead of the console 16
}

// DefaultFormatterOptions returns sensible defaults for listing themes.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowTime:   true,
		ShowColors: true,
	}
}

func withoutColors(themes []model.Theme) []model.Theme {
	out := make([]model.Theme, len(themes))
	for i, t := range themes {
		t.Colors = nil
		out[i] = t
	}
	return out
}
