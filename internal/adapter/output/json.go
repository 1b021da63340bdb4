package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/cetheme/internal/model"
)

// JSONFormatter formats themes as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes themes as a JSON array. An empty list is written as [].
func (f *JSONFormatter) Format(w io.Writer, themes []model.Theme) error {
	if themes == nil {
		themes = []model.Theme{}
	}
	if !f.opts.ShowColors {
		themes = withoutColors(themes)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(themes)
}

// FormatSingle writes a single theme as JSON.
func (f *JSONFormatter) FormatSingle(w io.Writer, t *model.Theme) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(t)
}
