package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/cetheme/internal/model"
)

// YAMLFormatter formats themes as a YAML sequence.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes themes as YAML.
func (f *YAMLFormatter) Format(w io.Writer, themes []model.Theme) error {
	if themes == nil {
		themes = []model.Theme{}
	}
	if !f.opts.ShowColors {
		themes = withoutColors(themes)
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(themes); err != nil {
		return err
	}
	return encoder.Close()
}
