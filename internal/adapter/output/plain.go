package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/cetheme/internal/model"
)

// PlainFormatter formats themes as a human-readable listing.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes a header line followed by one indented line per theme.
func (f *PlainFormatter) Format(w io.Writer, themes []model.Theme) error {
	if len(themes) == 0 {
		_, err := fmt.Fprintln(w, NoThemesMessage)
		return err
	}

	if f.template == nil {
		if _, err := fmt.Fprintln(w, "We found the following custom themes installed:"); err != nil {
			return err
		}
	}
	for i := range themes {
		if err := f.formatTheme(w, &themes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatTheme(w io.Writer, t *model.Theme) error {
	if f.template != nil {
		data := templateData{
			Theme:        t,
			RelativeTime: relativeTime(t),
		}
		if err := f.template.Execute(w, data); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	var sb strings.Builder
	sb.WriteString("\t")
	sb.WriteString(displayName(t))
	if f.opts.ShowTime {
		sb.WriteString(fmt.Sprintf(" (%s, %s)", t.Key, relativeTime(t)))
	}
	sb.WriteString("\n")

	_, err := w.Write([]byte(sb.String()))
	return err
}

// templateData provides data for custom templates.
type templateData struct {
	*model.Theme
	RelativeTime string
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			if maxLen <= 0 || len(s) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return s[:maxLen]
			}
			return s[:maxLen-3] + "..."
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}
}

func relativeTime(t *model.Theme) string {
	ts, ok := t.ModifiedTime()
	if !ok {
		return "unknown"
	}
	return humanize.Time(ts)
}

func displayName(t *model.Theme) string {
	if t.Name == "" {
		return "(unnamed)"
	}
	return t.Name
}
