package schema

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPalette = `<?xml version="1.0" encoding="utf-8"?>
<key name="Palette1" modified="2019-08-09 10:00:00" build="180626">
	<value name="Name" type="string" data="Dracula"/>
	<value name="ColorTable00" type="dword" data="00362a28"/>
</key>
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDefaultValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(quietLogger(), "")
	require.NoError(t, err)
	return v
}

func TestDefaultSchema(t *testing.T) {
	src, found := DefaultSchema()
	require.True(t, found)
	assert.Contains(t, src, `name="key"`)
	assert.Contains(t, src, `type="xs:unsignedInt"`)
}

func TestValidateReader(t *testing.T) {
	v := newDefaultValidator(t)

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid palette", validPalette, true},
		{
			name: "missing build",
			input: `<key name="Palette1" modified="2019-08-09 10:00:00">
				<value name="Name" type="string" data="Dracula"/></key>`,
			valid: false,
		},
		{
			name: "non-numeric build",
			input: `<key name="Palette1" modified="x" build="abc">
				<value name="Name" type="string" data="Dracula"/></key>`,
			valid: false,
		},
		{
			name:  "no values",
			input: `<key name="Palette1" modified="x" build="1"></key>`,
			valid: false,
		},
		{
			name: "value missing data",
			input: `<key name="Palette1" modified="x" build="1">
				<value name="Name" type="string"/></key>`,
			valid: false,
		},
		{
			name:  "wrong root element",
			input: `<palette name="x"/>`,
			valid: false,
		},
		{
			name:  "not xml",
			input: `this is not xml`,
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateReader(tt.name, strings.NewReader(tt.input))
			assert.Equal(t, tt.valid, result.Valid)
			if tt.valid {
				assert.Nil(t, result.Diagnostic)
			} else {
				require.NotNil(t, result.Diagnostic)
				assert.NotEmpty(t, result.Diagnostic.Message)
			}
		})
	}
}

func TestValidate_File(t *testing.T) {
	v := newDefaultValidator(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "dracula.xml")
	require.NoError(t, os.WriteFile(path, []byte(validPalette), 0644))
	assert.True(t, v.Validate(path).Valid)

	missing := v.Validate(filepath.Join(dir, "missing.xml"))
	assert.False(t, missing.Valid)
	require.NotNil(t, missing.Diagnostic)
	assert.Zero(t, missing.Diagnostic.Line)
}

func TestNewValidator_CustomSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strict.xsd")

	// Accepts only a bare <theme/> root.
	custom := `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="theme">
    <xs:complexType>
      <xs:attribute name="name" type="xs:string" use="required"/>
    </xs:complexType>
  </xs:element>
</xs:schema>`
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	v, err := NewValidator(quietLogger(), path)
	require.NoError(t, err)
	assert.Equal(t, path, v.Source())

	assert.False(t, v.ValidateReader("palette", strings.NewReader(validPalette)).Valid)
	assert.True(t, v.ValidateReader("theme", strings.NewReader(`<theme name="x"/>`)).Valid)
}

func TestNewValidator_BadSchema(t *testing.T) {
	_, err := NewValidator(quietLogger(), filepath.Join(t.TempDir(), "missing.xsd"))
	assert.Error(t, err)
}

func TestDiagnostic_String(t *testing.T) {
	assert.Equal(t, "line 3, position 7: boom", Diagnostic{Line: 3, Column: 7, Message: "boom"}.String())
	assert.Equal(t, "boom", Diagnostic{Message: "boom"}.String())
}
