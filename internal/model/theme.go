// Package model defines the data structures shared by the palette engine,
// the CLI and the output formatters.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/oklog/ulid/v2"
)

// ModifiedLayout parses the modified attribute of ConEmu keys.
// Hours are written without padding; time.Parse accepts one or two digits.
const ModifiedLayout = "2006-01-02 15:04:05"

// ColorTableSize is the number of ColorTableNN entries in a ConEmu palette.
const ColorTableSize = 32

// Theme is an installed palette as presented to users.
type Theme struct {
	ID       int     `json:"id" yaml:"id"`
	Key      string  `json:"key" yaml:"key"`
	Name     string  `json:"name" yaml:"name"`
	Modified string  `json:"modified" yaml:"modified"`
	Build    string  `json:"build" yaml:"build"`
	Colors   []Color `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// Color is one ColorTableNN entry of a palette.
type Color struct {
	Index int    `json:"index" yaml:"index"`
	Data  string `json:"data" yaml:"data"` // Raw dword, 00BBGGRR
	Hex   string `json:"hex" yaml:"hex"`   // #rrggbb
}

// ErrInvalidDword is returned for colour data that is not a 32-bit hex value.
var ErrInvalidDword = errors.New("colour data must be an 8-digit hex dword")

// ParseDword decodes a ConEmu colour dword (00BBGGRR, hex) into a colour.
func ParseDword(data string) (colorful.Color, error) {
	data = strings.TrimSpace(data)
	if len(data) == 0 || len(data) > 8 {
		return colorful.Color{}, ErrInvalidDword
	}
	v, err := strconv.ParseUint(data, 16, 32)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidDword, data)
	}

	r := uint8(v & 0xFF)
	g := uint8((v >> 8) & 0xFF)
	b := uint8((v >> 16) & 0xFF)
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}, nil
}

// NewColor builds a Color from a ColorTable entry, or false if data does not decode.
func NewColor(index int, data string) (Color, bool) {
	c, err := ParseDword(data)
	if err != nil {
		return Color{}, false
	}
	return Color{Index: index, Data: data, Hex: c.Hex()}, true
}

// Colorful returns the colour as a go-colorful value.
func (c Color) Colorful() colorful.Color {
	parsed, err := colorful.Hex(c.Hex)
	if err != nil {
		return colorful.Color{}
	}
	return parsed
}

// ModifiedTime parses the Modified attribute.
func (t *Theme) ModifiedTime() (time.Time, bool) {
	ts, err := time.ParseInLocation(ModifiedLayout, t.Modified, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// ConsoleColors returns the first 16 colours (the console palette proper).
func (t *Theme) ConsoleColors() []Color {
	var out []Color
	for _, c := range t.Colors {
		if c.Index < 16 {
			out = append(out, c)
		}
	}
	return out
}

// NewRunID returns a sortable identifier for one import run.
func NewRunID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "unknown"
	}
	return id.String()
}
