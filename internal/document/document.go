package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Well-known names inside a ConEmu settings file.
const (
	VanillaName       = ".Vanilla"
	ColorsName        = "Colors"
	CountValue        = "Count"
	ThemeNameValue    = "Name"
	PaletteNamePrefix = "Palette"
	CountType         = "dword"
)

// Errors returned by Document operations.
var (
	ErrVanillaNotFound = errors.New("no .Vanilla section found in configuration")
	ErrNoColors        = errors.New("configuration has no Colors section")
)

// Document is a loaded ConEmu settings file.
type Document struct {
	root       *Node
	vanilla    *Node
	colors     *Node
	colorCount int
}

// Parse reads a settings document from r.
// Returns ErrVanillaNotFound when the document has no .Vanilla section.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data, err = NormalizeCharset(data)
	if err != nil {
		return nil, err
	}

	root, err := ParseTree(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return New(root)
}

// Load reads and parses the settings file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// New wraps an already parsed tree, locating the Vanilla and Colors sections
// and deriving the palette counter.
func New(root *Node) (*Document, error) {
	if root == nil {
		return nil, ErrNoRoot
	}

	vanilla := root.Find(func(n *Node) bool {
		return n.IsKey() && n.Name() == VanillaName
	})
	if vanilla == nil {
		return nil, ErrVanillaNotFound
	}

	d := &Document{
		root:    root,
		vanilla: vanilla,
		colors:  vanilla.ChildKey(ColorsName),
	}
	if d.colors != nil {
		d.colorCount = deriveCounter(d.colors)
	}
	return d, nil
}

// deriveCounter returns the next free palette identifier for an existing
// Colors section. A stored Count names an identifier already in use (0 is
// taken by the section itself), so the counter is the larger of Count+1 and
// one past the highest PaletteN present. A section without a readable Count
// and without palettes starts at 0.
func deriveCounter(colors *Node) int {
	counter := 0
	if v := colors.ChildValue(CountValue); v != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(v.AttrOrEmpty(AttrData))); err == nil && n >= 0 {
			counter = n + 1
		}
	}
	for _, key := range colors.Keys() {
		if id, ok := PaletteID(key.Name()); ok && id+1 > counter {
			counter = id + 1
		}
	}
	return counter
}

// PaletteID extracts N from a "PaletteN" key name.
func PaletteID(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, PaletteNamePrefix)
	if !ok || rest == "" {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// PaletteName formats the key name for palette id (no padding).
func PaletteName(id int) string {
	return PaletteNamePrefix + strconv.Itoa(id)
}

// FormatCount formats a counter value the way ConEmu stores Count: eight
// zero-padded decimal digits.
func FormatCount(n int) string {
	return fmt.Sprintf("%08d", n)
}

// FormatTimestamp formats t as "yyyy-MM-dd H:mm:ss" (hour not padded).
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%s %d:%s", t.Format("2006-01-02"), t.Hour(), t.Format("04:05"))
}

// Root returns the root element.
func (d *Document) Root() *Node {
	return d.root
}

// Vanilla returns the .Vanilla section.
func (d *Document) Vanilla() *Node {
	return d.vanilla
}

// Colors returns the Colors section, or nil if it does not exist yet.
func (d *Document) Colors() *Node {
	return d.colors
}

// Build returns the build attribute of the .Vanilla section.
func (d *Document) Build() string {
	return d.vanilla.AttrOrEmpty(AttrBuild)
}

// ColorCount returns the palette counter: the identifier the next imported
// palette will receive.
func (d *Document) ColorCount() int {
	return d.colorCount
}

// NextPaletteID returns the current counter and advances it by one.
func (d *Document) NextPaletteID() int {
	id := d.colorCount
	d.colorCount++
	return id
}

// EnsureColorsSection creates the Colors section with Count=00000000 if it
// does not exist. The section itself occupies identifier 0, so the counter
// advances by one. Returns true if the section was created.
func (d *Document) EnsureColorsSection(now time.Time) bool {
	if d.colors != nil {
		return false
	}

	colors := NewKey(ColorsName, FormatTimestamp(now), d.Build())
	colors.Append(NewValue(CountValue, CountType, FormatCount(d.colorCount)))
	d.vanilla.Append(colors)
	d.colors = colors
	d.colorCount++
	return true
}

// Palettes returns the key entries under Colors in document order.
func (d *Document) Palettes() []*Node {
	if d.colors == nil {
		return nil
	}
	return d.colors.Keys()
}

// InstalledThemeNames returns one theme name per palette entry, in document
// order, using the same key as candidates (see Node.ThemeName). Entries
// without a name contribute the empty string.
func (d *Document) InstalledThemeNames() []string {
	palettes := d.Palettes()
	names := make([]string, 0, len(palettes))
	for _, p := range palettes {
		names = append(names, p.ThemeName())
	}
	return names
}

// AppendPalette attaches a prepared palette entry under Colors and rewrites
// Count to id.
func (d *Document) AppendPalette(entry *Node, id int) error {
	if d.colors == nil {
		return ErrNoColors
	}

	count := d.colors.ChildValue(CountValue)
	if count == nil {
		count = NewValue(CountValue, CountType, "")
		d.colors.Prepend(count)
	}
	count.SetAttr(AttrData, FormatCount(id))

	d.colors.Append(entry)
	return nil
}

// Encode serialises the document to w.
func (d *Document) Encode(w io.Writer) error {
	return WriteTree(w, d.root)
}

// Bytes returns the serialised document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
