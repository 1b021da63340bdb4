package palette

import (
	"fmt"

	"github.com/jmylchreest/cetheme/internal/document"
	"github.com/jmylchreest/cetheme/internal/model"
)

// Installed lists the palettes under the Colors section of doc.
// Entries whose key name is not PaletteN get ID -1.
func Installed(doc *document.Document) []model.Theme {
	var themes []model.Theme
	for _, p := range doc.Palettes() {
		themes = append(themes, themeFromNode(p))
	}
	return themes
}

func themeFromNode(p *document.Node) model.Theme {
	id, ok := document.PaletteID(p.Name())
	if !ok {
		id = -1
	}

	theme := model.Theme{
		ID:       id,
		Key:      p.Name(),
		Name:     p.ThemeName(),
		Modified: p.AttrOrEmpty(document.AttrModified),
		Build:    p.AttrOrEmpty(document.AttrBuild),
	}
	for i := 0; i < model.ColorTableSize; i++ {
		v := p.ChildValue(fmt.Sprintf("ColorTable%02d", i))
		if v == nil {
			continue
		}
		if c, ok := model.NewColor(i, v.AttrOrEmpty(document.AttrData)); ok {
			theme.Colors = append(theme.Colors, c)
		}
	}
	return theme
}
