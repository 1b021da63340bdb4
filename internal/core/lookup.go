package core

import (
	"strings"

	"github.com/jmylchreest/cetheme/internal/model"
)

// LookupByName finds a theme by exact name. Returns nil if not found.
func LookupByName(themes []model.Theme, name string) *model.Theme {
	for i := range themes {
		if themes[i].Name == name {
			return &themes[i]
		}
	}
	return nil
}

// LookupByID finds a theme by palette identifier. Returns nil if not found.
func LookupByID(themes []model.Theme, id int) *model.Theme {
	for i := range themes {
		if themes[i].ID == id {
			return &themes[i]
		}
	}
	return nil
}

// Search finds themes whose name contains term, case-insensitively.
func Search(themes []model.Theme, term string) []model.Theme {
	if term == "" {
		return themes
	}

	term = strings.ToLower(term)
	var result []model.Theme
	for _, t := range themes {
		if strings.Contains(strings.ToLower(t.Name), term) {
			result = append(result, t)
		}
	}
	return result
}

// Names returns the theme names in order.
func Names(themes []model.Theme) []string {
	names := make([]string, 0, len(themes))
	for _, t := range themes {
		names = append(names, t.Name)
	}
	return names
}
