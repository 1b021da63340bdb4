package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/cetheme/internal/model"
)

func TestSort_Empty(t *testing.T) {
	var themes []model.Theme
	Sort(themes, DefaultSortOptions())
	assert.Len(t, themes, 0)
}

func TestSort(t *testing.T) {
	tests := []struct {
		name     string
		opts     SortOptions
		expected []string
	}{
		{
			name:     "id asc",
			opts:     DefaultSortOptions(),
			expected: []string{"Legacy", "Solarized Dark", "Dracula", "Gruvbox Dark"},
		},
		{
			name:     "id desc",
			opts:     SortOptions{Field: SortByID, Order: SortDesc},
			expected: []string{"Gruvbox Dark", "Dracula", "Solarized Dark", "Legacy"},
		},
		{
			name:     "name asc",
			opts:     SortOptions{Field: SortByName, Order: SortAsc},
			expected: []string{"Dracula", "Gruvbox Dark", "Legacy", "Solarized Dark"},
		},
		{
			// Unparseable timestamps sort as the zero time.
			name:     "modified desc",
			opts:     SortOptions{Field: SortByModified, Order: SortDesc},
			expected: []string{"Solarized Dark", "Dracula", "Gruvbox Dark", "Legacy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			themes := testThemes()
			Sort(themes, tt.opts)
			assert.Equal(t, tt.expected, Names(themes))
		})
	}
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input    string
		expected SortField
	}{
		{"id", SortByID},
		{"name", SortByName},
		{"N", SortByName},
		{"modified", SortByModified},
		{"time", SortByModified},
		{"unknown", SortByID},
		{"", SortByID},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortField(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected SortOrder
	}{
		{"asc", SortAsc},
		{"desc", SortDesc},
		{"Descending", SortDesc},
		{"d", SortDesc},
		{"", SortAsc},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortOrder(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
