package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sectionKeys(sections []Section) []string {
	keys := make([]string, 0, len(sections))
	for _, s := range sections {
		keys = append(keys, s.Key)
	}
	return keys
}

func TestGroup(t *testing.T) {
	d := Directory{
		Links: []Link{
			{Name: "a", URL: "https://a", Category: "orphan2"},
			{Name: "b", URL: "https://b", Category: "dev"},
			{Name: "c", URL: "https://c"},
			{Name: "d", URL: "https://d", Category: "orphan1"},
			{Name: "e", URL: "https://e", Category: "orphan2"},
			RawLink([]byte(`"x"`)),
			{Name: "f", URL: "https://f", Category: "  "},
		},
		Categories: Categories{
			{Key: "media", Label: "Media"},
			{Key: "dev", Label: "Development"},
		},
	}

	tests := []struct {
		name     string
		opts     GroupOptions
		wantKeys []string
	}{
		{
			name:     "include empty declared categories",
			opts:     GroupOptions{IncludeEmpty: true},
			wantKeys: []string{"media", "dev", "orphan2", "orphan1", UncategorizedKey},
		},
		{
			name:     "omit empty declared categories",
			opts:     GroupOptions{IncludeEmpty: false},
			wantKeys: []string{"dev", "orphan2", "orphan1", UncategorizedKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := Group(d, tt.opts)
			assert.Equal(t, tt.wantKeys, sectionKeys(sections))
		})
	}
}

func TestGroupSectionContents(t *testing.T) {
	d := Directory{
		Links: []Link{
			{Name: "one", URL: "https://1", Category: "x"},
			{Name: "two", URL: "https://2"},
			{Name: "three", URL: "https://3", Category: "x"},
		},
		Categories: Categories{{Key: "x", Label: "Ex"}},
	}

	sections := Group(d, GroupOptions{UncategorizedLabel: "Misc"})
	if assert.Len(t, sections, 2) {
		assert.Equal(t, "Ex", sections[0].Label)
		assert.True(t, sections[0].Declared)
		assert.Equal(t, []string{"one", "three"}, []string{sections[0].Links[0].Name, sections[0].Links[1].Name})

		assert.True(t, sections[1].Uncategorized())
		assert.Equal(t, "Misc", sections[1].Label)
		assert.Len(t, sections[1].Links, 1)
	}

	assert.False(t, d.Categories.Has(UncategorizedKey), "uncategorized bucket must never be declared")
}

func TestGroupEmptyDirectory(t *testing.T) {
	assert.Empty(t, Group(Directory{}, GroupOptions{IncludeEmpty: true}))
}
