package seed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/navdir/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func merged(t *testing.T, p domain.Payload) string {
	t.Helper()
	empty := domain.Directory{Links: []domain.Link{}, Categories: domain.Categories{}}
	b, err := json.Marshal(domain.Merge(empty, p))
	require.NoError(t, err)
	return string(b)
}

func TestParseJSONWithComments(t *testing.T) {
	data := []byte(`{
		// personal links
		"links": [
			{"name": "Go", "url": "https://go.dev", "category": "dev"}, // trailing comma next
		],
		/* block */
		"categories": {"dev": "Development",},
	}`)

	p, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t,
		`{"links":[{"name":"Go","url":"https://go.dev","category":"dev"}],"categories":{"dev":"Development"}}`,
		merged(t, p))
}

func TestParseLegacyArray(t *testing.T) {
	p, err := Parse([]byte(`[{"name":"a","url":"https://a"}]`), FormatAuto)
	require.NoError(t, err)
	assert.True(t, p.IsLegacy())
}

func TestParseYAMLKeepsCategoryOrder(t *testing.T) {
	data := []byte(`
links:
  - name: Zeta
    url: https://zeta.example
    category: zz
    description: "**bold**"
categories:
  zz: Last alphabetically
  aa: First alphabetically
  mm: Middle
theme: dark
`)

	p, err := Parse(data, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t,
		`{"links":[{"name":"Zeta","url":"https://zeta.example","category":"zz","description":"**bold**"}],`+
			`"categories":{"zz":"Last alphabetically","aa":"First alphabetically","mm":"Middle"},"theme":"dark"}`,
		merged(t, p))
}

func TestParseYAMLAliases(t *testing.T) {
	data := []byte(`
base: &link
  name: shared
  url: https://shared
links:
  - *link
`)
	js, err := yamlToJSON(data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"base":{"name":"shared","url":"https://shared"},"links":[{"name":"shared","url":"https://shared"}]}`, string(js))
}

func TestParseYAMLScalars(t *testing.T) {
	js, err := yamlToJSON([]byte("a: 1\nb: true\nc: ~\nd: 1.5\ne: text\n"))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":true,"c":null,"d":1.5,"e":"text"}`, string(js))
}

func TestParseRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json scalar", `"x"`, FormatJSON},
		{"broken json", `{"links":`, FormatJSON},
		{"yaml scalar", `just text`, FormatYAML},
		{"empty yaml", ``, FormatYAML},
		{"homepage without links", "- Group:\n    - Svc:\n        href: nope\n", FormatHomepageServices},
		{"unknown format", `{}`, Format("toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestParseHomepageServices(t *testing.T) {
	data := []byte(`---
- Media:
    - Jellyfin:
        icon: jellyfin.svg
        href: https://jellyfin.lan
        description: Movies
`)

	p, err := Parse(data, FormatHomepageServices)
	require.NoError(t, err)
	assert.Equal(t,
		`{"links":[{"name":"Jellyfin","url":"https://jellyfin.lan","category":"media","description":"Movies"}],"categories":{"media":"Media"}}`,
		merged(t, p))
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"seed.json":            FormatJSON,
		"seed.jsonc":           FormatJSON,
		"seed.yaml":            FormatYAML,
		"/etc/navdir/seed.YML": FormatYAML,
		"config/services.yaml": FormatHomepageServices,
		"config/bookmarks.yml": FormatHomepageBookmarks,
		"no-extension":         FormatJSON,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	_, err = ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, "seed.yaml", "links:\n  - name: only\n    url: https://only\n")

	d, err := LoadDefaults(path)
	require.NoError(t, err)
	require.Len(t, d.Links, 1)
	assert.Equal(t, "only", d.Links[0].Name)
	assert.Empty(t, d.Categories, "missing members are empty, not the built-in defaults")
}

func TestLoadDefaultsMissingFile(t *testing.T) {
	_, err := LoadDefaults(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
