package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesKeepOrder(t *testing.T) {
	input := `{"zeta":"Z","alpha":"A","mid":"M"}`

	var cats Categories
	require.NoError(t, json.Unmarshal([]byte(input), &cats))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, cats.Keys())
	assert.Equal(t, input, mustJSON(t, cats))
}

func TestCategoriesDuplicateKeyKeepsFirstPosition(t *testing.T) {
	var cats Categories
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1","b":"2","a":"3"}`), &cats))

	assert.Equal(t, Categories{{Key: "a", Label: "3"}, {Key: "b", Label: "2"}}, cats)
}

func TestCategoriesSet(t *testing.T) {
	cats := Categories{{Key: "a", Label: "A"}}
	cats.Set("b", "B")
	cats.Set("a", "AA")

	assert.Equal(t, Categories{{Key: "a", Label: "AA"}, {Key: "b", Label: "B"}}, cats)
	label, ok := cats.Label("b")
	assert.True(t, ok)
	assert.Equal(t, "B", label)
	assert.False(t, cats.Has("c"))
}

func TestLinkRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "string element", input: `"x"`, valid: false},
		{name: "number element", input: `7`, valid: false},
		{name: "null element", input: `null`, valid: false},
		{name: "mistyped member", input: `{"name":5}`, valid: false},
		{name: "minimal object", input: `{"name":"a","url":"https://a"}`, valid: true},
		{
			name:  "all members",
			input: `{"name":"a","url":"https://a","icon":"★","category":"dev","description":"d","url_intranet":"http://10.0.0.1"}`,
			valid: true,
		},
		{name: "unknown members kept", input: `{"name":"a","url":"u","pinned":true,"tags":["x"]}`, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Link
			require.NoError(t, json.Unmarshal([]byte(tt.input), &l))
			assert.Equal(t, tt.valid, l.Valid())
			assert.JSONEq(t, tt.input, mustJSON(t, l))
		})
	}
}

func TestLegacyArrayWithInvalidElementsRoundTrips(t *testing.T) {
	input := `["x",{"name":"a","url":"https://a"},1]`

	p, err := Decode([]byte(input))
	require.NoError(t, err)
	require.True(t, p.IsLegacy())

	assert.Equal(t, input, mustJSON(t, p.Links()))
}

func TestDirectoryMarshalAlwaysHasMembers(t *testing.T) {
	assert.Equal(t, `{"links":[],"categories":{}}`, mustJSON(t, Directory{}))
}

func TestDirectoryUnmarshal(t *testing.T) {
	var d Directory
	require.NoError(t, json.Unmarshal([]byte(`{"categories":{"a":"A"},"note":1}`), &d))

	assert.Empty(t, d.Links)
	assert.Equal(t, Categories{{Key: "a", Label: "A"}}, d.Categories)
	assert.Equal(t, `{"links":[],"categories":{"a":"A"},"note":1}`, mustJSON(t, d))

	err := json.Unmarshal([]byte(`[]`), &d)
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestDefaultShape(t *testing.T) {
	d := Default()
	assert.Len(t, d.Links, 6)
	assert.Len(t, d.Categories, 4)
	for _, l := range d.Links {
		assert.True(t, l.Valid())
		assert.NotEmpty(t, l.Name)
		assert.NotEmpty(t, l.URL)
	}
}
