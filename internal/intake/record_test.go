package intake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	rec, err := Decode(strings.NewReader(`{"first_name": "Maria", "household_size": 4, "flag": true, "gone": null}`))
	require.NoError(t, err)

	assert.Equal(t, "Maria", rec.String("first_name"))
	assert.Equal(t, "4", rec.String("household_size"))
	assert.Equal(t, "true", rec.String("flag"))
	assert.Equal(t, "", rec.String("gone"))
	assert.Equal(t, "", rec.String("missing"))
	assert.False(t, rec.Empty())
}

func TestDecode_Invalid(t *testing.T) {
	tests := []string{``, `[1,2]`, `{"a":`, `"text"`}
	for _, payload := range tests {
		_, err := Parse([]byte(payload))
		assert.Error(t, err, payload)
	}
}

func TestRecord_List(t *testing.T) {
	rec, err := Parse([]byte(`{
		"children": [{"first_name": "Ana"}, "junk", {"first_name": "Luis"}],
		"encoded": "[{\"city\": \"Austin\"}]",
		"scalar": "x",
		"nested": {"a": "b"}
	}`))
	require.NoError(t, err)

	kids := rec.List("children")
	require.Len(t, kids, 3)
	assert.Equal(t, "Ana", kids[0].String("first_name"))
	assert.True(t, kids[1].Empty())
	assert.Equal(t, "Luis", kids[2].String("first_name"))

	encoded := rec.List("encoded")
	require.Len(t, encoded, 1)
	assert.Equal(t, "Austin", encoded[0].String("city"))
	assert.Nil(t, rec.List("scalar"))
	assert.Nil(t, rec.List("missing"))
	assert.Equal(t, "", rec.String("nested"))
	assert.Equal(t, "", rec.String("children"))
}

func TestRecord_HasAndLower(t *testing.T) {
	rec := Record{
		"status":   "  Married ",
		"empty":    "",
		"children": []any{map[string]any{"x": "y"}},
	}

	assert.True(t, rec.Has("status"))
	assert.True(t, rec.Has("children"))
	assert.False(t, rec.Has("empty"))
	assert.Equal(t, "married", rec.Lower("status"))

	var nilRec Record
	assert.Equal(t, "", nilRec.String("a"))
	assert.Nil(t, nilRec.List("a"))
}
