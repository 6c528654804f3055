package nestedjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := []byte(`{"home":{"title":"Welcome","nav":{"about":"About"}},"bye":"Goodbye"}`)
	res, err := New().Parse(input)
	require.NoError(t, err)
	require.Len(t, res.Keys, 3)
	// Keys come back sorted by path.
	assert.Equal(t, "bye", res.Keys[0].Path)
	assert.Equal(t, "Goodbye", res.Keys[0].SourceText)
	assert.Equal(t, "home.nav.about", res.Keys[1].Path)
	assert.Equal(t, "home.title", res.Keys[2].Path)
}

func TestParse_BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"a":"x"}`)...)
	res, err := New().Parse(input)
	require.NoError(t, err)
	require.Len(t, res.Keys, 1)
	assert.Equal(t, "a", res.Keys[0].Path)
}

func TestParse_Invalid(t *testing.T) {
	_, err := New().Parse([]byte(`{"a":["x"]}`))
	require.Error(t, err)
}
