package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	assert.Len(t, r.Presets(), 3)
	assert.NotEmpty(t, r.Fonts())
	assert.Len(t, r.StockVideos(), 2)
	assert.Equal(t, "Roboto-Bold", r.DefaultFont().PostScriptName)
}

func TestRegistry_Preset(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	p, ok := r.Preset("9:16")
	require.True(t, ok)
	assert.Equal(t, 1080, p.Width)
	assert.Equal(t, 1920, p.Height)

	_, ok = r.Preset("4:3")
	assert.False(t, ok)
}

func TestRegistry_FontVariants(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	regular, ok := r.RegularFont("Roboto")
	require.True(t, ok)
	assert.Equal(t, "Roboto-Regular", regular.PostScriptName)

	assert.True(t, r.HasVariant("Roboto", "Italic"))
	assert.False(t, r.HasVariant("Lobster", "Bold"))

	_, ok = r.FontByPostScriptName("Nope-Regular")
	assert.False(t, ok)
}
