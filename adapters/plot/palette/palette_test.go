package palette

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"py50/domain/core"
)

func TestResolve_Named(t *testing.T) {
	for _, name := range Names() {
		p, err := Resolve(name)
		require.NoError(t, err, name)
		assert.Len(t, p, 10, name)
	}

	def, err := Resolve("")
	require.NoError(t, err)
	deep, _ := Resolve("deep")
	assert.Equal(t, deep, def)

	upper, err := Resolve("Colorblind")
	require.NoError(t, err)
	assert.Equal(t, drawing.Color{R: 0x01, G: 0x73, B: 0xB2, A: 255}, upper[0])
}

func TestResolve_HexList(t *testing.T) {
	p, err := Resolve("#ff0000, 00ff00")
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, drawing.Color{R: 255, A: 255}, p[0])
	assert.Equal(t, drawing.Color{G: 255, A: 255}, p[1])
	assert.Equal(t, p[0], p.At(2))
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve("rainbow")
	assert.True(t, errors.Is(err, core.ErrUnknownPalette))
	assert.Contains(t, err.Error(), "rainbow")

	_, err = Resolve("#12345")
	assert.True(t, errors.Is(err, core.ErrUnknownPalette))

	_, err = Resolve("#zzzzzz")
	assert.True(t, errors.Is(err, core.ErrUnknownPalette))
}

func TestPaletteAt_Empty(t *testing.T) {
	var p Palette
	assert.Equal(t, drawing.ColorBlack, p.At(3))
}
