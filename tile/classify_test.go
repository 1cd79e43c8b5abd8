package tile

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		c    color.Color
		want Type
	}{
		{"white", color.RGBA{0xff, 0xff, 0xff, 0xff}, Clear},
		{"black", color.RGBA{0x00, 0x00, 0x00, 0xff}, Obstacle},
		{"red", color.RGBA{0xff, 0x00, 0x00, 0xff}, Breakable},
		{"cyan", color.RGBA{0x00, 0xff, 0xff, 0xff}, Hole},
		{"green", color.RGBA{0x00, 0xff, 0x00, 0xff}, Goal},
		{"blue", color.RGBA{0x00, 0x00, 0xff, 0xff}, Spawn},
		{"gray_is_clear", color.Gray{Y: 0x80}, Clear},
		{"dark_green_is_clear", color.RGBA{0x00, 0x80, 0x00, 0xff}, Clear},
		{"translucent_black_is_clear", color.NRGBA{0, 0, 0, 0x80}, Clear},
		{"nrgba_red", color.NRGBA{0xff, 0, 0, 0xff}, Breakable},
		{"nil", nil, Clear},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Classify(c.c))
		})
	}
}

func TestClassifyARGB(t *testing.T) {
	cases := []struct {
		argb uint32
		want Type
	}{
		{0xFFFFFFFF, Clear},
		{0xFF000000, Obstacle},
		{0xFFFF0000, Breakable},
		{0xFF00FFFF, Hole},
		{0xFF00FF00, Goal},
		{0xFF0000FF, Spawn},
		{0x000000FF, Clear},
		{0xFF123456, Clear},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyARGB(c.argb), "argb %#08x", c.argb)
	}
}

func TestColorRoundTrip(t *testing.T) {
	for _, typ := range Types {
		assert.Equal(t, typ, Classify(Color(typ)), typ.String())
	}
}

func TestTypeValues(t *testing.T) {
	want := map[Type]int{
		Clear:     0,
		Obstacle:  1,
		Breakable: 2,
		Hole:      3,
		Goal:      4,
		Spawn:     -1,
	}
	for typ, v := range want {
		assert.Equal(t, v, typ.Value(), typ.String())
		back, ok := TypeFromValue(v)
		require.True(t, ok)
		assert.Equal(t, typ, back)
	}

	_, ok := TypeFromValue(5)
	assert.False(t, ok)
	_, ok = TypeFromValue(-2)
	assert.False(t, ok)
}

func TestParseType(t *testing.T) {
	for _, typ := range Types {
		got, err := ParseType(" " + typ.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	got, err := ParseType("GOAL")
	require.NoError(t, err)
	assert.Equal(t, Goal, got)

	_, err = ParseType("lava")
	assert.Error(t, err)

	var typ Type
	require.NoError(t, typ.UnmarshalText([]byte("hole")))
	assert.Equal(t, Hole, typ)
	assert.Equal(t, "tile.Type(42)", Type(42).String())
}
