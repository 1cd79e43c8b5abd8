package obj

import (
	"math"
	"testing"

	"github.com/milk9111/blocklevel/common"
	"github.com/milk9111/blocklevel/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakableLifecycle(t *testing.T) {
	bb := newBreakableBlock(1, common.NewRect(0, 0, 10, 10), nil, 2)

	require.Same(t, bb, bb.Block.Breakable())
	assert.Equal(t, tile.Breakable, bb.Type())
	assert.Equal(t, Intact, bb.State())
	assert.Equal(t, 0.0, bb.Progress())

	_, err := bb.advance(1)
	assert.ErrorIs(t, err, ErrInvalidStateTransition, "intact blocks do not count down")

	require.NoError(t, bb.StartBreaking())
	assert.Equal(t, Breaking, bb.State())

	destroyed, err := bb.advance(0.5)
	require.NoError(t, err)
	assert.False(t, destroyed)
	assert.InDelta(t, 1.5, bb.Remaining(), 1e-9)
	assert.InDelta(t, 0.25, bb.Progress(), 1e-9)

	require.NoError(t, bb.StartBreaking(), "restarting is a no-op")
	assert.InDelta(t, 1.5, bb.Remaining(), 1e-9)

	destroyed, err = bb.advance(-3)
	require.NoError(t, err)
	assert.False(t, destroyed, "negative steps never add time back")
	assert.InDelta(t, 1.5, bb.Remaining(), 1e-9)

	destroyed, err = bb.advance(1.5)
	require.NoError(t, err)
	assert.True(t, destroyed)
	assert.Equal(t, Destroyed, bb.State())
	assert.Equal(t, 1.0, bb.Progress())

	_, err = bb.advance(1)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	assert.ErrorIs(t, bb.StartBreaking(), ErrInvalidStateTransition)
}

func TestPlainBlocksAreNotBreakable(t *testing.T) {
	b := newBlock(3, common.NewRect(1, 2, 3, 4), tile.Obstacle, "wall")

	assert.Nil(t, b.Breakable())
	assert.Equal(t, 3, b.ID())
	assert.Equal(t, "wall", b.Texture())
	assert.Equal(t, common.Vec{X: 2.5, Y: 4}, b.Center())
	assert.Equal(t, "block#3 obstacle (1,2 3x4)", b.String())
}

func TestEmptyBlockPanics(t *testing.T) {
	assert.Panics(t, func() {
		newBlock(1, common.NewRect(0, 0, 0, 5), tile.Obstacle, nil)
	})
	assert.Panics(t, func() {
		newBlock(1, common.NewRect(0, 0, math.NaN(), 5), tile.Obstacle, nil)
	})
	assert.Panics(t, func() {
		newBlock(1, common.NewRect(math.Inf(1), 0, 5, 5), tile.Obstacle, nil)
	})
}
