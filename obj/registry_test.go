package obj

import (
	"testing"

	"github.com/milk9111/blocklevel/common"
	"github.com/milk9111/blocklevel/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	wall := newBlock(1, common.NewRect(0, 0, 1, 1), tile.Obstacle, nil)
	crate := newBreakableBlock(2, common.NewRect(1, 0, 1, 1), nil, 1)
	goal := newBlock(3, common.NewRect(2, 0, 1, 1), tile.Goal, nil)

	r.Add(wall)
	r.Add(crate.Block)
	r.Add(goal)
	r.Add(wall)

	require.Equal(t, []*Block{wall, crate.Block, goal}, r.All())
	require.Equal(t, []*BreakableBlock{crate}, r.Breakables())
	assert.Equal(t, 3, r.Len())

	require.NoError(t, r.Remove(crate.Block))
	assert.Equal(t, []*Block{wall, goal}, r.All(), "order survives removal")
	assert.Empty(t, r.Breakables())
	assert.False(t, r.Contains(crate.Block))

	assert.ErrorIs(t, r.Remove(crate.Block), ErrBlockNotFound)
	assert.ErrorIs(t, r.Remove(nil), ErrBlockNotFound)
	assert.Equal(t, 2, r.Len())
}
