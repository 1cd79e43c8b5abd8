package obj

import (
	"fmt"

	"github.com/milk9111/blocklevel/common"
	"github.com/milk9111/blocklevel/tile"
)

// Texture is an opaque handle handed out by a TextureLookup.
type Texture any

// TextureLookup resolves the texture drawn for a tile type.
type TextureLookup interface {
	Lookup(t tile.Type) Texture
}

// Drawer draws one block relative to the camera's top-left corner.
type Drawer interface {
	DrawBlock(b *Block, camera common.Vec)
}

// TextureMap is a TextureLookup backed by a map.
type TextureMap map[tile.Type]Texture

func (m TextureMap) Lookup(t tile.Type) Texture {
	return m[t]
}

// Block is a rectangle of a single tile type in world units. Its geometry is
// fixed at build time.
type Block struct {
	id        int
	rect      common.Rect
	kind      tile.Type
	texture   Texture
	breakable *BreakableBlock
}

func newBlock(id int, rect common.Rect, kind tile.Type, tex Texture) *Block {
	if rect.Empty() || !rect.Finite() {
		panic(fmt.Sprintf("obj: block %d has empty or non-finite rect %+v", id, rect))
	}
	return &Block{id: id, rect: rect, kind: kind, texture: tex}
}

// ID is unique within a level; the background block is 0.
func (b *Block) ID() int {
	return b.id
}

func (b *Block) Rect() common.Rect {
	return b.rect
}

func (b *Block) Type() tile.Type {
	return b.kind
}

func (b *Block) Texture() Texture {
	return b.texture
}

func (b *Block) Center() common.Vec {
	return b.rect.Center()
}

// Breakable returns the breakable behaviour of b, or nil if b cannot break.
func (b *Block) Breakable() *BreakableBlock {
	return b.breakable
}

func (b *Block) String() string {
	return fmt.Sprintf("block#%d %s (%g,%g %gx%g)", b.id, b.kind, b.rect.X, b.rect.Y, b.rect.Width, b.rect.Height)
}

// BreakState is the lifecycle state of a breakable block.
type BreakState int

const (
	Intact BreakState = iota
	Breaking
	Destroyed
)

func (s BreakState) String() string {
	switch s {
	case Intact:
		return "intact"
	case Breaking:
		return "breaking"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("BreakState(%d)", int(s))
	}
}

// BreakableBlock is a Block that counts down to destruction once something
// starts breaking it.
type BreakableBlock struct {
	*Block
	duration  float64
	remaining float64
	state     BreakState
}

func newBreakableBlock(id int, rect common.Rect, tex Texture, duration float64) *BreakableBlock {
	bb := &BreakableBlock{
		Block:     newBlock(id, rect, tile.Breakable, tex),
		duration:  duration,
		remaining: duration,
	}
	bb.Block.breakable = bb
	return bb
}

func (b *BreakableBlock) State() BreakState {
	return b.state
}

func (b *BreakableBlock) Duration() float64 {
	return b.duration
}

// Remaining is the countdown left; it equals Duration while intact.
func (b *BreakableBlock) Remaining() float64 {
	return b.remaining
}

// Progress runs from 0 when intact to 1 when destroyed.
func (b *BreakableBlock) Progress() float64 {
	switch b.state {
	case Intact:
		return 0
	case Destroyed:
		return 1
	}
	if b.duration <= 0 {
		return 1
	}
	return common.Clamp(1-b.remaining/b.duration, 0, 1)
}

// StartBreaking starts the countdown. Calling it again while breaking does
// not reset the countdown.
func (b *BreakableBlock) StartBreaking() error {
	switch b.state {
	case Intact:
		b.state = Breaking
		return nil
	case Breaking:
		return nil
	default:
		return fmt.Errorf("%w: start breaking %s block %d", ErrInvalidStateTransition, b.state, b.id)
	}
}

// advance counts down by dt and reports whether the block has just been
// destroyed.
func (b *BreakableBlock) advance(dt float64) (bool, error) {
	if b.state != Breaking {
		return false, fmt.Errorf("%w: advance %s block %d", ErrInvalidStateTransition, b.state, b.id)
	}
	if dt > 0 {
		b.remaining -= dt
	}
	if b.remaining > 0 {
		return false, nil
	}
	b.remaining = 0
	b.state = Destroyed
	return true, nil
}
