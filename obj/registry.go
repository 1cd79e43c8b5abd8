package obj

import (
	"fmt"
	"slices"
)

// Registry holds the active blocks of a level in insertion order, with the
// breakable ones tracked alongside. Both lists share the same blocks.
type Registry struct {
	blocks     []*Block
	breakables []*BreakableBlock
	index      map[*Block]struct{}
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[*Block]struct{})}
}

// Add appends b. Adding a block twice is a no-op.
func (r *Registry) Add(b *Block) {
	if r == nil || b == nil {
		return
	}
	if _, ok := r.index[b]; ok {
		return
	}
	r.index[b] = struct{}{}
	r.blocks = append(r.blocks, b)
	if bb := b.Breakable(); bb != nil {
		r.breakables = append(r.breakables, bb)
	}
}

// Remove drops b from the block list and, if breakable, the breakable list.
func (r *Registry) Remove(b *Block) error {
	if r == nil || b == nil {
		return ErrBlockNotFound
	}
	if _, ok := r.index[b]; !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, b)
	}
	delete(r.index, b)
	if i := slices.Index(r.blocks, b); i >= 0 {
		r.blocks = slices.Delete(r.blocks, i, i+1)
	}
	if bb := b.Breakable(); bb != nil {
		if i := slices.Index(r.breakables, bb); i >= 0 {
			r.breakables = slices.Delete(r.breakables, i, i+1)
		}
	}
	return nil
}

func (r *Registry) Contains(b *Block) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[b]
	return ok
}

// All returns the active blocks. The slice is owned by the registry.
func (r *Registry) All() []*Block {
	if r == nil {
		return nil
	}
	return r.blocks
}

// Breakables returns the active breakable blocks. The slice is owned by the
// registry.
func (r *Registry) Breakables() []*BreakableBlock {
	if r == nil {
		return nil
	}
	return r.breakables
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.blocks)
}
