package obj

import (
	"fmt"
	"math"
	"slices"

	"github.com/milk9111/blocklevel/common"
)

// CollisionGroup is one vertical strip of the level and the blocks whose
// rectangles intersect it.
type CollisionGroup struct {
	Bounds common.Rect
	blocks []*Block
}

// Blocks returns the group's blocks in registration order. The slice is
// owned by the group.
func (g *CollisionGroup) Blocks() []*Block {
	return g.blocks
}

func (g *CollisionGroup) Contains(b *Block) bool {
	return slices.Contains(g.blocks, b)
}

// CollisionGroups partitions a level into fixed-width vertical strips so
// collision checks only look at blocks near the query.
type CollisionGroups struct {
	stripWidth float64
	groups     []*CollisionGroup
}

// NewCollisionGroups creates strips of stripWidth covering [0, width). The
// last strip is cut off at the level's right edge.
func NewCollisionGroups(width, height, stripWidth float64) *CollisionGroups {
	cg := &CollisionGroups{stripWidth: stripWidth}
	if width <= 0 || height <= 0 || stripWidth <= 0 {
		return cg
	}
	for i := 0; float64(i)*stripWidth < width; i++ {
		left := float64(i) * stripWidth
		right := math.Min(left+stripWidth, width)
		cg.groups = append(cg.groups, &CollisionGroup{
			Bounds: common.NewRect(left, 0, right-left, height),
		})
	}
	return cg
}

func (cg *CollisionGroups) StripWidth() float64 {
	return cg.stripWidth
}

func (cg *CollisionGroups) Groups() []*CollisionGroup {
	if cg == nil {
		return nil
	}
	return cg.groups
}

func (cg *CollisionGroups) Len() int {
	if cg == nil {
		return 0
	}
	return len(cg.groups)
}

// span returns the inclusive range of strip indices whose bounds intersect
// r. The range comes straight from r's x extent, widened by one strip on
// each side and trimmed with the same closed intersection test Intersects
// uses, so edges landing exactly on a strip boundary pick both strips.
// Non-finite rects span nothing.
func (cg *CollisionGroups) span(r common.Rect) (int, int) {
	n := len(cg.groups)
	if n == 0 || !r.Finite() {
		return 0, -1
	}
	// clamp while still float so huge coordinates never overflow int
	top := float64(n - 1)
	first := int(common.Clamp(math.Floor(r.X/cg.stripWidth)-1, 0, top))
	last := int(common.Clamp(math.Floor(r.Right()/cg.stripWidth)+1, 0, top))
	for first <= last && !cg.groups[first].Bounds.Intersects(r) {
		first++
	}
	for last >= first && !cg.groups[last].Bounds.Intersects(r) {
		last--
	}
	return first, last
}

// Register adds b to every strip its rectangle intersects.
func (cg *CollisionGroups) Register(b *Block) {
	if cg == nil || b == nil {
		return
	}
	first, last := cg.span(b.Rect())
	for i := first; i <= last; i++ {
		g := cg.groups[i]
		if !g.Contains(b) {
			g.blocks = append(g.blocks, b)
		}
	}
}

// Unregister removes b from every strip holding it.
func (cg *CollisionGroups) Unregister(b *Block) error {
	if cg == nil || b == nil {
		return ErrBlockNotFound
	}
	found := false
	for _, g := range cg.groups {
		if i := slices.Index(g.blocks, b); i >= 0 {
			g.blocks = slices.Delete(g.blocks, i, i+1)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s not in any collision group", ErrBlockNotFound, b)
	}
	return nil
}

// Find returns the indices of the strips that hold b.
func (cg *CollisionGroups) Find(b *Block) []int {
	var out []int
	for i, g := range cg.Groups() {
		if g.Contains(b) {
			out = append(out, i)
		}
	}
	return out
}

// Query returns the blocks held by every strip r intersects, without
// duplicates, in first-seen order. Blocks are candidates only; callers test
// exact overlap themselves.
func (cg *CollisionGroups) Query(r common.Rect) []*Block {
	if cg == nil {
		return nil
	}
	first, last := cg.span(r)
	if first > last {
		return nil
	}
	if first == last {
		return slices.Clone(cg.groups[first].blocks)
	}
	seen := make(map[*Block]struct{})
	var out []*Block
	for i := first; i <= last; i++ {
		for _, b := range cg.groups[i].blocks {
			if _, ok := seen[b]; ok {
				continue
			}
			seen[b] = struct{}{}
			out = append(out, b)
		}
	}
	return out
}
