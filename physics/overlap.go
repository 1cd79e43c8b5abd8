package physics

import (
	"math"
	"sort"

	"github.com/milk9111/blocklevel/common"
	"github.com/milk9111/blocklevel/obj"
	"github.com/milk9111/blocklevel/tile"
	"github.com/solarlune/resolv"
)

// OverlapSpace mirrors the level's blocks into a resolv space for cheap
// rectangle overlap tests. Objects are tagged with their tile type name.
// Edges that only touch count as overlapping, as in obj.Level.Query.
type OverlapSpace struct {
	space   *resolv.Space
	cell    float64
	bounds  common.Rect
	objects map[*obj.Block]*resolv.Object
}

// NewOverlapSpace uses one resolv cell per grid cell and drops objects as the
// level destroys their blocks.
func NewOverlapSpace(level *obj.Level) *OverlapSpace {
	w, h := level.Size()
	cell := int(math.Max(1, math.Ceil(level.Scale())))
	// resolv sizes its grid with integer division; round up to whole cells
	cols := int(math.Ceil(w / float64(cell)))
	rows := int(math.Ceil(h / float64(cell)))
	space := resolv.NewSpace(cols*cell, rows*cell, cell, cell)

	s := &OverlapSpace{
		space:   space,
		cell:    float64(cell),
		bounds:  common.NewRect(0, 0, float64(cols*cell), float64(rows*cell)),
		objects: make(map[*obj.Block]*resolv.Object),
	}
	for _, b := range level.Blocks() {
		r := b.Rect()
		o := resolv.NewObject(r.X, r.Y, r.Width, r.Height, b.Type().String())
		o.SetShape(resolv.NewRectangle(0, 0, r.Width, r.Height))
		o.Data = b
		space.Add(o)
		s.objects[b] = o
	}
	level.OnBlockDestroyed(s.remove)
	return s
}

func (s *OverlapSpace) remove(b *obj.Block) {
	o, ok := s.objects[b]
	if !ok {
		return
	}
	s.space.Remove(o)
	delete(s.objects, b)
}

func (s *OverlapSpace) Len() int {
	return len(s.objects)
}

// candidates returns the blocks resolv files in the cells around r. The query
// is grown by a cell on every side so a block sharing only an edge with r is
// still found, then clipped to the space so far-off rects stay cheap.
func (s *OverlapSpace) candidates(r common.Rect, types []tile.Type) []*obj.Block {
	if !r.Finite() || r.Width < 0 || r.Height < 0 {
		return nil
	}
	x0 := common.Clamp(r.X-s.cell, s.bounds.X, s.bounds.Right())
	y0 := common.Clamp(r.Y-s.cell, s.bounds.Y, s.bounds.Bottom())
	x1 := common.Clamp(r.Right()+s.cell, s.bounds.X, s.bounds.Right())
	y1 := common.Clamp(r.Bottom()+s.cell, s.bounds.Y, s.bounds.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return nil
	}

	tags := make([]string, 0, len(types))
	for _, t := range types {
		tags = append(tags, t.String())
	}

	query := resolv.NewObject(x0, y0, x1-x0, y1-y0)
	s.space.Add(query)
	check := query.Check(0, 0, tags...)
	s.space.Remove(query)
	if check == nil {
		return nil
	}

	out := make([]*obj.Block, 0, len(check.Objects))
	for _, o := range check.Objects {
		if b, ok := o.Data.(*obj.Block); ok {
			out = append(out, b)
		}
	}
	return out
}

func sortByID(blocks []*obj.Block) []*obj.Block {
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID() < blocks[j].ID() })
	return blocks
}

// Overlapping returns the blocks whose rectangles intersect r, limited to the
// given types when any are passed, in block id order.
func (s *OverlapSpace) Overlapping(r common.Rect, types ...tile.Type) []*obj.Block {
	if r.Empty() {
		return nil
	}
	var out []*obj.Block
	for _, b := range s.candidates(r, types) {
		if b.Rect().Intersects(r) {
			out = append(out, b)
		}
	}
	return sortByID(out)
}

// At returns the blocks containing p, edges included, limited to the given
// types when any are passed, in block id order.
func (s *OverlapSpace) At(p common.Vec, types ...tile.Type) []*obj.Block {
	var out []*obj.Block
	for _, b := range s.candidates(common.NewRect(p.X, p.Y, 0, 0), types) {
		if b.Rect().Contains(p) {
			out = append(out, b)
		}
	}
	return sortByID(out)
}

// Touching reports whether r overlaps any block of type t.
func (s *OverlapSpace) Touching(r common.Rect, t tile.Type) bool {
	return len(s.Overlapping(r, t)) > 0
}
