package obj

import (
	"fmt"
	"log"
	"slices"

	"github.com/milk9111/blocklevel/common"
	"github.com/milk9111/blocklevel/tile"
)

const (
	DefaultStripCells    = 20
	DefaultBreakDuration = 2.0
)

// BuildOptions tunes how a grid is turned into a level. Zero values pick the
// defaults.
type BuildOptions struct {
	// StripCells is the collision strip width in grid cells.
	StripCells int
	// BreakDuration is the countdown, in seconds, of every breakable block.
	BreakDuration float64
	Order         tile.ScanOrder
	// SplitBreakables builds one block per breakable cell instead of merging.
	SplitBreakables bool
	Textures        TextureLookup
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.StripCells <= 0 {
		o.StripCells = DefaultStripCells
	}
	if !(o.BreakDuration > 0) || !common.Finite(o.BreakDuration) {
		o.BreakDuration = DefaultBreakDuration
	}
	return o
}

// Level is a built level: merged blocks, spawn point and collision strips.
// It is not safe for concurrent use; build, tick and query it from the game
// loop.
type Level struct {
	background *Block
	registry   *Registry
	groups     *CollisionGroups
	spawn      common.Vec
	hasSpawn   bool
	scale      float64
	gridW      int
	gridH      int

	onDestroyed []func(*Block)
}

// Build turns g into a level whose height is targetHeight world units. The
// scale is targetHeight / g.Height(). g must be non-empty and contain a spawn
// cell; on error no level is returned.
func Build(g *tile.Grid, targetHeight float64, opts BuildOptions) (*Level, error) {
	if g.Empty() {
		return nil, fmt.Errorf("%w: grid is %dx%d", ErrInvalidLevelData, g.Width(), g.Height())
	}
	if !(targetHeight > 0) || !common.Finite(targetHeight) {
		return nil, fmt.Errorf("%w: target height %g", ErrInvalidLevelData, targetHeight)
	}
	opts = opts.withDefaults()

	merged := tile.Merge(g, tile.MergeOptions{Order: opts.Order, SplitBreakables: opts.SplitBreakables})
	if !merged.HasSpawn {
		return nil, fmt.Errorf("%w: no spawn point", ErrInvalidLevelData)
	}
	if merged.SpawnCount > 1 {
		log.Printf("Level: %d spawn points, using %d,%d", merged.SpawnCount, merged.Spawn.X, merged.Spawn.Y)
	}

	scale := targetHeight / float64(g.Height())
	lookup := func(t tile.Type) Texture {
		if opts.Textures == nil {
			return nil
		}
		return opts.Textures.Lookup(t)
	}

	width := float64(g.Width()) * scale
	height := float64(g.Height()) * scale
	l := &Level{
		background: newBlock(0, common.NewRect(0, 0, width, height), tile.Clear, lookup(tile.Clear)),
		registry:   NewRegistry(),
		groups:     NewCollisionGroups(width, height, float64(opts.StripCells)*scale),
		spawn:      common.Vec{X: float64(merged.Spawn.X) * scale, Y: float64(merged.Spawn.Y) * scale},
		hasSpawn:   true,
		scale:      scale,
		gridW:      g.Width(),
		gridH:      g.Height(),
	}

	for i, run := range merged.Runs {
		rect := common.NewRect(
			float64(run.X)*scale,
			float64(run.Y)*scale,
			float64(run.W)*scale,
			float64(run.H)*scale,
		)
		var b *Block
		if run.Type == tile.Breakable {
			b = newBreakableBlock(i+1, rect, lookup(run.Type), opts.BreakDuration).Block
		} else {
			b = newBlock(i+1, rect, run.Type, lookup(run.Type))
		}
		l.registry.Add(b)
		l.groups.Register(b)
	}

	log.Printf("Loaded level: %d blocks (%d breakable), %d collision groups, %dx%d grid, scale %g",
		l.registry.Len(), len(l.registry.Breakables()), l.groups.Len(), l.gridW, l.gridH, scale)

	return l, nil
}

// Tick advances every breaking block by dt seconds. A block whose countdown
// runs out is removed from the block list, every collision group and the
// breakable list before the next block is looked at; destroyed listeners
// run after that. Negative dt counts as zero.
func (l *Level) Tick(dt float64) {
	if l == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	for _, bb := range slices.Clone(l.registry.Breakables()) {
		if bb.State() != Breaking {
			continue
		}
		destroyed, err := bb.advance(dt)
		if err != nil {
			panic(err)
		}
		if !destroyed {
			continue
		}
		l.remove(bb.Block)
	}
}

func (l *Level) remove(b *Block) {
	if err := l.registry.Remove(b); err != nil {
		panic(fmt.Sprintf("obj: destroyed block missing from registry: %v", err))
	}
	if err := l.groups.Unregister(b); err != nil {
		panic(fmt.Sprintf("obj: destroyed block missing from collision groups: %v", err))
	}
	for _, fn := range l.onDestroyed {
		fn(b)
	}
}

// OnBlockDestroyed registers fn to run whenever Tick destroys a block.
func (l *Level) OnBlockDestroyed(fn func(*Block)) {
	if l == nil || fn == nil {
		return
	}
	l.onDestroyed = append(l.onDestroyed, fn)
}

// SpawnPoint returns the spawn position in world units.
func (l *Level) SpawnPoint() (common.Vec, bool) {
	if l == nil {
		return common.Vec{}, false
	}
	return l.spawn, l.hasSpawn
}

// Blocks returns the active blocks, excluding the background. The slice is
// owned by the level and changes on Tick.
func (l *Level) Blocks() []*Block {
	return l.registry.All()
}

// Breakables returns the breakable blocks not yet destroyed.
func (l *Level) Breakables() []*BreakableBlock {
	return l.registry.Breakables()
}

func (l *Level) Background() *Block {
	return l.background
}

func (l *Level) CollisionGroups() []*CollisionGroup {
	return l.groups.Groups()
}

// Groups exposes the spatial index itself.
func (l *Level) Groups() *CollisionGroups {
	return l.groups
}

// Scale is the number of world units per grid cell.
func (l *Level) Scale() float64 {
	return l.scale
}

// Size returns the level's width and height in world units.
func (l *Level) Size() (float64, float64) {
	r := l.background.Rect()
	return r.Width, r.Height
}

// GridSize returns the source grid's width and height in cells.
func (l *Level) GridSize() (int, int) {
	return l.gridW, l.gridH
}

// Query returns the active blocks whose rectangles intersect r.
func (l *Level) Query(r common.Rect) []*Block {
	candidates := l.groups.Query(r)
	out := candidates[:0]
	for _, b := range candidates {
		if b.Rect().Intersects(r) {
			out = append(out, b)
		}
	}
	return out
}

// Touching reports whether r intersects any active block of type t.
func (l *Level) Touching(r common.Rect, t tile.Type) bool {
	for _, b := range l.groups.Query(r) {
		if b.Type() == t && b.Rect().Intersects(r) {
			return true
		}
	}
	return false
}

// BlocksOfType returns the active blocks of type t in registry order.
func (l *Level) BlocksOfType(t tile.Type) []*Block {
	var out []*Block
	for _, b := range l.registry.All() {
		if b.Type() == t {
			out = append(out, b)
		}
	}
	return out
}

// Draw hands the background and then every active block to d.
func (l *Level) Draw(d Drawer, camera common.Vec) {
	if l == nil || d == nil {
		return
	}
	d.DrawBlock(l.background, camera)
	for _, b := range l.registry.All() {
		d.DrawBlock(b, camera)
	}
}
