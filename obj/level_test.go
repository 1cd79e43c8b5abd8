package obj

import (
	"math"
	"math/rand"
	"testing"

	"github.com/milk9111/blocklevel/common"
	"github.com/milk9111/blocklevel/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireIndexConsistent checks that the collision groups hold exactly the
// registry's blocks, each in every strip it intersects and in no other.
func requireIndexConsistent(t *testing.T, l *Level) {
	t.Helper()
	union := make(map[*Block]struct{})
	for _, g := range l.CollisionGroups() {
		for _, b := range g.Blocks() {
			union[b] = struct{}{}
		}
	}
	require.Len(t, union, len(l.Blocks()))
	for _, b := range l.Blocks() {
		_, ok := union[b]
		require.True(t, ok, "%s missing from collision groups", b)
		for i, g := range l.CollisionGroups() {
			require.Equal(t, g.Bounds.Intersects(b.Rect()), g.Contains(b), "%s vs group %d", b, i)
		}
	}
}

func buildLevel(t *testing.T, src string, height float64, opts BuildOptions) *Level {
	t.Helper()
	l, err := Build(tile.MustParseGrid(src), height, opts)
	require.NoError(t, err)
	return l
}

func TestBuildScenarioBreakableCenter(t *testing.T) {
	l := buildLevel(t, `
		s..
		.x.
		...
	`, 90, BuildOptions{BreakDuration: 2})

	assert.Equal(t, 30.0, l.Scale())

	spawn, ok := l.SpawnPoint()
	require.True(t, ok)
	assert.Equal(t, common.Vec{X: 0, Y: 0}, spawn)

	assert.Equal(t, common.NewRect(0, 0, 90, 90), l.Background().Rect())
	assert.Equal(t, tile.Clear, l.Background().Type())

	require.Len(t, l.Blocks(), 1)
	crate := l.Blocks()[0]
	assert.Equal(t, tile.Breakable, crate.Type())
	assert.Equal(t, common.NewRect(30, 30, 30, 30), crate.Rect())
	require.NotNil(t, crate.Breakable())
	require.Len(t, l.Breakables(), 1)
	requireIndexConsistent(t, l)

	require.NoError(t, crate.Breakable().StartBreaking())

	l.Tick(1.0)
	require.Len(t, l.Blocks(), 1)
	assert.True(t, l.CollisionGroups()[0].Contains(crate))

	l.Tick(1.5)
	assert.Empty(t, l.Blocks())
	assert.Empty(t, l.Breakables())
	for _, g := range l.CollisionGroups() {
		assert.False(t, g.Contains(crate))
	}
	assert.Equal(t, Destroyed, crate.Breakable().State())
	requireIndexConsistent(t, l)
}

func TestBuildSolidRowMergesToOneBlock(t *testing.T) {
	l := buildLevel(t, `
		s....
		#####
	`, 20, BuildOptions{})

	require.Len(t, l.Blocks(), 1)
	b := l.Blocks()[0]
	assert.Equal(t, tile.Obstacle, b.Type())
	assert.Equal(t, common.NewRect(0, 10, 50, 10), b.Rect())
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name   string
		grid   *tile.Grid
		height float64
	}{
		{"nil_grid", nil, 100},
		{"zero_width", tile.NewGrid(0, 4), 100},
		{"no_spawn", tile.MustParseGrid("##\n.."), 100},
		{"zero_height_target", tile.MustParseGrid("s."), 0},
		{"negative_height_target", tile.MustParseGrid("s."), -10},
		{"inf_target", tile.MustParseGrid("s#\n##"), math.Inf(1)},
		{"nan_target", tile.MustParseGrid("s#\n##"), math.NaN()},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, err := Build(c.grid, c.height, BuildOptions{})
			assert.ErrorIs(t, err, ErrInvalidLevelData)
			assert.Nil(t, l)
		})
	}
}

func TestBuildScaleInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 25; i++ {
		w, h := 1+rng.Intn(60), 1+rng.Intn(25)
		g := tile.NewGrid(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g.Set(x, y, tile.Types[rng.Intn(len(tile.Types)-1)])
			}
		}
		g.Set(rng.Intn(w), rng.Intn(h), tile.Spawn)

		target := 100 + rng.Float64()*900
		l, err := Build(g, target, BuildOptions{StripCells: 1 + rng.Intn(10)})
		require.NoError(t, err)

		assert.InDelta(t, target/float64(h), l.Scale(), 1e-9)
		for _, b := range l.Blocks() {
			require.LessOrEqual(t, b.Rect().Bottom(), target+1e-6)
			require.LessOrEqual(t, b.Rect().Right(), float64(w)*l.Scale()+1e-6)
		}
		requireIndexConsistent(t, l)
	}
}

func TestBuildCoversEveryCell(t *testing.T) {
	src := `
		s..#####..x
		.##.....#xx
		.##.oo..#..
		....oo.gg##
		###########
	`
	g := tile.MustParseGrid(src)
	l := buildLevel(t, src, 50, BuildOptions{})
	scale := l.Scale()

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			center := common.Vec{X: (float64(x) + 0.5) * scale, Y: (float64(y) + 0.5) * scale}
			var hits []*Block
			for _, b := range l.Blocks() {
				if b.Rect().Contains(center) {
					hits = append(hits, b)
				}
			}
			switch typ := g.At(x, y); typ {
			case tile.Clear, tile.Spawn:
				assert.Empty(t, hits, "cell %d,%d", x, y)
			default:
				require.Len(t, hits, 1, "cell %d,%d", x, y)
				assert.Equal(t, typ, hits[0].Type(), "cell %d,%d", x, y)
			}
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	src := `
		#..x#.g
		#s.x#.g
		##ooo##
	`
	type shape struct {
		id   int
		rect common.Rect
		typ  tile.Type
	}
	snapshot := func(l *Level) []shape {
		var out []shape
		for _, b := range l.Blocks() {
			out = append(out, shape{b.ID(), b.Rect(), b.Type()})
		}
		return out
	}

	for _, order := range []tile.ScanOrder{tile.ColumnMajor, tile.RowMajor} {
		opts := BuildOptions{Order: order}
		first := snapshot(buildLevel(t, src, 30, opts))
		second := snapshot(buildLevel(t, src, 30, opts))
		assert.Equal(t, first, second, order.String())
	}
}

func TestBuildSplitBreakables(t *testing.T) {
	src := "sxx\n.xx"
	merged := buildLevel(t, src, 20, BuildOptions{})
	split := buildLevel(t, src, 20, BuildOptions{SplitBreakables: true})

	assert.Len(t, merged.Breakables(), 1)
	assert.Len(t, split.Breakables(), 4)
}

func TestBuildAttachesTextures(t *testing.T) {
	textures := TextureMap{
		tile.Clear:     "floor",
		tile.Obstacle:  "wall",
		tile.Breakable: "crate",
		tile.Hole:      "hole",
		tile.Goal:      "goal",
	}
	l := buildLevel(t, "s#xog", 10, BuildOptions{Textures: textures})

	assert.Equal(t, "floor", l.Background().Texture())
	for _, b := range l.Blocks() {
		assert.Equal(t, textures[b.Type()], b.Texture(), b.String())
	}
}

func TestTickLifecycle(t *testing.T) {
	src := `
		s.x.x
		#####
	`
	t.Run("never_started_stays", func(t *testing.T) {
		l := buildLevel(t, src, 20, BuildOptions{BreakDuration: 1})
		for i := 0; i < 100; i++ {
			l.Tick(1)
		}
		assert.Len(t, l.Breakables(), 2)
		assert.Len(t, l.Blocks(), 3)
	})

	t.Run("only_started_block_breaks", func(t *testing.T) {
		l := buildLevel(t, src, 20, BuildOptions{BreakDuration: 1})
		var destroyed []*Block
		l.OnBlockDestroyed(func(b *Block) {
			assert.False(t, l.registry.Contains(b), "listeners run after removal")
			destroyed = append(destroyed, b)
		})

		target := l.Breakables()[1]
		other := l.Breakables()[0]
		require.NoError(t, target.StartBreaking())

		l.Tick(0.4)
		l.Tick(0.4)
		assert.Empty(t, destroyed)
		l.Tick(0.2)

		require.Equal(t, []*Block{target.Block}, destroyed)
		assert.Equal(t, []*BreakableBlock{other}, l.Breakables())
		assert.NotContains(t, l.Blocks(), target.Block)
		assert.Contains(t, l.Blocks(), other.Block)
		requireIndexConsistent(t, l)

		l.Tick(5)
		assert.Len(t, destroyed, 1, "destroyed blocks are not revisited")
	})

	t.Run("several_in_one_tick", func(t *testing.T) {
		l := buildLevel(t, src, 20, BuildOptions{BreakDuration: 1})
		for _, bb := range l.Breakables() {
			require.NoError(t, bb.StartBreaking())
		}
		l.Tick(3)
		assert.Empty(t, l.Breakables())
		assert.Len(t, l.Blocks(), 1)
		requireIndexConsistent(t, l)
	})

	t.Run("negative_dt_ignored", func(t *testing.T) {
		l := buildLevel(t, src, 20, BuildOptions{BreakDuration: 1})
		bb := l.Breakables()[0]
		require.NoError(t, bb.StartBreaking())
		l.Tick(-10)
		assert.InDelta(t, 1.0, bb.Remaining(), 1e-9)
	})
}

func TestLevelQueries(t *testing.T) {
	l := buildLevel(t, `
		s...g
		.##.g
		....o
	`, 30, BuildOptions{StripCells: 2})

	assert.Equal(t, 10.0, l.Scale())
	w, h := l.Size()
	assert.Equal(t, 50.0, w)
	assert.Equal(t, 30.0, h)
	gw, gh := l.GridSize()
	assert.Equal(t, 5, gw)
	assert.Equal(t, 3, gh)
	assert.Equal(t, 3, len(l.CollisionGroups()))

	assert.True(t, l.Touching(common.NewRect(41, 1, 5, 5), tile.Goal))
	assert.False(t, l.Touching(common.NewRect(0, 0, 5, 5), tile.Goal))
	assert.True(t, l.Touching(common.NewRect(30, 5, 5, 5), tile.Obstacle), "touching edges count")
	assert.True(t, l.Touching(common.NewRect(42, 22, 2, 2), tile.Hole))

	hits := l.Query(common.NewRect(15, 15, 20, 2))
	require.Len(t, hits, 1)
	assert.Equal(t, tile.Obstacle, hits[0].Type())

	require.Len(t, l.BlocksOfType(tile.Goal), 1)
	assert.Equal(t, common.NewRect(40, 0, 10, 20), l.BlocksOfType(tile.Goal)[0].Rect())
}

type recordingDrawer struct {
	drawn  []*Block
	camera common.Vec
}

func (d *recordingDrawer) DrawBlock(b *Block, camera common.Vec) {
	d.drawn = append(d.drawn, b)
	d.camera = camera
}

func TestLevelDraw(t *testing.T) {
	l := buildLevel(t, "s#g", 10, BuildOptions{})
	d := &recordingDrawer{}
	l.Draw(d, common.Vec{X: 3, Y: 4})

	require.Len(t, d.drawn, 3)
	assert.Same(t, l.Background(), d.drawn[0])
	assert.Equal(t, l.Blocks(), d.drawn[1:])
	assert.Equal(t, common.Vec{X: 3, Y: 4}, d.camera)
}
