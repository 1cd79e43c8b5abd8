package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/blocklevel/common"
	"github.com/milk9111/blocklevel/obj"
	"github.com/milk9111/blocklevel/tile"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	minBreakAlpha = 0.15
	minBreakScale = 0.85
)

type fade struct {
	tween   *gween.Tween
	elapsed float64
	alpha   float32
}

// BlockDrawer draws level blocks onto Screen. Textured blocks repeat their
// texture once per Cell world units; untextured blocks are filled with the
// tile's encoding color. Breaking blocks fade and shrink as their countdown
// runs.
type BlockDrawer struct {
	Screen *ebiten.Image
	Cell   float64

	fades map[*obj.BreakableBlock]*fade
}

func NewBlockDrawer(cell float64) *BlockDrawer {
	return &BlockDrawer{
		Cell:  cell,
		fades: make(map[*obj.BreakableBlock]*fade),
	}
}

// DrawBlock implements obj.Drawer.
func (d *BlockDrawer) DrawBlock(b *obj.Block, camera common.Vec) {
	if d == nil || d.Screen == nil || b == nil {
		return
	}
	r := b.Rect().Translate(camera)
	alpha := float32(1)
	if bb := b.Breakable(); bb != nil && bb.State() == obj.Breaking {
		alpha = d.fadeAlpha(bb)
		s := common.Lerp(1, minBreakScale, bb.Progress())
		c := r.Center()
		r = common.NewRect(c.X-r.Width*s/2, c.Y-r.Height*s/2, r.Width*s, r.Height*s)
	}

	img, _ := b.Texture().(*ebiten.Image)
	if img == nil {
		clr := tile.Color(b.Type())
		clr.A = uint8(float32(clr.A) * alpha)
		vector.FillRect(d.Screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), premultiply(clr), false)
		return
	}
	d.drawTiled(img, r, alpha)
}

// Forget drops fade state for a destroyed block.
func (d *BlockDrawer) Forget(b *obj.Block) {
	if bb := b.Breakable(); bb != nil {
		delete(d.fades, bb)
	}
}

func (d *BlockDrawer) fadeAlpha(bb *obj.BreakableBlock) float32 {
	f := d.fades[bb]
	if f == nil {
		f = &fade{
			tween: gween.New(1, minBreakAlpha, float32(bb.Duration()), ease.InQuad),
			alpha: 1,
		}
		d.fades[bb] = f
	}
	elapsed := bb.Duration() - bb.Remaining()
	if elapsed > f.elapsed {
		f.alpha, _ = f.tween.Update(float32(elapsed - f.elapsed))
		f.elapsed = elapsed
	}
	return f.alpha
}

func (d *BlockDrawer) drawTiled(img *ebiten.Image, r common.Rect, alpha float32) {
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	if iw == 0 || ih == 0 {
		return
	}
	nx, ny := 1, 1
	if d.Cell > 0 {
		nx = int(math.Max(1, math.Round(r.Width/d.Cell)))
		ny = int(math.Max(1, math.Round(r.Height/d.Cell)))
	}
	cw, ch := r.Width/float64(nx), r.Height/float64(ny)

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(cw/iw, ch/ih)
			op.GeoM.Translate(r.X+float64(i)*cw, r.Y+float64(j)*ch)
			op.ColorScale.ScaleAlpha(alpha)
			d.Screen.DrawImage(img, op)
		}
	}
}

func premultiply(c color.RGBA) color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}
