package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/blocklevel/assets"
	"github.com/milk9111/blocklevel/common"
	"github.com/milk9111/blocklevel/config"
	"github.com/milk9111/blocklevel/levels"
	"github.com/milk9111/blocklevel/obj"
	"github.com/milk9111/blocklevel/physics"
	"github.com/milk9111/blocklevel/render"
	"github.com/milk9111/blocklevel/tile"
	"golang.org/x/image/font/basicfont"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	tickSeconds = 1.0 / 60
)

var backgroundColor = color.RGBA{R: 0x20, G: 0x22, B: 0x28, A: 0xff}

type Game struct {
	frames int
	debug  bool
	paused bool

	cfg      *config.Config
	src      levelSource
	textures render.Textures

	level   *obj.Level
	world   *physics.World
	drawer  *render.BlockDrawer
	camera  *common.Camera
	input   *Input
	watcher *levels.Watcher

	breakSound *audio.Player
	face       ebtext.Face
	pauseUI    *ebitenui.UI
	status     string
}

func NewGame(cfg *config.Config, src levelSource, debug bool) (*Game, error) {
	g := &Game{
		debug:  debug,
		cfg:    cfg,
		src:    src,
		camera: common.NewCamera(baseWidth, baseHeight, 1),
		input:  NewInput(),
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
	}

	paths, err := cfg.TexturePaths()
	if err != nil {
		return nil, err
	}
	if g.textures, err = render.LoadTextures(paths); err != nil {
		log.Printf("textures: %v; drawing flat colors", err)
	}
	if g.breakSound, err = assets.LoadAudioPlayer("break.wav"); err != nil {
		log.Printf("audio: %v", err)
	}
	g.pauseUI = NewPauseUI(g)

	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	return g, nil
}

// loadLevel builds the current source. On error the running level is kept.
func (g *Game) loadLevel() error {
	grid, err := g.src.load()
	if err != nil {
		return fmt.Errorf("load level %s: %w", g.src, err)
	}
	var lookup obj.TextureLookup
	if g.textures != nil {
		lookup = g.textures
	}
	l, err := obj.Build(grid, g.cfg.TargetHeight, g.cfg.BuildOptions(lookup))
	if err != nil {
		return fmt.Errorf("build level %s: %w", g.src, err)
	}

	g.level = l
	g.world = physics.NewWorld(l, 0)
	g.drawer = render.NewBlockDrawer(l.Scale())
	l.OnBlockDestroyed(g.drawer.Forget)
	l.OnBlockDestroyed(g.playBreak)

	w, h := l.Size()
	g.camera.SetWorldBounds(w, h)
	g.camera.SnapTo(g.world.BallPosition())
	g.status = g.src.String()
	return nil
}

func (g *Game) reload() {
	if err := g.loadLevel(); err != nil {
		log.Printf("reload: %v", err)
	}
}

func (g *Game) nextLevel() {
	prev := g.src
	g.src = g.src.next()
	if err := g.loadLevel(); err != nil {
		log.Printf("next level: %v", err)
		g.src = prev
	}
}

func (g *Game) playBreak(*obj.Block) {
	if g.breakSound == nil {
		return
	}
	if err := g.breakSound.Rewind(); err != nil {
		log.Printf("audio: %v", err)
		return
	}
	g.breakSound.Play()
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case name, ok := <-g.watcher.Events:
		if ok && g.src.matches(name) {
			log.Printf("Level changed: %s", name)
			g.reload()
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("watch: %v", err)
		}
	default:
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()
	g.input.Update()

	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	switch {
	case g.input.RestartPressed:
		g.reload()
		return nil
	case g.input.NextPressed:
		g.nextLevel()
		return nil
	}

	g.world.ResetContacts()
	g.world.SetTilt(g.input.TiltX, g.input.TiltY)
	g.world.Step(tickSeconds)
	g.level.Tick(tickSeconds)

	contacts := g.world.Contacts()
	switch {
	case contacts.ReachedGoal:
		log.Printf("Level complete: %s in %d frames", g.src, g.frames)
		g.nextLevel()
		return nil
	case contacts.InHole:
		g.world.Respawn()
		g.status = fmt.Sprintf("%s: fell in a hole", g.src)
	}

	g.camera.Update(g.world.BallPosition())
	return nil
}

func (g *Game) ballRect() common.Rect {
	p := g.world.BallPosition()
	r := g.world.BallRadius()
	return common.NewRect(p.X-r, p.Y-r, 2*r, 2*r)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	cam := g.camera.ViewTopLeft()
	g.drawer.Screen = screen
	g.level.Draw(g.drawer, cam)
	g.drawBall(screen, cam)

	if g.debug {
		g.drawDebug(screen, cam)
	}

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(10, baseHeight-24)
	ebtext.Draw(screen, g.status, g.face, op)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawBall(screen *ebiten.Image, cam common.Vec) {
	r := g.ballRect().Translate(cam)
	img := assets.Ball
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width/float64(img.Bounds().Dx()), r.Height/float64(img.Bounds().Dy()))
	op.GeoM.Translate(r.X, r.Y)
	screen.DrawImage(img, op)
}

func (g *Game) drawDebug(screen *ebiten.Image, cam common.Vec) {
	render.DrawSpace(screen, g.world.Space(), cam)
	for _, grp := range g.level.CollisionGroups() {
		r := grp.Bounds.Translate(cam)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1.0, color.RGBA{R: 255, G: 0, B: 255, A: 160}, false)
	}
	ball := g.ballRect()
	near := g.level.Query(ball)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Frames: %d    FPS: %.2f\nblocks: %d  breakable: %d  groups: %d  near ball: %d\ngoal overlap: %t  hole overlap: %t",
		g.frames, ebiten.ActualFPS(),
		len(g.level.Blocks()), len(g.level.Breakables()), len(g.level.CollisionGroups()), len(near),
		g.world.Overlap().Touching(ball, tile.Goal), g.world.Overlap().Touching(ball, tile.Hole),
	))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
