package physics

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blocklevel/common"
	"github.com/milk9111/blocklevel/obj"
	"github.com/milk9111/blocklevel/tile"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBreakable
	collisionTypeGoal
	collisionTypeHole
	collisionTypeBall
)

// DefaultTilt is the gravity strength applied at full tilt, in world units
// per second squared.
const DefaultTilt = 600.0

// Contacts is what the ball ran into since the last ResetContacts.
type Contacts struct {
	ReachedGoal bool
	// InHole is set once the ball's center is over a hole.
	InHole bool
	// Started lists breakables the ball started breaking, in contact order.
	Started []*obj.BreakableBlock
}

// World owns the Chipmunk space for a level: one static shape per block, the
// level border and a single ball body.
type World struct {
	level         *obj.Level
	space         *cp.Space
	handlersReady bool

	shapes    map[*obj.Block]*cp.Shape
	overlap   *OverlapSpace
	ball      *cp.Body
	ballShape *cp.Shape
	radius    float64
	contacts  Contacts
}

// NewWorld builds the space for level. ballRadius <= 0 picks 0.4 cells.
func NewWorld(level *obj.Level, ballRadius float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})

	if ballRadius <= 0 {
		ballRadius = level.Scale() * 0.4
	}
	w := &World{
		level:  level,
		space:  space,
		shapes:  make(map[*obj.Block]*cp.Shape),
		overlap: NewOverlapSpace(level),
		radius:  ballRadius,
	}
	w.buildStaticShapes()
	w.buildBall()
	w.setupHandlers()
	level.OnBlockDestroyed(w.removeBlock)
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Overlap returns the resolv mirror of the level the world tests hole
// positions against.
func (w *World) Overlap() *OverlapSpace {
	return w.overlap
}

func (w *World) Ball() *cp.Body {
	return w.ball
}

func (w *World) BallRadius() float64 {
	return w.radius
}

func (w *World) BallPosition() common.Vec {
	p := w.ball.Position()
	return common.Vec{X: p.X, Y: p.Y}
}

// SetTilt sets gravity to (x, y) scaled by DefaultTilt. Each component is
// clamped to [-1, 1].
func (w *World) SetTilt(x, y float64) {
	w.space.SetGravity(cp.Vector{
		X: common.Clamp(x, -1, 1) * DefaultTilt,
		Y: common.Clamp(y, -1, 1) * DefaultTilt,
	})
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

func (w *World) Contacts() Contacts {
	return w.contacts
}

// ResetContacts forgets everything reported so far. Call it once per frame
// before Step so Contacts only holds that frame's events.
func (w *World) ResetContacts() {
	w.contacts = Contacts{}
}

// Respawn puts the ball back on the spawn cell at rest and clears contacts.
func (w *World) Respawn() {
	w.ball.SetPosition(w.spawnPosition())
	w.ball.SetVelocityVector(cp.Vector{})
	w.ball.SetAngularVelocity(0)
	w.ResetContacts()
}

// HasShape reports whether b still has a shape in the space.
func (w *World) HasShape(b *obj.Block) bool {
	_, ok := w.shapes[b]
	return ok
}

// ShapeCount is the number of block shapes, excluding the border and ball.
func (w *World) ShapeCount() int {
	return len(w.shapes)
}

func (w *World) spawnPosition() cp.Vector {
	spawn, _ := w.level.SpawnPoint()
	half := w.level.Scale() / 2
	return cp.Vector{X: spawn.X + half, Y: spawn.Y + half}
}

func (w *World) buildStaticShapes() {
	for _, b := range w.level.Blocks() {
		w.addBlock(b)
	}

	worldW, worldH := w.level.Size()
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		w.space.AddShape(shape)
	}
}

func (w *World) addBlock(b *obj.Block) {
	r := b.Rect()
	shape := cp.NewBox2(w.space.StaticBody, r.BB(), 0)
	shape.UserData = b
	switch b.Type() {
	case tile.Obstacle:
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
	case tile.Breakable:
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeBreakable)
	case tile.Goal:
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeGoal)
	case tile.Hole:
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeHole)
	default:
		return
	}
	w.space.AddShape(shape)
	w.shapes[b] = shape
}

func (w *World) removeBlock(b *obj.Block) {
	shape, ok := w.shapes[b]
	if !ok {
		return
	}
	w.space.RemoveShape(shape)
	delete(w.shapes, b)
}

func (w *World) buildBall() {
	mass := 1.0
	moment := cp.MomentForCircle(mass, 0, w.radius, cp.Vector{})
	body := cp.NewBody(mass, moment)
	body.SetPosition(w.spawnPosition())

	shape := cp.NewCircle(body, w.radius, cp.Vector{})
	shape.SetFriction(0.6)
	shape.SetElasticity(0.3)
	shape.SetCollisionType(collisionTypeBall)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.ball = body
	w.ballShape = shape
}

// blockFromArbiter returns the level block on either side of arb.
func blockFromArbiter(arb *cp.Arbiter) *obj.Block {
	a, b := arb.Shapes()
	if blk, ok := a.UserData.(*obj.Block); ok {
		return blk
	}
	if blk, ok := b.UserData.(*obj.Block); ok {
		return blk
	}
	return nil
}

func (w *World) setupHandlers() {
	if w == nil || w.handlersReady || w.space == nil {
		return
	}

	breakHandler := w.space.NewCollisionHandler(collisionTypeBall, collisionTypeBreakable)
	breakHandler.UserData = w
	breakHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		blk := blockFromArbiter(arb)
		if blk == nil || blk.Breakable() == nil {
			return true
		}
		bb := blk.Breakable()
		if bb.State() != obj.Intact {
			return true
		}
		if err := bb.StartBreaking(); err != nil {
			log.Printf("PhysicsWorld: start breaking %s: %v", blk, err)
			return true
		}
		world.contacts.Started = append(world.contacts.Started, bb)
		return true
	}

	goalHandler := w.space.NewCollisionHandler(collisionTypeBall, collisionTypeGoal)
	goalHandler.UserData = w
	goalHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if world, ok := userData.(*World); ok && world != nil {
			world.contacts.ReachedGoal = true
		}
		return true
	}

	// a hole only counts once the ball's center is over it
	holeHandler := w.space.NewCollisionHandler(collisionTypeBall, collisionTypeHole)
	holeHandler.UserData = w
	holeHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		if len(world.overlap.At(world.BallPosition(), tile.Hole)) > 0 {
			world.contacts.InHole = true
		}
		return true
	}

	w.handlersReady = true
}
