package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const stickDeadZone = 0.15

// Input holds the tilt and menu keys polled each frame.
type Input struct {
	// TiltX and TiltY are in [-1, 1]; +Y tilts the level toward the bottom
	// of the screen.
	TiltX float64
	TiltY float64

	RestartPressed bool
	NextPressed    bool
	PausePressed   bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls keyboard and the first gamepad. A stick outside the dead zone
// overrides the keys.
func (i *Input) Update() {
	var tx, ty float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		tx -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		tx += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		ty -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		ty += 1
	}

	var gpRestart, gpNext, gpPause bool
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		sx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		sy := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if sx*sx+sy*sy > stickDeadZone*stickDeadZone {
			tx, ty = sx, sy
		}
		gpRestart = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		gpNext = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightTop)
		gpPause = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.TiltX, i.TiltY = tx, ty
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR) || gpRestart
	i.NextPressed = inpututil.IsKeyJustPressed(ebiten.KeyN) || gpNext
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) || gpPause
}
