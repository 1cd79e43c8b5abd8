package common

import "math"

// Camera tracks a world-space view centered on a point and clamped to the
// world bounds.
type Camera struct {
	PosX float64
	PosY float64

	screenW float64
	screenH float64
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow.
	smooth float64
	// world bounds (0 means unbounded)
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		PosX:    screenW / 2,
		PosY:    screenH / 2,
		screenW: screenW,
		screenH: screenH,
		zoom:    zoom,
		smooth:  0.15,
	}
}

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetScreenSize updates the view size in screen pixels.
func (c *Camera) SetScreenSize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = Clamp(f, 0, 1)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() Vec {
	viewW := c.screenW / c.zoom
	viewH := c.screenH / c.zoom
	return Vec{X: c.PosX - viewW/2, Y: c.PosY - viewH/2}
}

// Update moves the camera toward target. Call it from the fixed-rate update
// loop so smoothing is frame-rate independent.
func (c *Camera) Update(target Vec) {
	if c.smooth <= 0 || c.smooth >= 1 {
		c.PosX, c.PosY = target.X, target.Y
	} else {
		c.PosX = Lerp(c.PosX, target.X, c.smooth)
		c.PosY = Lerp(c.PosY, target.Y, c.smooth)
	}
	c.settle()
}

// SnapTo centers the camera on target immediately, e.g. after a level load.
func (c *Camera) SnapTo(target Vec) {
	c.PosX, c.PosY = target.X, target.Y
	c.settle()
}

// settle snaps to the 1/zoom grid and clamps to the world bounds. A world
// smaller than the view is centered.
func (c *Camera) settle() {
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	halfW := c.screenW / c.zoom / 2
	halfH := c.screenH / c.zoom / 2
	if c.worldW > 0 {
		if c.worldW-halfW < halfW {
			c.PosX = c.worldW / 2
		} else {
			c.PosX = Clamp(c.PosX, halfW, c.worldW-halfW)
		}
	}
	if c.worldH > 0 {
		if c.worldH-halfH < halfH {
			c.PosY = c.worldH / 2
		} else {
			c.PosY = Clamp(c.PosY, halfH, c.worldH-halfH)
		}
	}
}
