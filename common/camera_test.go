package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraClampsToWorld(t *testing.T) {
	c := NewCamera(200, 100, 1)
	c.SetWorldBounds(1000, 500)

	c.SnapTo(Vec{X: 0, Y: 0})
	assert.Equal(t, Vec{X: 0, Y: 0}, c.ViewTopLeft())

	c.SnapTo(Vec{X: 5000, Y: 5000})
	assert.Equal(t, Vec{X: 800, Y: 400}, c.ViewTopLeft())

	c.SnapTo(Vec{X: 500, Y: 250})
	assert.Equal(t, Vec{X: 400, Y: 200}, c.ViewTopLeft())
}

func TestCameraCentersSmallWorld(t *testing.T) {
	c := NewCamera(400, 300, 2)
	c.SetWorldBounds(100, 60)
	c.SnapTo(Vec{X: 0, Y: 0})

	assert.Equal(t, 50.0, c.PosX)
	assert.Equal(t, 30.0, c.PosY)
}

func TestCameraSmoothing(t *testing.T) {
	c := NewCamera(100, 100, 1)
	c.SnapTo(Vec{X: 0, Y: 0})
	c.SetSmooth(0.5)

	c.Update(Vec{X: 100, Y: 40})
	assert.Equal(t, 50.0, c.PosX)
	assert.Equal(t, 20.0, c.PosY)

	c.SetSmooth(0)
	c.Update(Vec{X: 100, Y: 40})
	assert.Equal(t, 100.0, c.PosX)
}

func TestCameraZoom(t *testing.T) {
	c := NewCamera(100, 100, 0)
	assert.Equal(t, 1.0, c.Zoom())
	c.SetZoom(-2)
	assert.Equal(t, 1.0, c.Zoom())
	c.SetZoom(4)
	c.SnapTo(Vec{X: 10, Y: 10})
	assert.Equal(t, Vec{X: -2.5, Y: -2.5}, c.ViewTopLeft())
}
