// Package camera provides the fly camera and the per-frame viewport the
// software pipeline projects with.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/pkg/math"
)

// Camera is a free-flying Euler camera. It looks along +z with y up when
// all angles are zero.
type Camera struct {
	Pos              math.Vec3
	Yaw, Pitch, Roll float32
	// FOV is kept for callers; the projection uses a unit near plane.
	FOV float32

	// Constraints
	MinPitch float32
	MaxPitch float32

	// Sensitivity
	TurnSensitivity float32
	MoveSpeed       float32
}

// New creates a camera at the origin with default settings.
func New() *Camera {
	return &Camera{
		FOV:             math32.Pi / 2,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		TurnSensitivity: 0.005,
		MoveSpeed:       4,
	}
}

// Orientation returns the camera's rotation from camera to world space.
func (c *Camera) Orientation() math.Rotation {
	return math.RotationFromEuler(c.Yaw, c.Pitch, c.Roll)
}

// Forward returns the world-space view direction.
func (c *Camera) Forward() math.Vec3 {
	return c.Orientation().Rotate(math.Vec3{Z: 1})
}

// Right returns the world-space right direction.
func (c *Camera) Right() math.Vec3 {
	return c.Orientation().Rotate(math.Vec3{X: 1})
}

// HandleDrag turns the camera by a mouse delta in pixels.
func (c *Camera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.TurnSensitivity
	c.Pitch += deltaY * c.TurnSensitivity
	c.Pitch = min(max(c.Pitch, c.MinPitch), c.MaxPitch)
}

// HandleMovement moves the camera along its own axes; up is world up.
// dt is in seconds.
func (c *Camera) HandleMovement(forward, right, up, dt float32) {
	step := c.MoveSpeed * dt
	c.Pos = c.Pos.
		Add(c.Forward().Scale(forward * step)).
		Add(c.Right().Scale(right * step)).
		Add(math.Vec3{Y: up * step})
}

// Viewport returns the frame's projection data for a width×height image.
func (c *Camera) Viewport(width, height int, near float32) Viewport {
	orient := c.Orientation()
	return Viewport{
		Near:   near,
		HalfW:  float32(width) / 2,
		HalfH:  float32(height) / 2,
		Aspect: float32(width) / float32(height),
		Width:  width,
		Height: height,
		Plane:  geometry.PlaneFromPoint(orient.Rotate(math.Vec3{Z: 1}), c.Pos),
		Pos:    c.Pos,
		Rot:    orient.Inverse(),
	}
}
