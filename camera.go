package haze

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera projects view space onto the drawing buffer.
//
// Near and Far are clip planes, not fog distances. After changing FOV, Aspect,
// Near or Far call UpdateProjectionMatrix; the renderer uses the cached matrix.
type PerspectiveCamera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is drawing buffer width divided by height.
	Aspect float64
	// Near and Far are the clip plane distances along the view direction.
	Near, Far float64

	// Position is the camera origin in world space.
	Position mgl64.Vec3
	// Target is the world-space point the camera looks at.
	Target mgl64.Vec3
	// Up is the world-space up hint used to build the view basis.
	Up mgl64.Vec3

	projection mgl64.Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: mgl64.Vec3{0, 0, -1},
		Up:     mgl64.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

// LookAt points the camera at the given world-space position.
func (c *PerspectiveCamera) LookAt(x, y, z float64) {
	c.Target = mgl64.Vec3{x, y, z}
}

// UpdateProjectionMatrix recomputes the projection from FOV, Aspect, Near and Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the matrix computed by the last UpdateProjectionMatrix.
func (c *PerspectiveCamera) ProjectionMatrix() mgl64.Mat4 {
	return c.projection
}

// ViewMatrix returns the world-to-view transform.
func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	target := c.Target
	if target.ApproxEqual(c.Position) {
		target = c.Position.Sub(mgl64.Vec3{0, 0, 1})
	}
	return mgl64.LookAtV(c.Position, target, c.Up)
}

// ProjectToScreen maps a view-space point to drawing buffer pixels for a
// buffer of the given size. ok is false when the point is at or behind the eye.
func (c *PerspectiveCamera) ProjectToScreen(view mgl64.Vec3, width, height float64) (x, y float64, ok bool) {
	clip := c.projection.Mul4x1(view.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	return (ndcX + 1) * 0.5 * width, (1 - ndcY) * 0.5 * height, true
}
