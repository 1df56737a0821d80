package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the view and projection matrices
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	prevViewProj mgl32.Mat4
	hasPrev      bool
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		Yaw:         -90.0,
	}
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// GetOrthoMatrix returns an orthographic projection covering halfExtent
// around the camera, used by top-down capture passes.
func (c *Camera) GetOrthoMatrix(halfExtent float32) mgl32.Mat4 {
	return mgl32.Ortho(-halfExtent, halfExtent, -halfExtent, halfExtent, c.NearPlane, c.FarPlane)
}

func (c *Camera) Front() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	return mgl32.Vec3{
		cos32(pitch) * cos32(yaw),
		sin32(pitch),
		cos32(pitch) * sin32(yaw),
	}.Normalize()
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// ViewProjection returns the combined matrix for the current frame and
// the one captured the previous frame. Motion vector passes reproject
// against the previous matrix; on the first frame both are equal.
func (c *Camera) ViewProjection() (current, previous mgl32.Mat4) {
	current = c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
	previous = current
	if c.hasPrev {
		previous = c.prevViewProj
	}
	return current, previous
}

// EndFrame captures the current view-projection for the next frame's
// reprojection.
func (c *Camera) EndFrame() {
	c.prevViewProj = c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
	c.hasPrev = true
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }
