package chunk

import "github.com/go-gl/mathgl/mgl32"

// Size is the edge length of a cubic chunk in voxels.
const Size = 16

// Pos identifies a chunk by its grid coordinates.
type Pos struct {
	X, Y, Z int
}

// WorldOrigin returns the world-space position of the chunk's minimum corner.
func (p Pos) WorldOrigin() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(p.X * Size),
		float32(p.Y * Size),
		float32(p.Z * Size),
	}
}

// FromWorld returns the chunk containing the given world-space position.
func FromWorld(v mgl32.Vec3) Pos {
	return Pos{
		X: floorDiv(int(floor(v.X())), Size),
		Y: floorDiv(int(floor(v.Y())), Size),
		Z: floorDiv(int(floor(v.Z())), Size),
	}
}

func floor(f float32) float32 {
	i := float32(int(f))
	if f < i {
		return i - 1
	}
	return i
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
