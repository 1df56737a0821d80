// Package quad packs greedily-merged voxel faces into the fixed-width
// records consumed by the chunk shaders. The bit layout and corner
// conventions here are the single source of truth: the same constants
// are injected into the GLSL side as #defines at pipeline build time.
package quad

import "github.com/go-gl/mathgl/mgl32"

// Axis is one of the three world axes.
type Axis uint32

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Face is one of the six axis-aligned face directions.
type Face uint32

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ

	FaceCount = 6
)

// Bitfield layout of Quad.Bitfields. Rotation occupies the low two
// bits, the flip bits follow, and the face occupies three bits above
// them. Encode is the only writer of this word.
const (
	RotationMask  uint32 = 0x3
	RotationShift uint32 = 0
	FlipUVXBit    uint32 = 1 << 2
	FlipUVYBit    uint32 = 1 << 3
	FaceMask      uint32 = 0x7
	FaceShift     uint32 = 4
)

// Axis returns the world axis held constant by the face.
func (f Face) Axis() Axis {
	return Axis(f / 2)
}

// Positive reports whether the face points along the positive direction
// of its axis.
func (f Face) Positive() bool {
	return f%2 == 0
}

// AxisDirection is +1 or -1 along the face's axis.
func (f Face) AxisDirection() int {
	if f.Positive() {
		return 1
	}
	return -1
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	var n mgl32.Vec3
	n[f.Axis()] = float32(f.AxisDirection())
	return n
}

// FaceFromNormal returns the face whose normal matches the given
// axis-aligned direction. Exactly one component must be non-zero.
func FaceFromNormal(nx, ny, nz int) Face {
	switch {
	case nx > 0:
		return FacePosX
	case nx < 0:
		return FaceNegX
	case ny > 0:
		return FacePosY
	case ny < 0:
		return FaceNegY
	case nz > 0:
		return FacePosZ
	default:
		return FaceNegZ
	}
}

// Quad is one packed voxel face. The layout is std430-compatible and
// mirrored by the GLSL struct in assets/shaders/chunks: two plane-space
// extents, the coordinate along the constant axis, a texture id and the
// packed bitfield word. Written once by the mesher, read-only after.
type Quad struct {
	Min       mgl32.Vec2
	Max       mgl32.Vec2
	Magnitude float32
	TextureID uint32
	Bitfields uint32
	_         uint32
}

// Encode packs a voxel face. min and max are plane-space coordinates
// (the constant axis dropped, remaining axes kept in X<Y<Z order) with
// min <= max componentwise. magnitude is the position of the face's
// plane along its constant axis. rotation is taken mod 4.
func Encode(face Face, min, max mgl32.Vec2, magnitude float32, textureID, rotation uint32, flipX, flipY bool) Quad {
	bits := (rotation & RotationMask) << RotationShift
	bits |= (uint32(face) & FaceMask) << FaceShift
	if flipX {
		bits |= FlipUVXBit
	}
	if flipY {
		bits |= FlipUVYBit
	}

	return Quad{
		Min:       min,
		Max:       max,
		Magnitude: magnitude,
		TextureID: textureID,
		Bitfields: bits,
	}
}

// Face extracts the face direction.
func (q Quad) Face() Face {
	return Face((q.Bitfields >> FaceShift) & FaceMask)
}

// Rotation extracts the texture rotation code (0..3).
func (q Quad) Rotation() uint32 {
	return (q.Bitfields >> RotationShift) & RotationMask
}

// FlipUVX reports whether the texture is flipped along U.
func (q Quad) FlipUVX() bool {
	return q.Bitfields&FlipUVXBit != 0
}

// FlipUVY reports whether the texture is flipped along V.
func (q Quad) FlipUVY() bool {
	return q.Bitfields&FlipUVYBit != 0
}

// Normal returns the quad's outward normal.
func (q Quad) Normal() mgl32.Vec3 {
	return q.Face().Normal()
}

// Extent returns the plane-space size of the quad.
func (q Quad) Extent() mgl32.Vec2 {
	return q.Max.Sub(q.Min)
}

/*
Corner convention, fixed once and matched by the shared index buffer:

	0---1
	|   |
	2---3

in the quad's 2D plane, with U growing right and V growing up. The
index pattern for every quad is [0,1,2, 1,3,2]. For faces PosX, NegY
and PosZ corners 1 and 2 are swapped during lookup so that the shared
pattern winds counter-clockwise seen from outside the volume on all six
faces.
*/

// windingCorner maps a logical corner index to the stored rectangle
// corner, applying the per-face winding swap.
func (f Face) windingCorner(corner uint32) uint32 {
	switch f {
	case FacePosX, FaceNegY, FacePosZ:
		switch corner {
		case 1:
			return 2
		case 2:
			return 1
		}
	}
	return corner
}

// corner2D returns the rectangle corner in plane space.
func (q Quad) corner2D(corner uint32) mgl32.Vec2 {
	switch corner {
	case 0:
		return mgl32.Vec2{q.Min.X(), q.Max.Y()}
	case 1:
		return mgl32.Vec2{q.Max.X(), q.Max.Y()}
	case 2:
		return mgl32.Vec2{q.Min.X(), q.Min.Y()}
	default:
		return mgl32.Vec2{q.Max.X(), q.Min.Y()}
	}
}

// CornerPosition returns the 3D position of corner index 0..3, with the
// winding swap applied. The result is in the same space as the quad's
// plane coordinates (chunk-local for chunk meshes).
func (q Quad) CornerPosition(corner uint32) mgl32.Vec3 {
	c := q.corner2D(q.Face().windingCorner(corner))
	return UnprojectFromPlane(c, q.Face().Axis(), q.Magnitude)
}

// CornerUV returns the plane-space texture coordinate of corner 0..3
// relative to the quad's minimum, before any rotation/flip correction.
// The winding swap is applied so position and UV stay paired.
func (q Quad) CornerUV(corner uint32) mgl32.Vec2 {
	c := q.corner2D(q.Face().windingCorner(corner))
	return c.Sub(q.Min)
}

// ProjectToPlane drops the given axis from a 3D position, keeping the
// remaining axes in X<Y<Z order. Both faces of an axis project through
// this same mapping; the mesher accounts for the resulting mirroring on
// negative faces with the flip bits.
func ProjectToPlane(p mgl32.Vec3, axis Axis) mgl32.Vec2 {
	switch axis {
	case AxisX:
		return mgl32.Vec2{p.Y(), p.Z()}
	case AxisY:
		return mgl32.Vec2{p.X(), p.Z()}
	default:
		return mgl32.Vec2{p.X(), p.Y()}
	}
}

// UnprojectFromPlane is the inverse of ProjectToPlane, inserting
// magnitude along the dropped axis.
func UnprojectFromPlane(c mgl32.Vec2, axis Axis, magnitude float32) mgl32.Vec3 {
	switch axis {
	case AxisX:
		return mgl32.Vec3{magnitude, c.X(), c.Y()}
	case AxisY:
		return mgl32.Vec3{c.X(), magnitude, c.Y()}
	default:
		return mgl32.Vec3{c.X(), c.Y(), magnitude}
	}
}

// TransformUV applies a rotation code (0..3 quarter turns) and flips to
// a plane-space UV within a quad of the given extent. Rotation happens
// in the quad's normalized space, flips are applied after. Degenerate
// extents pass through unchanged.
func TransformUV(uv, extent mgl32.Vec2, rotation uint32, flipX, flipY bool) mgl32.Vec2 {
	w, h := extent.X(), extent.Y()
	if w <= 0 || h <= 0 {
		return uv
	}

	s, t := uv.X()/w, uv.Y()/h
	for i := uint32(0); i < rotation&RotationMask; i++ {
		s, t = t, 1-s
	}
	if flipX {
		s = 1 - s
	}
	if flipY {
		t = 1 - t
	}
	return mgl32.Vec2{s * w, t * h}
}
