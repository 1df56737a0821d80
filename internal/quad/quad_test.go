package quad

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEncodeRoundTrip(t *testing.T) {
	min := mgl32.Vec2{1, 2}
	max := mgl32.Vec2{4, 7}

	for face := Face(0); face < FaceCount; face++ {
		for rot := uint32(0); rot < 4; rot++ {
			for _, flipX := range []bool{false, true} {
				for _, flipY := range []bool{false, true} {
					q := Encode(face, min, max, 5, 42, rot, flipX, flipY)

					if q.Face() != face {
						t.Fatalf("face: got %d, want %d", q.Face(), face)
					}
					if q.Rotation() != rot {
						t.Fatalf("rotation: got %d, want %d", q.Rotation(), rot)
					}
					if q.FlipUVX() != flipX || q.FlipUVY() != flipY {
						t.Fatalf("flips: got (%v,%v), want (%v,%v)", q.FlipUVX(), q.FlipUVY(), flipX, flipY)
					}
					if q.TextureID != 42 {
						t.Fatalf("texture id: got %d, want 42", q.TextureID)
					}
					if q.Min != min || q.Max != max || q.Magnitude != 5 {
						t.Fatalf("bounds: got %v..%v mag %v", q.Min, q.Max, q.Magnitude)
					}
				}
			}
		}
	}
}

func TestRotationTruncated(t *testing.T) {
	q := Encode(FacePosY, mgl32.Vec2{}, mgl32.Vec2{1, 1}, 0, 0, 7, false, false)
	if q.Rotation() != 7&RotationMask {
		t.Fatalf("rotation not masked: got %d", q.Rotation())
	}
	if q.Face() != FacePosY {
		t.Fatalf("rotation overflow clobbered face: got %d", q.Face())
	}
}

func TestCornerPositionsDistinctAndPlanar(t *testing.T) {
	for face := Face(0); face < FaceCount; face++ {
		q := Encode(face, mgl32.Vec2{0, 0}, mgl32.Vec2{3, 2}, 8, 0, 0, false, false)

		seen := map[mgl32.Vec3]bool{}
		for c := uint32(0); c < 4; c++ {
			p := q.CornerPosition(c)
			if seen[p] {
				t.Fatalf("face %d: duplicate corner %v", face, p)
			}
			seen[p] = true

			if p[face.Axis()] != 8 {
				t.Fatalf("face %d corner %d: constant axis is %v, want 8", face, c, p[face.Axis()])
			}
			// Repeated calls must be deterministic.
			if p != q.CornerPosition(c) {
				t.Fatalf("face %d corner %d: not deterministic", face, c)
			}
		}
	}
}

// The shared index pattern [0,1,2, 1,3,2] must be counter-clockwise
// seen from outside on every face: the geometric normal of triangle
// (c0,c1,c2) must equal the face normal.
func TestCornerWindingMatchesFaceNormal(t *testing.T) {
	for face := Face(0); face < FaceCount; face++ {
		q := Encode(face, mgl32.Vec2{1, 1}, mgl32.Vec2{4, 3}, 5, 0, 0, false, false)

		c0 := q.CornerPosition(0)
		c1 := q.CornerPosition(1)
		c2 := q.CornerPosition(2)

		n := c1.Sub(c0).Cross(c2.Sub(c0)).Normalize()
		want := face.Normal()
		if !n.ApproxEqualThreshold(want, 1e-6) {
			t.Fatalf("face %d: triangle normal %v, want %v", face, n, want)
		}

		// Second triangle (c1,c3,c2) faces the same way.
		c3 := q.CornerPosition(3)
		n2 := c3.Sub(c1).Cross(c2.Sub(c1)).Normalize()
		if !n2.ApproxEqualThreshold(want, 1e-6) {
			t.Fatalf("face %d: second triangle normal %v, want %v", face, n2, want)
		}
	}
}

func TestProjectUnprojectInverse(t *testing.T) {
	p := mgl32.Vec3{1, 2, 3}
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		c := ProjectToPlane(p, axis)
		back := UnprojectFromPlane(c, axis, p[axis])
		if back != p {
			t.Fatalf("axis %d: %v -> %v -> %v", axis, p, c, back)
		}
	}
}

// Opposite faces share an axis and project through the same mapping, so
// projecting geometrically mirrored corners yields identical plane
// coordinates. The logical corners differ only by the winding swap.
func TestOppositeFaceProjectionConsistency(t *testing.T) {
	pairs := [][2]Face{
		{FacePosX, FaceNegX},
		{FacePosY, FaceNegY},
		{FacePosZ, FaceNegZ},
	}

	for _, pair := range pairs {
		pos := Encode(pair[0], mgl32.Vec2{0, 0}, mgl32.Vec2{2, 3}, 1, 0, 0, false, false)
		neg := Encode(pair[1], mgl32.Vec2{0, 0}, mgl32.Vec2{2, 3}, 0, 0, 0, false, false)

		axis := pair[0].Axis()
		for c := uint32(0); c < 4; c++ {
			pp := ProjectToPlane(pos.CornerPosition(c), axis)
			// The winding swap mirrors corners 1 and 2 between the pair.
			np := ProjectToPlane(neg.CornerPosition(pair[1].windingCorner(pair[0].windingCorner(c))), axis)
			if pp != np {
				t.Fatalf("faces %d/%d corner %d: projections %v vs %v", pair[0], pair[1], c, pp, np)
			}
		}
	}
}

func TestCornerUVSpansExtent(t *testing.T) {
	q := Encode(FaceNegZ, mgl32.Vec2{2, 5}, mgl32.Vec2{6, 8}, 0, 0, 0, false, false)

	want := map[uint32]mgl32.Vec2{
		0: {0, 3},
		1: {4, 3},
		2: {0, 0},
		3: {4, 0},
	}
	for c, uv := range want {
		if got := q.CornerUV(c); got != uv {
			t.Fatalf("corner %d: uv %v, want %v", c, got, uv)
		}
	}
}

func TestCornerUVPairsWithPosition(t *testing.T) {
	// UV and position must go through the same winding swap: the
	// projected corner position minus the quad min is exactly the UV.
	for face := Face(0); face < FaceCount; face++ {
		q := Encode(face, mgl32.Vec2{1, 2}, mgl32.Vec2{4, 6}, 3, 0, 0, false, false)
		for c := uint32(0); c < 4; c++ {
			proj := ProjectToPlane(q.CornerPosition(c), face.Axis())
			if got := q.CornerUV(c); got != proj.Sub(q.Min) {
				t.Fatalf("face %d corner %d: uv %v, projected %v", face, c, got, proj.Sub(q.Min))
			}
		}
	}
}

func TestTransformUVRotationIdentity(t *testing.T) {
	extent := mgl32.Vec2{4, 2}
	uv := mgl32.Vec2{1, 0.5}

	// Four quarter turns are the identity.
	got := uv
	for i := 0; i < 4; i++ {
		got = TransformUV(got, extent, 1, false, false)
	}
	if !got.ApproxEqualThreshold(uv, 1e-5) {
		t.Fatalf("four rotations: got %v, want %v", got, uv)
	}

	// Each flip is an involution.
	got = TransformUV(TransformUV(uv, extent, 0, true, false), extent, 0, true, false)
	if !got.ApproxEqualThreshold(uv, 1e-5) {
		t.Fatalf("double flip x: got %v, want %v", got, uv)
	}
	got = TransformUV(TransformUV(uv, extent, 0, false, true), extent, 0, false, true)
	if !got.ApproxEqualThreshold(uv, 1e-5) {
		t.Fatalf("double flip y: got %v, want %v", got, uv)
	}
}

func TestTransformUVStaysInExtent(t *testing.T) {
	extent := mgl32.Vec2{3, 5}
	for rot := uint32(0); rot < 4; rot++ {
		for _, flipX := range []bool{false, true} {
			for _, flipY := range []bool{false, true} {
				got := TransformUV(mgl32.Vec2{1, 4}, extent, rot, flipX, flipY)
				if got.X() < 0 || got.X() > extent.X() || got.Y() < 0 || got.Y() > extent.Y() {
					t.Fatalf("rot %d flips (%v,%v): uv %v outside extent %v", rot, flipX, flipY, got, extent)
				}
			}
		}
	}
}

func TestFaceFromNormal(t *testing.T) {
	cases := []struct {
		n    [3]int
		want Face
	}{
		{[3]int{1, 0, 0}, FacePosX},
		{[3]int{-1, 0, 0}, FaceNegX},
		{[3]int{0, 1, 0}, FacePosY},
		{[3]int{0, -1, 0}, FaceNegY},
		{[3]int{0, 0, 1}, FacePosZ},
		{[3]int{0, 0, -1}, FaceNegZ},
	}
	for _, c := range cases {
		if got := FaceFromNormal(c.n[0], c.n[1], c.n[2]); got != c.want {
			t.Fatalf("normal %v: got %d, want %d", c.n, got, c.want)
		}
	}
}
