package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxeldraw/internal/occlusion"
)

// FaceShading is the read-and-transform result of the fragment stage's
// face resolution, handed to lighting. Nothing here mutates shared
// state.
type FaceShading struct {
	AtlasUV   mgl32.Vec2
	Occlusion float32
	Flags     uint32
}

// ResolveFace looks up the face texture descriptor and occlusion code
// for an interpolated vertex output and applies the occlusion curve.
// Returns false for a texture id outside the registry, which encode-side
// validation rules out on the device path.
func ResolveFace(faces []FaceTexture, occ *occlusion.Map, in VertexOutput) (FaceShading, bool) {
	if int(in.TextureID) >= len(faces) {
		return FaceShading{}, false
	}
	face := faces[in.TextureID]

	code := uint8(0)
	if occ != nil {
		cx, cy, cz := occlusionCell(in.LocalPosition, in.Normal)
		code = occ.Get(cx, cy, cz)
	}

	return FaceShading{
		AtlasUV:   face.AtlasUV(in.UV),
		Occlusion: occlusion.Curve(code),
		Flags:     face.Flags,
	}, true
}

// occlusionCell picks the grid cell a surface point samples: the cell
// the face looks into, found by nudging the position along the normal
// before truncating. Matches the lookup in chunk.frag.
func occlusionCell(local, normal mgl32.Vec3) (int, int, int) {
	const nudge = 0.5
	p := local.Add(normal.Mul(nudge))
	return floorInt(p.X()), floorInt(p.Y()), floorInt(p.Z())
}

func floorInt(f float32) int {
	i := int(f)
	if f < float32(i) {
		i--
	}
	return i
}
