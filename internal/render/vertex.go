package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxeldraw/internal/quad"
)

// ViewData carries the per-frame matrices the vertex stage consumes.
// PrevViewProj is only read by motion-vector variants.
type ViewData struct {
	ViewProj     mgl32.Mat4
	PrevViewProj mgl32.Mat4
}

// VertexOutput mirrors the chunk vertex shader's outputs. Fields gated
// by a variant flag are zero when the flag is off.
type VertexOutput struct {
	ClipPosition mgl32.Vec4
	// UnclampedZ preserves the pre-clamp clip z for fragment depth
	// writes under KeyDepthClampOrtho.
	UnclampedZ    float32
	WorldPosition mgl32.Vec3
	LocalPosition mgl32.Vec3
	UV            mgl32.Vec2
	Normal        mgl32.Vec3
	Tangent       mgl32.Vec4
	PrevClip      mgl32.Vec4
	TextureID     uint32
	Instance      uint32
}

// ReconstructVertex is the host mirror of the chunk vertex shaders.
// vertexID is the running vertex index the index buffer produces;
// vertices come in groups of four per quad. slot is the draw slot
// (base instance) the command builder assigned. Returns false when the
// derived quad index is out of range, which a correctly built command
// buffer never produces.
func ReconstructVertex(quads []quad.Quad, inst ChunkInstanceData, slot, vertexID uint32, view ViewData, key PipelineKey, cfg VariantConfig) (VertexOutput, bool) {
	quadIdx := vertexID/4 + inst.FirstQuad
	if int(quadIdx) >= len(quads) {
		return VertexOutput{}, false
	}
	q := quads[quadIdx]
	corner := vertexID % 4

	local := q.CornerPosition(corner)
	world := local.Add(inst.Position)
	clip := view.ViewProj.Mul4x1(world.Vec4(1))

	out := VertexOutput{
		WorldPosition: world,
		LocalPosition: local,
		TextureID:     q.TextureID,
		UV:            correctedUV(q, corner, cfg),
	}

	if key.Has(KeyDepthClampOrtho) {
		out.UnclampedZ = clip.Z()
		// Clamp NDC z to at most 1 while the fragment stage writes the
		// real depth from the side channel.
		if clip.Z() > clip.W() {
			clip[2] = clip.W()
		}
	}
	out.ClipPosition = clip

	if !key.Prepass() || key.Has(KeyNormalPrepass) || key.Has(KeyDeferred) {
		out.Normal = q.Normal()
		out.Tangent = faceTangent(q.Face())
	}
	if key.Has(KeyMotionVectorPrepass) || key.Has(KeyDeferred) {
		// Chunks are static; only the camera moves between frames.
		out.PrevClip = view.PrevViewProj.Mul4x1(world.Vec4(1))
	}
	if key.Has(KeyInstanceIndex) || !key.Prepass() {
		out.Instance = slot
	}

	return out, true
}

// correctedUV applies the build-time UV correction to a corner's
// texture coordinate: the quad's bitfield word is XOR'd with the
// configured masks before the rotation and flips are read from it.
func correctedUV(q quad.Quad, corner uint32, cfg VariantConfig) mgl32.Vec2 {
	bits := q.Bitfields ^ cfg.CorrectionWord()
	rotation := (bits >> quad.RotationShift) & quad.RotationMask
	flipX := bits&quad.FlipUVXBit != 0
	flipY := bits&quad.FlipUVYBit != 0

	return quad.TransformUV(q.CornerUV(corner), q.Extent(), rotation, flipX, flipY)
}

// faceTangent returns the world direction of growing U for a face, with
// w holding the handedness so that cross(normal, tangent) * w points
// along growing V. Follows the plane mapping in the quad package.
func faceTangent(f quad.Face) mgl32.Vec4 {
	d := float32(f.AxisDirection())
	switch f.Axis() {
	case quad.AxisX:
		// u=Y, v=Z: cross(n, u) = d*Z
		return mgl32.Vec4{0, 1, 0, d}
	case quad.AxisY:
		// u=X, v=Z: cross(n, u) = -d*Z
		return mgl32.Vec4{1, 0, 0, -d}
	default:
		// u=X, v=Y: cross(n, u) = d*Y
		return mgl32.Vec4{1, 0, 0, d}
	}
}
