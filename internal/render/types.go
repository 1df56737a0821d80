// Package render turns a culled list of visible chunks into the
// instance data and indirect draw commands a single fixed-size
// multidraw call consumes, and mirrors the per-vertex and per-fragment
// shader stages on the host for testing and diagnostics.
package render

import "github.com/go-gl/mathgl/mgl32"

// IndicesPerQuad is the length of the shared index pattern per quad:
// two triangles over four corners.
const IndicesPerQuad = 6

// GpuChunkMetadata is the per-chunk record the external culling and
// streaming side maintains. Read-only here. Layout is std430-compatible
// and mirrored in the shaders.
type GpuChunkMetadata struct {
	Position  mgl32.Vec3 // world-space chunk origin
	Flags     uint32
	FirstQuad uint32 // range into the shared quad buffer
	QuadCount uint32
	_         [2]uint32
}

// ChunkInstanceData is one draw slot's instance record, derived from a
// metadata record by the command builder each frame. Consumed by the
// vertex stage of the matching instance.
type ChunkInstanceData struct {
	Position  mgl32.Vec3 // world offset applied to reconstructed quad positions
	FirstQuad uint32     // base quad index for the slot's chunk
}

// IndexedIndirectArgs mirrors the GL DrawElementsIndirectCommand
// layout. Written once per frame per slot by the command builder and
// then consumed directly by the multidraw call.
type IndexedIndirectArgs struct {
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	BaseVertex    int32
	FirstInstance uint32
}

// Degenerate reports whether the args draw nothing.
func (a IndexedIndirectArgs) Degenerate() bool {
	return a.IndexCount == 0
}

// FaceTexture flag bits.
const (
	FaceTextureHasNormalMapBit uint32 = 1 << 0
)

// FaceTexture describes one texture id's atlas region and material
// parameters. External, read-only; looked up by the fragment stage.
type FaceTexture struct {
	AtlasMin mgl32.Vec2
	AtlasMax mgl32.Vec2
	Flags    uint32
	_        [3]uint32
}

// AtlasUV maps a quad-local UV into the face's atlas region, tiling by
// the fractional part so greedily-merged quads repeat their texture per
// voxel.
func (f FaceTexture) AtlasUV(uv mgl32.Vec2) mgl32.Vec2 {
	fr := mgl32.Vec2{fract(uv.X()), fract(uv.Y())}
	span := f.AtlasMax.Sub(f.AtlasMin)
	return f.AtlasMin.Add(mgl32.Vec2{fr.X() * span.X(), fr.Y() * span.Y()})
}

func fract(f float32) float32 {
	return f - float32(int(f))
}
