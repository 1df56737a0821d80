package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"voxeldraw/internal/graphics"
	"voxeldraw/internal/occlusion"
	"voxeldraw/internal/profiling"
	"voxeldraw/internal/quad"
)

// SSBO binding points shared between the Go side and every chunk
// shader. Keep in sync with assets/shaders/chunks.
const (
	bindMetadata  = 0
	bindVisible   = 1
	bindInstances = 2
	bindIndirect  = 3
	bindQuads     = 4
	bindOcclusion = 5
	bindFaces     = 6
)

const computeLocalSize = 64

var (
	quadStride      = int(unsafe.Sizeof(quad.Quad{}))
	metadataStride  = int(unsafe.Sizeof(GpuChunkMetadata{}))
	instanceStride  = int(unsafe.Sizeof(ChunkInstanceData{}))
	indirectStride  = int(unsafe.Sizeof(IndexedIndirectArgs{}))
	faceStride      = int(unsafe.Sizeof(FaceTexture{}))
	occlusionStride = occlusion.WordCount * 4
)

// ChunkDrawer owns the GPU buffers of the chunk pass and issues the
// per-frame build-dispatch-multidraw sequence. Capacity is fixed at
// construction; all buffers are allocated once and rewritten in place.
type ChunkDrawer struct {
	capacity      int
	quadsPerChunk int

	quads     *graphics.BufferObject
	metadata  *graphics.BufferObject
	visible   *graphics.BufferObject
	instances *graphics.BufferObject
	indirect  *graphics.BufferObject
	occlusion *graphics.BufferObject
	faces     *graphics.BufferObject
	indices   *graphics.BufferObject

	vao       uint32
	pipelines *Pipelines
	faceCount int

	// Host mirrors for the fallback command build path.
	hostInstances []ChunkInstanceData
	hostIndirect  []IndexedIndirectArgs
}

// NewChunkDrawer allocates all chunk-pass buffers for the given slot
// capacity and per-slot quad capacity and registers the face texture
// table.
func NewChunkDrawer(pipelines *Pipelines, capacity, quadsPerChunk int, faces []FaceTexture) *ChunkDrawer {
	d := &ChunkDrawer{
		capacity:      capacity,
		quadsPerChunk: quadsPerChunk,
		pipelines:     pipelines,
		faceCount:     len(faces),
		hostInstances: make([]ChunkInstanceData, capacity),
		hostIndirect:  make([]IndexedIndirectArgs, capacity),
	}

	d.quads = graphics.NewBufferObject(gl.SHADER_STORAGE_BUFFER, capacity*quadsPerChunk*quadStride, nil, gl.DYNAMIC_DRAW)
	d.metadata = graphics.NewBufferObject(gl.SHADER_STORAGE_BUFFER, capacity*metadataStride, nil, gl.DYNAMIC_DRAW)
	d.visible = graphics.NewBufferObject(gl.SHADER_STORAGE_BUFFER, capacity*4, nil, gl.STREAM_DRAW)
	d.instances = graphics.NewBufferObject(gl.SHADER_STORAGE_BUFFER, capacity*instanceStride, nil, gl.DYNAMIC_COPY)
	d.indirect = graphics.NewBufferObject(gl.SHADER_STORAGE_BUFFER, capacity*indirectStride, nil, gl.DYNAMIC_COPY)
	d.occlusion = graphics.NewBufferObject(gl.SHADER_STORAGE_BUFFER, capacity*occlusionStride, nil, gl.DYNAMIC_DRAW)

	if len(faces) > 0 {
		d.faces = graphics.NewBufferObject(gl.SHADER_STORAGE_BUFFER, len(faces)*faceStride, gl.Ptr(faces), gl.STATIC_DRAW)
	} else {
		d.faces = graphics.NewBufferObject(gl.SHADER_STORAGE_BUFFER, faceStride, nil, gl.STATIC_DRAW)
	}

	// One shared index buffer covers the largest possible draw; every
	// command starts at firstIndex 0.
	pattern := SharedIndexPattern(quadsPerChunk)
	d.indices = graphics.NewBufferObject(gl.ELEMENT_ARRAY_BUFFER, len(pattern)*4, gl.Ptr(pattern), gl.STATIC_DRAW)

	// Vertex pulling: the VAO carries no attribute arrays, only the
	// element buffer binding.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	d.indices.Bind()
	gl.BindVertexArray(0)

	return d
}

// UploadQuads writes a chunk's quads into its reserved range.
func (d *ChunkDrawer) UploadQuads(firstQuad int, quads []quad.Quad) {
	d.quads.UpdateSubData(firstQuad*quadStride, len(quads)*quadStride, gl.Ptr(quads))
}

// UploadOcclusion writes a chunk's occlusion words into its slot.
func (d *ChunkDrawer) UploadOcclusion(slot int, m *occlusion.Map) {
	words := m.Words()
	d.occlusion.UpdateSubData(slot*occlusionStride, occlusionStride, gl.Ptr(words[:]))
}

// UploadMetadata rewrites one slot's metadata record.
func (d *ChunkDrawer) UploadMetadata(slot int, md GpuChunkMetadata) {
	mds := []GpuChunkMetadata{md}
	d.metadata.UpdateSubData(slot*metadataStride, metadataStride, gl.Ptr(mds))
}

// BuildCommands uploads the frame's visible metadata indices and
// dispatches the command-builder compute pass. Every slot is written:
// unlisted slots get degenerate args. A barrier makes the instance and
// indirect buffers visible to the draw that follows.
func (d *ChunkDrawer) BuildCommands(visible []uint32) error {
	defer profiling.Track("render.BuildCommands")()

	if len(visible) > d.capacity {
		visible = visible[:d.capacity]
	}
	if len(visible) > 0 {
		d.visible.UpdateSubData(0, len(visible)*4, gl.Ptr(visible))
	}

	shader, err := d.pipelines.CommandBuilder()
	if err != nil {
		return err
	}
	shader.Use()
	shader.SetUint("slotCount", uint32(d.capacity))
	shader.SetUint("visibleCount", uint32(len(visible)))

	d.metadata.BindBase(bindMetadata)
	d.visible.BindBase(bindVisible)
	d.instances.BindBase(bindInstances)
	d.indirect.BindBase(bindIndirect)

	groups := uint32((d.capacity + computeLocalSize - 1) / computeLocalSize)
	gl.DispatchCompute(groups, 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT | gl.COMMAND_BARRIER_BIT)
	return nil
}

// BuildCommandsHost runs the same pass on the CPU and uploads the
// result, for contexts without compute or for validation against the
// device path.
func (d *ChunkDrawer) BuildCommandsHost(metadata []GpuChunkMetadata, visible []uint32) {
	defer profiling.Track("render.BuildCommandsHost")()

	if len(visible) > d.capacity {
		visible = visible[:d.capacity]
	}
	BuildDrawCommands(d.hostInstances, d.hostIndirect, metadata, visible)
	d.instances.UpdateSubData(0, d.capacity*instanceStride, gl.Ptr(d.hostInstances))
	d.indirect.UpdateSubData(0, d.capacity*indirectStride, gl.Ptr(d.hostIndirect))
}

// Draw issues the chunk pass for one pipeline variant: one multidraw
// over all capacity slots, degenerate commands contributing nothing.
func (d *ChunkDrawer) Draw(key PipelineKey, view ViewData) error {
	defer profiling.Track("render.Draw")()

	shader, err := d.pipelines.Specialize(key)
	if err != nil {
		return err
	}
	shader.Use()
	viewProj := view.ViewProj
	prevViewProj := view.PrevViewProj
	shader.SetMatrix4("viewProj", &viewProj[0])
	if key.Has(KeyMotionVectorPrepass) || key.Has(KeyDeferred) {
		shader.SetMatrix4("prevViewProj", &prevViewProj[0])
	}
	if !key.Prepass() {
		shader.SetInt("atlas", 0)
	}

	d.quads.BindBase(bindQuads)
	d.instances.BindBase(bindInstances)
	d.occlusion.BindBase(bindOcclusion)
	d.faces.BindBase(bindFaces)

	gl.BindVertexArray(d.vao)
	d.indirect.BindAs(gl.DRAW_INDIRECT_BUFFER)
	gl.MultiDrawElementsIndirect(gl.TRIANGLES, gl.UNSIGNED_INT, nil, int32(d.capacity), 0)
	gl.BindVertexArray(0)
	return nil
}

// Capacity returns the fixed slot capacity.
func (d *ChunkDrawer) Capacity() int {
	return d.capacity
}

// Delete frees every GL object the drawer owns.
func (d *ChunkDrawer) Delete() {
	for _, b := range []*graphics.BufferObject{d.quads, d.metadata, d.visible, d.instances, d.indirect, d.occlusion, d.faces, d.indices} {
		if b != nil {
			b.Delete()
		}
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}
