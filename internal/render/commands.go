package render

// BuildDrawCommands populates one frame's instance data and indirect
// draw arguments from the visible-chunk index list. It is the host
// mirror of the build_commands.comp pass: the GLSL side runs one
// invocation per slot with identical semantics.
//
// instances and args must have equal length; that length is the slot
// capacity N, fixed per allocation. Every slot is written every frame:
// first a degenerate record, then - only when the slot index falls
// inside the visible list and its metadata index is in range - a live
// record derived from the metadata. Slots past the visible count stay
// degenerate, which is what turns off previously active draws when the
// visible set shrinks between frames. No separate clear pass exists.
//
// A slot's instance id is its own index i, not the metadata index: the
// shaders address per-slot data through the draw's base instance.
func BuildDrawCommands(instances []ChunkInstanceData, args []IndexedIndirectArgs, metadata []GpuChunkMetadata, visible []uint32) {
	n := len(args)
	if len(instances) < n {
		n = len(instances)
	}

	for i := 0; i < n; i++ {
		instances[i] = ChunkInstanceData{}
		args[i] = IndexedIndirectArgs{}

		if i >= len(visible) {
			continue
		}
		mi := visible[i]
		if int(mi) >= len(metadata) {
			continue
		}
		md := metadata[mi]

		instances[i] = ChunkInstanceData{
			Position:  md.Position,
			FirstQuad: md.FirstQuad,
		}
		args[i] = IndexedIndirectArgs{
			IndexCount:    md.QuadCount * IndicesPerQuad,
			InstanceCount: 1,
			FirstIndex:    0,
			BaseVertex:    0,
			FirstInstance: uint32(i),
		}
	}
}

// SharedIndexPattern returns the index buffer shared by every chunk
// draw: the fixed [0,1,2, 1,3,2] corner pattern repeated for maxQuads
// quads. Winding per face is handled by the quad codec's corner lookup,
// so one pattern serves all six face directions.
func SharedIndexPattern(maxQuads int) []uint32 {
	indices := make([]uint32, 0, maxQuads*IndicesPerQuad)
	for q := 0; q < maxQuads; q++ {
		base := uint32(q * 4)
		indices = append(indices,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	return indices
}
