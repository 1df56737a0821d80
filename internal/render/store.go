package render

import (
	"log"

	"voxeldraw/internal/chunk"
	"voxeldraw/internal/occlusion"
	"voxeldraw/internal/quad"
)

// MeshResult is one finished chunk mesh handed over by an external
// mesher. The store owns the slices after delivery.
type MeshResult struct {
	Pos       chunk.Pos
	Quads     []quad.Quad
	Occlusion occlusion.Map
}

// Uploader receives the store's buffer writes. The GL drawer implements
// it over SSBOs; tests implement it over plain slices.
type Uploader interface {
	UploadQuads(firstQuad int, quads []quad.Quad)
	UploadOcclusion(slot int, m *occlusion.Map)
	UploadMetadata(slot int, md GpuChunkMetadata)
}

// Store tracks which chunk occupies which draw slot and stages mesh
// uploads. Each slot owns a fixed quad range of the shared quad buffer
// (slot*quadsPerChunk), so re-meshing a chunk rewrites in place and
// never moves other chunks' quads.
type Store struct {
	capacity      int
	quadsPerChunk int

	results  chan MeshResult
	slots    map[chunk.Pos]int
	free     []int
	metadata []GpuChunkMetadata
}

// NewStore creates a store with the given slot capacity and per-slot
// quad capacity.
func NewStore(capacity, quadsPerChunk int) *Store {
	free := make([]int, capacity)
	for i := range free {
		free[i] = capacity - 1 - i
	}
	return &Store{
		capacity:      capacity,
		quadsPerChunk: quadsPerChunk,
		results:       make(chan MeshResult, 256),
		slots:         make(map[chunk.Pos]int, capacity),
		free:          free,
		metadata:      make([]GpuChunkMetadata, capacity),
	}
}

// Results is the channel meshers deliver finished meshes on.
func (s *Store) Results() chan<- MeshResult {
	return s.results
}

// Drain applies every pending mesh result without blocking and returns
// how many were applied. Call once per frame from the render thread.
func (s *Store) Drain(up Uploader) int {
	applied := 0
	for {
		select {
		case res := <-s.results:
			if s.apply(res, up) {
				applied++
			}
		default:
			return applied
		}
	}
}

// Apply uploads a single mesh result immediately, bypassing the queue.
func (s *Store) Apply(res MeshResult, up Uploader) bool {
	return s.apply(res, up)
}

func (s *Store) apply(res MeshResult, up Uploader) bool {
	if len(res.Quads) > s.quadsPerChunk {
		log.Printf("render: chunk %v mesh has %d quads, slot capacity is %d; dropping", res.Pos, len(res.Quads), s.quadsPerChunk)
		return false
	}

	slot, ok := s.slots[res.Pos]
	if !ok {
		if len(s.free) == 0 {
			log.Printf("render: no free draw slot for chunk %v", res.Pos)
			return false
		}
		slot = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		s.slots[res.Pos] = slot
	}

	firstQuad := slot * s.quadsPerChunk
	md := GpuChunkMetadata{
		Position:  res.Pos.WorldOrigin(),
		FirstQuad: uint32(firstQuad),
		QuadCount: uint32(len(res.Quads)),
	}
	s.metadata[slot] = md

	if up != nil {
		if len(res.Quads) > 0 {
			up.UploadQuads(firstQuad, res.Quads)
		}
		up.UploadOcclusion(slot, &res.Occlusion)
		up.UploadMetadata(slot, md)
	}
	return true
}

// Remove frees a chunk's slot. The metadata quad count drops to zero,
// so the next command-builder pass degenerates any draw still aimed at
// the slot; the quad range itself is left stale and unreferenced.
func (s *Store) Remove(pos chunk.Pos, up Uploader) {
	slot, ok := s.slots[pos]
	if !ok {
		return
	}
	delete(s.slots, pos)
	s.free = append(s.free, slot)

	s.metadata[slot] = GpuChunkMetadata{}
	if up != nil {
		up.UploadMetadata(slot, s.metadata[slot])
	}
}

// EvictBeyond removes every resident chunk farther than radius chunks
// (Chebyshev distance) from center and returns how many were evicted.
// Pairs with the eviction radius in the config package.
func (s *Store) EvictBeyond(center chunk.Pos, radius int, up Uploader) int {
	var evict []chunk.Pos
	for pos := range s.slots {
		if chebyshev(pos, center) > radius {
			evict = append(evict, pos)
		}
	}
	for _, pos := range evict {
		s.Remove(pos, up)
	}
	return len(evict)
}

func chebyshev(a, b chunk.Pos) int {
	d := absInt(a.X - b.X)
	if dy := absInt(a.Y - b.Y); dy > d {
		d = dy
	}
	if dz := absInt(a.Z - b.Z); dz > d {
		d = dz
	}
	return d
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SlotOf returns the draw slot of a chunk, if resident.
func (s *Store) SlotOf(pos chunk.Pos) (int, bool) {
	slot, ok := s.slots[pos]
	return slot, ok
}

// Metadata exposes the CPU copy of the metadata array, indexed by slot.
func (s *Store) Metadata() []GpuChunkMetadata {
	return s.metadata
}

// Each calls fn for every resident chunk with its slot.
func (s *Store) Each(fn func(pos chunk.Pos, slot int)) {
	for pos, slot := range s.slots {
		fn(pos, slot)
	}
}

// Len returns how many chunks are resident.
func (s *Store) Len() int {
	return len(s.slots)
}

// Capacity returns the slot capacity.
func (s *Store) Capacity() int {
	return s.capacity
}

// QuadsPerChunk returns the per-slot quad capacity.
func (s *Store) QuadsPerChunk() int {
	return s.quadsPerChunk
}
