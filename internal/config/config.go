package config

import "sync"

// RenderSettings holds render configuration
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int // in chunks
	drawSlots      int // fixed draw-slot capacity of the indirect buffer
	quadsPerChunk  int // quad capacity reserved per draw slot
}

// Defaults keep the quad buffer at 2048*1024 quads (64 MiB): enough
// for a 25-chunk render distance of typical greedy meshes.
var globalRenderSettings = &RenderSettings{
	renderDistance: 25,
	drawSlots:      2048,
	quadsPerChunk:  1024,
}

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if distance < 5 {
		distance = 5
	}
	if distance > 50 {
		distance = 50
	}

	globalRenderSettings.renderDistance = distance
}

// GetDrawSlots returns the fixed number of draw slots the indirect
// command buffer is sized for.
func GetDrawSlots() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.drawSlots
}

// SetDrawSlots sets the draw-slot capacity. Takes effect on the next
// drawer construction; live buffers are never resized.
func SetDrawSlots(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if n < 64 {
		n = 64
	}
	if n > 65536 {
		n = 65536
	}

	globalRenderSettings.drawSlots = n
}

// GetQuadsPerChunk returns the quad capacity reserved for each chunk
// slot in the shared quad buffer.
func GetQuadsPerChunk() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.quadsPerChunk
}

// SetQuadsPerChunk sets the per-slot quad capacity. A 16^3 chunk can
// need at most 16*16*16*6/2 visible faces, but meshes past the clamp
// ceiling are rejected at upload instead of resizing the buffer.
func SetQuadsPerChunk(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if n < 256 {
		n = 256
	}
	if n > 16384 {
		n = 16384
	}

	globalRenderSettings.quadsPerChunk = n
}

// GetChunkLoadRadius returns radius for chunk loading (slightly larger than render distance)
func GetChunkLoadRadius() int {
	return GetRenderDistance()
}

// GetChunkEvictRadius returns radius for chunk eviction (larger than load radius)
func GetChunkEvictRadius() int {
	return GetRenderDistance() * 2
}
