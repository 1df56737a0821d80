// Package occlusion stores per-chunk ambient occlusion codes in the
// packed layout the fragment shaders index directly. The buffer has a
// fixed, build-time size; the dimension and word-count constants are
// injected into the shaders as #defines.
package occlusion

import (
	"math"

	"voxeldraw/internal/chunk"
)

const (
	// Dimensions is the edge length of the occlusion grid: one cell per
	// voxel plus a one-cell border so faces on chunk boundaries can read
	// their outside neighbor without a second buffer.
	Dimensions = chunk.Size + 2

	// CellCount is the number of cells in the grid.
	CellCount = Dimensions * Dimensions * Dimensions

	// Each cell holds a 4-bit code; eight cells pack into one word.
	CodeBits     = 4
	CodeMask     = 0xF
	CodesPerWord = 32 / CodeBits

	// WordCount is the size of the GPU-visible buffer in uint32 words.
	WordCount = CellCount / CodesPerWord

	// MaxCode is the darkest occlusion code a cell can hold.
	MaxCode = CodeMask

	// CurveBase is the base of the occlusion curve: each code step
	// scales the lit value by this factor.
	CurveBase = 0.75
)

// Map is the packed occlusion grid for one chunk. The zero value is
// fully unoccluded.
type Map struct {
	words [WordCount]uint32
}

// cellIndex flattens a grid position. Coordinates are offset by one so
// that -1..chunk.Size addresses the border cells.
func cellIndex(x, y, z int) (int, bool) {
	x, y, z = x+1, y+1, z+1
	if x < 0 || x >= Dimensions || y < 0 || y >= Dimensions || z < 0 || z >= Dimensions {
		return 0, false
	}
	return x + y*Dimensions + z*Dimensions*Dimensions, true
}

// Set stores the occlusion code for a cell. Coordinates range over
// -1..chunk.Size inclusive; out-of-range writes are dropped.
func (m *Map) Set(x, y, z int, code uint8) {
	idx, ok := cellIndex(x, y, z)
	if !ok {
		return
	}
	word, shift := idx/CodesPerWord, uint32(idx%CodesPerWord)*CodeBits
	m.words[word] &^= CodeMask << shift
	m.words[word] |= uint32(code&CodeMask) << shift
}

// Get returns the occlusion code for a cell, or 0 when out of range.
func (m *Map) Get(x, y, z int) uint8 {
	idx, ok := cellIndex(x, y, z)
	if !ok {
		return 0
	}
	word, shift := idx/CodesPerWord, uint32(idx%CodesPerWord)*CodeBits
	return uint8((m.words[word] >> shift) & CodeMask)
}

// Words exposes the packed buffer for GPU upload.
func (m *Map) Words() []uint32 {
	return m.words[:]
}

// Curve remaps a packed occlusion code to a shading-ready scalar.
// Monotonically decreasing, code 0 maps to fully lit.
func Curve(code uint8) float32 {
	return float32(math.Pow(CurveBase, float64(code&CodeMask)))
}
