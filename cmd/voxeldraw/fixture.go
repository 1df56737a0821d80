package main

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"voxeldraw/internal/chunk"
	"voxeldraw/internal/occlusion"
	"voxeldraw/internal/quad"
	"voxeldraw/internal/render"
)

// The demo atlas is a 2x2 grid of procedurally colored tiles.
const (
	atlasTiles    = 2
	atlasTileSize = 16
)

// fixtureFaceTable maps texture ids onto the demo atlas tiles.
func fixtureFaceTable() []render.FaceTexture {
	faces := make([]render.FaceTexture, 0, atlasTiles*atlasTiles)
	step := float32(1) / atlasTiles
	for ty := 0; ty < atlasTiles; ty++ {
		for tx := 0; tx < atlasTiles; tx++ {
			faces = append(faces, render.FaceTexture{
				AtlasMin: mgl32.Vec2{float32(tx) * step, float32(ty) * step},
				AtlasMax: mgl32.Vec2{float32(tx+1) * step, float32(ty+1) * step},
			})
		}
	}
	return faces
}

// fixtureAtlasImage paints each tile a flat color with a darker border
// texel so tiling seams are visible at a glance.
func fixtureAtlasImage() *image.RGBA {
	colors := []color.RGBA{
		{110, 160, 80, 255},
		{130, 120, 100, 255},
		{90, 90, 95, 255},
		{160, 150, 60, 255},
	}

	size := atlasTiles * atlasTileSize
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			tile := (y/atlasTileSize)*atlasTiles + x/atlasTileSize
			c := colors[tile%len(colors)]
			lx, ly := x%atlasTileSize, y%atlasTileSize
			if lx == 0 || ly == 0 || lx == atlasTileSize-1 || ly == atlasTileSize-1 {
				c = color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// fixtureChunks builds a grid of floor chunks with a raised box in the
// middle: enough geometry to exercise every face direction, UV
// transforms, and the occlusion border cells.
func fixtureChunks(radius int) []render.MeshResult {
	var results []render.MeshResult
	for cz := -radius; cz <= radius; cz++ {
		for cx := -radius; cx <= radius; cx++ {
			pos := chunk.Pos{X: cx, Y: 0, Z: cz}
			res := render.MeshResult{Pos: pos}

			// Full-chunk floor quad at y=0, texture varying per chunk.
			tex := uint32((cx + cz%2 + 100) % 2)
			res.Quads = append(res.Quads, quad.Encode(
				quad.FacePosY,
				mgl32.Vec2{0, 0}, mgl32.Vec2{chunk.Size, chunk.Size},
				0, tex, 0, false, false,
			))

			if cx == 0 && cz == 0 {
				res.Quads = append(res.Quads, boxQuads(4, 4, 8)...)
				darkenAroundBox(&res.Occlusion, 4, 8)
			}

			results = append(results, res)
		}
	}
	return results
}

// boxQuads emits the visible faces of an axis-aligned box sitting on
// the floor, spanning lo..hi horizontally and 0..height vertically.
// The bottom face rests on the floor and is skipped.
func boxQuads(lo, height, hi float32) []quad.Quad {
	return []quad.Quad{
		quad.Encode(quad.FacePosY, mgl32.Vec2{lo, lo}, mgl32.Vec2{hi, hi}, height, 2, 0, false, false),
		quad.Encode(quad.FacePosX, mgl32.Vec2{0, lo}, mgl32.Vec2{height, hi}, hi, 3, 0, false, false),
		quad.Encode(quad.FaceNegX, mgl32.Vec2{0, lo}, mgl32.Vec2{height, hi}, lo, 3, 0, false, false),
		quad.Encode(quad.FacePosZ, mgl32.Vec2{lo, 0}, mgl32.Vec2{hi, height}, hi, 3, 1, false, false),
		quad.Encode(quad.FaceNegZ, mgl32.Vec2{lo, 0}, mgl32.Vec2{hi, height}, lo, 3, 1, false, false),
	}
}

// darkenAroundBox writes occlusion codes into the floor cells ringing
// the box so the curve is visible in the demo.
func darkenAroundBox(m *occlusion.Map, lo, hi int) {
	for z := lo - 1; z <= hi; z++ {
		for x := lo - 1; x <= hi; x++ {
			onEdge := x == lo-1 || x == hi || z == lo-1 || z == hi
			if onEdge {
				m.Set(x, 0, z, 6)
			}
		}
	}
}
