package graphics

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v4.6-core/gl"
	xdraw "golang.org/x/image/draw"
)

// Atlas is the texture atlas all chunk faces sample from. Mip levels
// are built on the host so each level can be filtered without bleeding
// across tile borders more than half a texel per level.
type Atlas struct {
	ID     uint32
	Width  int
	Height int
	Levels int
}

// LoadAtlas reads an atlas image from disk and uploads it. tileSize
// bounds the mip count so a tile never shrinks below one texel.
func LoadAtlas(path string, tileSize int) (*Atlas, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open atlas file: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode atlas image: %v", err)
	}
	return NewAtlasFromImage(img, tileSize), nil
}

// NewAtlasFromImage uploads an atlas image with an explicit mip chain
// built on the host.
func NewAtlasFromImage(img image.Image, tileSize int) *Atlas {
	rgba := image.NewRGBA(img.Bounds())
	xdraw.Draw(rgba, rgba.Bounds(), img, image.Point{}, xdraw.Src)

	levels := mipLevels(tileSize)

	a := &Atlas{
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Levels: levels,
	}
	gl.GenTextures(1, &a.ID)
	gl.BindTexture(gl.TEXTURE_2D, a.ID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(levels-1))

	level := rgba
	for i := 0; i < levels; i++ {
		gl.TexImage2D(
			gl.TEXTURE_2D,
			int32(i),
			gl.RGBA,
			int32(level.Rect.Dx()),
			int32(level.Rect.Dy()),
			0,
			gl.RGBA,
			gl.UNSIGNED_BYTE,
			gl.Ptr(level.Pix),
		)
		if i+1 < levels {
			level = downsample(level)
		}
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return a
}

// Bind binds the atlas to a texture unit.
func (a *Atlas) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, a.ID)
}

// Delete frees the texture.
func (a *Atlas) Delete() {
	if a.ID != 0 {
		gl.DeleteTextures(1, &a.ID)
		a.ID = 0
	}
}

func mipLevels(tileSize int) int {
	levels := 1
	for tileSize > 1 {
		tileSize /= 2
		levels++
	}
	return levels
}

func downsample(src *image.RGBA) *image.RGBA {
	w, h := src.Rect.Dx()/2, src.Rect.Dy()/2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
