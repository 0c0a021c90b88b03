// Package display converts a PPU framebuffer into a standard
// image.Image and upscales it with nearest-neighbour resampling. The
// windowed UI itself is out of scope for this module (see spec §1);
// this package exists for headless tooling that wants to dump a frame
// to disk, e.g. the smoke-test CLI's --dump-frame flag.
package display

import (
	"image"
	"image/color"

	"github.com/ioncodes/ayyboy/internal/ppu"
	"github.com/ioncodes/ayyboy/internal/ppu/palette"
	"golang.org/x/image/draw"
)

// FrameToImage converts a raw framebuffer into an *image.RGBA the
// standard library's image codecs can encode directly.
func FrameToImage(frame [ppu.ScreenHeight][ppu.ScreenWidth]palette.RGB) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			rgb := frame[y][x]
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}

// Upscale resizes src by the given integer factor using
// nearest-neighbour sampling, preserving the Game Boy's hard pixel
// edges rather than smoothing them away.
func Upscale(src image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
