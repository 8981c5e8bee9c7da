package halo

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// dotSprite is the cached particle texture. Every particle in the ring is a
// scaled, tinted blit of this one image, so it is built exactly once per
// theme and only rebuilt when the theme changes.
type dotSprite struct {
	image *ebiten.Image
	size  int // square dimension in pixels
}

// newDotSprite builds the dot texture for the given radius and theme colors.
func newDotSprite(radius float64, primary, secondary Color) *dotSprite {
	size := int(math.Ceil(radius * 2))
	if size < 2 {
		size = 2
	}
	img := ebiten.NewImage(size, size)
	img.WritePixels(dotPixels(size, primary, secondary))
	return &dotSprite{image: img, size: size}
}

// dispose releases the GPU texture. The sprite must not be drawn afterwards.
func (d *dotSprite) dispose() {
	if d.image != nil {
		d.image.Deallocate()
		d.image = nil
	}
}

// dotPixels synthesizes the premultiplied RGBA pixels of a feathered dot:
// primary at the core blending into secondary at the rim, with a smoothstep
// alpha falloff to fully transparent at the edge.
func dotPixels(size int, primary, secondary Color) []byte {
	pix := make([]byte, size*size*4)
	radius := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			dist := math.Sqrt(dx*dx+dy*dy) / radius

			var alpha float64
			if dist < 1 {
				// Smoothstep falloff from the core to the rim.
				t := 1 - dist
				alpha = t * t * (3 - 2*t)
			}

			mix := clamp01(dist)
			r := lerp(primary.R, secondary.R, mix)
			g := lerp(primary.G, secondary.G, mix)
			b := lerp(primary.B, secondary.B, mix)
			a := alpha * lerp(primary.A, secondary.A, mix)

			off := (y*size + x) * 4
			pix[off+0] = uint8(clamp01(r*a) * 255)
			pix[off+1] = uint8(clamp01(g*a) * 255)
			pix[off+2] = uint8(clamp01(b*a) * 255)
			pix[off+3] = uint8(clamp01(a) * 255)
		}
	}
	return pix
}
