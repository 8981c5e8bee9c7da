package halo

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// blurChain applies a Kawase iterative blur using downscale/upscale passes.
// No shader needed: bilinear filtering during DrawImage does the work. Unlike
// a general-purpose filter, the chain is built for one surface size and blur
// radius, so every temp image is allocated up front and reused each frame.
type blurChain struct {
	passes int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// blurPasses maps a blur radius in pixels to the number of half-resolution
// passes: log2(radius), minimum 1 for any positive radius.
func blurPasses(radius int) int {
	if radius <= 0 {
		return 0
	}
	passes := int(math.Ceil(math.Log2(float64(radius))))
	if passes < 1 {
		passes = 1
	}
	return passes
}

// newBlurChain preallocates the temp images for blurring a w x h surface at
// the given radius. Allocation happens only here, never during composite.
func newBlurChain(w, h, radius int) *blurChain {
	passes := blurPasses(radius)
	b := &blurChain{passes: passes}
	tw, th := w, h
	for i := 0; i < passes; i++ {
		tw = max(tw/2, 1)
		th = max(th/2, 1)
		b.temps = append(b.temps, ebiten.NewImage(tw, th))
	}
	return b
}

// composite blurs src and draws the result onto dst using the given blend
// and premultiplied color scale. dst is not cleared; the blurred layer lands
// on top of whatever dst already holds.
func (b *blurChain) composite(src, dst *ebiten.Image, blend ebiten.Blend, cr, cg, cb, ca float32) {
	op := &b.imgOp

	if b.passes == 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.ColorScale.Scale(cr, cg, cb, ca)
		op.Blend = blend
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	// Downscale passes: each half-size.
	current := src
	for i := 0; i < b.passes; i++ {
		b.temps[i].Clear()
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Blend = ebiten.Blend{}
		sw := float64(current.Bounds().Dx())
		sh := float64(current.Bounds().Dy())
		tw := float64(b.temps[i].Bounds().Dx())
		th := float64(b.temps[i].Bounds().Dy())
		op.GeoM.Scale(tw/sw, th/sh)
		op.Filter = ebiten.FilterLinear
		b.temps[i].DrawImage(current, op)
		current = b.temps[i]
	}

	// Upscale passes: draw each back up through the chain.
	for i := b.passes - 2; i >= 0; i-- {
		b.temps[i].Clear()
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Blend = ebiten.Blend{}
		sw := float64(current.Bounds().Dx())
		sh := float64(current.Bounds().Dy())
		tw := float64(b.temps[i].Bounds().Dx())
		th := float64(b.temps[i].Bounds().Dy())
		op.GeoM.Scale(tw/sw, th/sh)
		op.Filter = ebiten.FilterLinear
		b.temps[i].DrawImage(current, op)
		current = b.temps[i]
	}

	// Final upscale composites onto dst with the caller's blend and tint.
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.ColorScale.Scale(cr, cg, cb, ca)
	op.Blend = blend
	sw := float64(current.Bounds().Dx())
	sh := float64(current.Bounds().Dy())
	tw := float64(dst.Bounds().Dx())
	th := float64(dst.Bounds().Dy())
	op.GeoM.Scale(tw/sw, th/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(current, op)
}

// dispose releases the temp images.
func (b *blurChain) dispose() {
	for i, img := range b.temps {
		if img != nil {
			img.Deallocate()
			b.temps[i] = nil
		}
	}
	b.temps = nil
}
