package halo

import "testing"

func pixelAt(pix []byte, size, x, y int) (r, g, b, a uint8) {
	off := (y*size + x) * 4
	return pix[off], pix[off+1], pix[off+2], pix[off+3]
}

func TestDotPixelsCenterOpaqueCornerClear(t *testing.T) {
	const size = 16
	pix := dotPixels(size, ColorWhite, ColorWhite)
	if len(pix) != size*size*4 {
		t.Fatalf("pixel buffer = %d bytes, want %d", len(pix), size*size*4)
	}
	_, _, _, center := pixelAt(pix, size, size/2, size/2)
	if center < 240 {
		t.Errorf("center alpha = %d, want >= 240", center)
	}
	r, g, b, a := pixelAt(pix, size, 0, 0)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("corner pixel = %d,%d,%d,%d, want fully transparent", r, g, b, a)
	}
}

func TestDotPixelsPremultiplied(t *testing.T) {
	const size = 24
	pix := dotPixels(size, Color{1, 0.6, 0.2, 1}, Color{0.1, 0.3, 0.9, 0.8})
	for i := 0; i < len(pix); i += 4 {
		a := pix[i+3]
		if pix[i] > a || pix[i+1] > a || pix[i+2] > a {
			t.Fatalf("pixel %d = %d,%d,%d,%d exceeds its alpha", i/4, pix[i], pix[i+1], pix[i+2], a)
		}
	}
}

func TestDotPixelsBlendTowardSecondary(t *testing.T) {
	const size = 32
	pix := dotPixels(size, Color{1, 0, 0, 1}, Color{0, 0, 1, 1})
	// Near the core the primary dominates; near the rim the secondary does.
	r, _, b, _ := pixelAt(pix, size, size/2+3, size/2)
	if r <= b {
		t.Errorf("core pixel r=%d b=%d, want primary red to dominate", r, b)
	}
	r, _, b, _ = pixelAt(pix, size, size/2+13, size/2)
	if b <= r {
		t.Errorf("rim pixel r=%d b=%d, want secondary blue to dominate", r, b)
	}
}

func TestDotPixelsAlphaFallsOffMonotonically(t *testing.T) {
	const size = 32
	pix := dotPixels(size, ColorWhite, ColorWhite)
	prev := uint8(255)
	for x := size / 2; x < size; x++ {
		_, _, _, a := pixelAt(pix, size, x, size/2)
		if a > prev {
			t.Fatalf("alpha rises from %d to %d at x=%d", prev, a, x)
		}
		prev = a
	}
	if prev != 0 {
		t.Errorf("edge alpha = %d, want 0", prev)
	}
}

func TestNewDotSpriteSize(t *testing.T) {
	d := newDotSprite(6, ThemeSteady.Primary, ThemeSteady.Secondary)
	defer d.dispose()
	if d.size != 12 {
		t.Errorf("size = %d, want 12", d.size)
	}
	bounds := d.image.Bounds()
	if bounds.Dx() != 12 || bounds.Dy() != 12 {
		t.Errorf("image = %dx%d, want 12x12", bounds.Dx(), bounds.Dy())
	}
}

func TestNewDotSpriteMinimumSize(t *testing.T) {
	d := newDotSprite(0.4, ColorWhite, ColorWhite)
	defer d.dispose()
	if d.size != 2 {
		t.Errorf("size = %d, want clamp to 2", d.size)
	}
}

func TestDotSpriteDisposeIdempotent(t *testing.T) {
	d := newDotSprite(4, ColorWhite, ColorWhite)
	d.dispose()
	d.dispose()
	if d.image != nil {
		t.Error("image not nil after dispose")
	}
}
