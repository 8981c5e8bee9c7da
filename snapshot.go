package halo

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"
)

// SnapshotDir is where Snapshot writes its PNG files. Relative paths are
// resolved against the process working directory.
var SnapshotDir = "snapshots"

// Snapshot queues a labeled capture of the next rendered frame. The
// composited target is written to SnapshotDir as a timestamped PNG right
// after that frame lands, so the capture always shows a complete frame and
// never a half-drawn surface. Safe to call at any point between Steps.
func (e *Engine) Snapshot(label string) {
	e.shots = append(e.shots, label)
}

// flushSnapshots writes a PNG for every queued label. Called from Step
// immediately after a rendered frame.
func (e *Engine) flushSnapshots() {
	if len(e.shots) == 0 {
		return
	}

	if err := os.MkdirAll(SnapshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[halo] snapshot: mkdir %s: %v\n", SnapshotDir, err)
		e.shots = e.shots[:0]
		return
	}

	bounds := e.target.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	e.target.ReadPixels(pixels)
	img := straightAlphaImage(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")

	for _, label := range e.shots {
		safe := sanitizeLabel(label)
		path := fmt.Sprintf("%s/%s_%s.png", SnapshotDir, stamp, safe)
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[halo] snapshot: %v\n", err)
		}
	}

	e.shots = e.shots[:0]
}

// straightAlphaImage converts premultiplied RGBA bytes, as read back from an
// ebiten.Image, into the straight-alpha NRGBA form PNG encoding expects.
func straightAlphaImage(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels); i += 4 {
		px := pixels[i : i+4 : i+4]
		out := img.Pix[i : i+4 : i+4]
		a := px[3]
		if a == 0 || a == 255 {
			copy(out, px)
			continue
		}
		out[0] = uint8(min(int(px[0])*255/int(a), 255))
		out[1] = uint8(min(int(px[1])*255/int(a), 255))
		out[2] = uint8(min(int(px[2])*255/int(a), 255))
		out[3] = a
	}
	return img
}

// writePNG encodes img in memory and writes it to path in one call. Snapshot
// images are small enough that buffering the whole file is cheaper than
// streaming through an open handle.
func writePNG(path string, img *image.NRGBA) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel maps a user-supplied label onto the filename-safe alphabet,
// replacing everything else with underscores. Empty and all-space labels
// become "unlabeled" so the snapshot file never loses its suffix.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
