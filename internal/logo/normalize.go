package logo

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Registered decoders for the formats tenants upload or link.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxSide is the largest edge, in pixels, a normalized logo keeps. The
// header draws logos at 36pt so anything larger only bloats the PDF.
const MaxSide = 256

// MaxSourceSide caps the declared dimensions of an image before it is
// decoded. Decoders allocate the full pixel buffer up front.
const MaxSourceSide = 4096

// Normalize decodes any supported image format, downsizes it so neither
// edge exceeds maxSide, and re-encodes it as PNG.
func Normalize(raw []byte, maxSide int) ([]byte, error) {
	if err := CheckDimensions(raw); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decode image: empty %s", format)
	}

	w, h := fit(b.Dx(), b.Dy(), maxSide)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}

// CheckDimensions reads only the image header and rejects images whose
// declared size exceeds MaxSourceSide on either edge.
func CheckDimensions(raw []byte) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width > MaxSourceSide || cfg.Height > MaxSourceSide {
		return fmt.Errorf("decode image: %s is %dx%d, limit is %dx%d",
			format, cfg.Width, cfg.Height, MaxSourceSide, MaxSourceSide)
	}
	return nil
}

func fit(w, h, maxSide int) (int, int) {
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return w, h
	}
	if w >= h {
		nh := h * maxSide / w
		if nh < 1 {
			nh = 1
		}
		return maxSide, nh
	}
	nw := w * maxSide / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxSide
}
