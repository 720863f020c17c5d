// Package texture decodes images and uploads them as OpenGL textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ErrUnsupportedFormat is returned for images no registered decoder accepts.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Decode decodes image data. The name's extension selects the TGA decoder,
// which has no magic number; every other format is sniffed from the data.
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// Prepare converts img into tightly packed, non-premultiplied RGBA ready
// for upload. Images larger than maxSize on either side are scaled down
// keeping their aspect ratio (maxSize <= 0 disables scaling). With flip set,
// rows are reversed so the first row is the bottom of the image, matching
// OpenGL's texture origin.
func Prepare(img image.Image, maxSize int, flip bool) *image.NRGBA {
	b := img.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), maxSize)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	}

	if flip {
		flipRows(out)
	}
	return out
}

// fitWithin scales w x h down to fit a limit x limit square.
func fitWithin(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

func flipRows(img *image.NRGBA) {
	rows := img.Rect.Dy()
	tmp := make([]byte, img.Stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*img.Stride : (top+1)*img.Stride]
		b := img.Pix[bottom*img.Stride : (bottom+1)*img.Stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
