package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types handled by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

type tgaHeader struct {
	idLength    int
	colorMap    byte
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("tga: header needs %d bytes, got %d", tgaHeaderSize, len(data))
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		colorMap:    data[1],
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}

	switch {
	case h.colorMap != 0:
		return h, fmt.Errorf("%w: color-mapped tga", ErrUnsupportedFormat)
	case h.imageType != tgaTrueColor && h.imageType != tgaTrueColorRLE:
		return h, fmt.Errorf("%w: tga type %d", ErrUnsupportedFormat, h.imageType)
	case h.bpp != 24 && h.bpp != 32:
		return h, fmt.Errorf("%w: tga depth %d", ErrUnsupportedFormat, h.bpp)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed or RLE true-color TGA file.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}

	start := tgaHeaderSize + h.idLength
	if start > len(data) {
		return nil, errTGATruncated
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	w := tgaWriter{img: img, hdr: h, bytesPerPixel: h.bpp / 8}

	if h.imageType == tgaTrueColor {
		err = w.raw(data[start:])
	} else {
		err = w.rle(data[start:])
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// tgaWriter places BGR(A) pixels into img in file order.
type tgaWriter struct {
	img           *image.NRGBA
	hdr           tgaHeader
	bytesPerPixel int
	next          int
}

func (w *tgaWriter) total() int {
	return w.hdr.width * w.hdr.height
}

func (w *tgaWriter) put(px []byte) {
	x := w.next % w.hdr.width
	y := w.next / w.hdr.width
	if !w.hdr.topToBottom {
		y = w.hdr.height - 1 - y
	}
	i := w.img.PixOffset(x, y)
	w.img.Pix[i+0] = px[2]
	w.img.Pix[i+1] = px[1]
	w.img.Pix[i+2] = px[0]
	if w.bytesPerPixel == 4 {
		w.img.Pix[i+3] = px[3]
	} else {
		w.img.Pix[i+3] = 0xff
	}
	w.next++
}

func (w *tgaWriter) raw(src []byte) error {
	if len(src) < w.total()*w.bytesPerPixel {
		return errTGATruncated
	}
	for w.next < w.total() {
		off := w.next * w.bytesPerPixel
		w.put(src[off : off+w.bytesPerPixel])
	}
	return nil
}

func (w *tgaWriter) rle(src []byte) error {
	pos := 0
	for w.next < w.total() {
		if pos >= len(src) {
			return errTGATruncated
		}
		packet := src[pos]
		pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			if pos+w.bytesPerPixel > len(src) {
				return errTGATruncated
			}
			px := src[pos : pos+w.bytesPerPixel]
			pos += w.bytesPerPixel
			for i := 0; i < count && w.next < w.total(); i++ {
				w.put(px)
			}
			continue
		}

		for i := 0; i < count && w.next < w.total(); i++ {
			if pos+w.bytesPerPixel > len(src) {
				return errTGATruncated
			}
			w.put(src[pos : pos+w.bytesPerPixel])
			pos += w.bytesPerPixel
		}
	}
	return nil
}
