package bjpeg

import (
	"bufio"
	"fmt"
	"io"
)

// Pixel is one RGB triple, each component in 0..255.
type Pixel struct {
	R, G, B uint8
}

// Sink is the opaque output collaborator the scan orchestrator writes into.
// spec.md treats this as external; Image below is this package's own
// implementation of it so Decode is runnable without a caller-supplied sink.
type Sink interface {
	SetSize(w, h int)
	SetPixel(row, col int, px Pixel)
	SetComment(s string)
	Width() int
	Height() int
	GetComment() string
}

// Image is a Sink backed by a flat row-major pixel buffer.
type Image struct {
	width, height int
	comment       string
	pixels        []Pixel
}

// NewImage returns a Sink with no size set yet; SetSize must be called
// before any SetPixel.
func NewImage() *Image {
	return &Image{}
}

func (img *Image) SetSize(w, h int) {
	img.width, img.height = w, h
	img.pixels = make([]Pixel, w*h)
}

func (img *Image) SetPixel(row, col int, px Pixel) {
	img.pixels[row*img.width+col] = px
}

func (img *Image) SetComment(s string) { img.comment = s }

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

func (img *Image) GetComment() string { return img.comment }

// At returns the pixel at (row, col).
func (img *Image) At(row, col int) Pixel {
	return img.pixels[row*img.width+col]
}

// WritePPM writes img as a binary (P6) PPM, the simplest lossless format
// that needs no compression or color-space support of its own, mirroring
// the teacher's raw-sample file writers.
func (img *Image) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", img.width, img.height); err != nil {
		return err
	}
	for _, px := range img.pixels {
		if _, err := bw.Write([]byte{px.R, px.G, px.B}); err != nil {
			return err
		}
	}
	return bw.Flush()
}
