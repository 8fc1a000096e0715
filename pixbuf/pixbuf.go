// Package pixbuf holds a single decoded raster as raw interleaved 8-bit samples,
// along with the rotate and scale transforms the viewer applies to it.
package pixbuf

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrAllocation is returned when a raster cannot be allocated, either because the
// requested geometry is invalid or because it exceeds the allocator's limit.
var ErrAllocation = errors.New("pixbuf: allocation failed")

// MaxPixels is the largest raster the default allocator will hand out.
const MaxPixels = 1 << 28

// Buffer is a raster of Width x Height pixels with Channels samples per pixel
// (3 for RGB, 4 for non-premultiplied RGBA). Rows are Stride bytes apart, and
// Stride may be larger than Width*Channels.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Stride   int
	Pix      []byte
}

// Stride returns the row stride used for a width and channel count: rows are
// padded to a 32-bit boundary.
func Stride(width, channels int) int {
	return (width*channels + 3) &^ 3
}

// Allocator produces new rasters. Every transform allocates through one so that
// allocation failures surface as errors instead of crashes.
type Allocator interface {
	Alloc(width, height, channels int) (*Buffer, error)
}

// AllocatorFunc adapts a function to the Allocator interface.
type AllocatorFunc func(width, height, channels int) (*Buffer, error)

func (f AllocatorFunc) Alloc(width, height, channels int) (*Buffer, error) {
	return f(width, height, channels)
}

// Limit is an Allocator that refuses rasters larger than a number of pixels.
type Limit int

func (l Limit) Alloc(width, height, channels int) (*Buffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrAllocation, width, height)
	}
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: unsupported channel count %d", ErrAllocation, channels)
	}
	if width*height > int(l) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, width, height, int(l))
	}
	stride := Stride(width, channels)
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Stride:   stride,
		Pix:      make([]byte, stride*height),
	}, nil
}

// DefaultAllocator is used whenever a nil Allocator is passed in.
var DefaultAllocator Allocator = Limit(MaxPixels)

func allocator(a Allocator) Allocator {
	if a == nil {
		return DefaultAllocator
	}
	return a
}

// New allocates a zeroed raster with the default allocator.
func New(width, height, channels int) (*Buffer, error) {
	return DefaultAllocator.Alloc(width, height, channels)
}

func (b *Buffer) HasAlpha() bool {
	return b.Channels == 4
}

// Size returns the raster dimensions.
func (b *Buffer) Size() (int, int) {
	return b.Width, b.Height
}

// PixOffset returns the index of the first sample of pixel (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return y*b.Stride + x*b.Channels
}

func (b *Buffer) ColorModel() color.Model {
	return color.NRGBAModel
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *Buffer) At(x, y int) color.Color {
	if !image.Pt(x, y).In(b.Bounds()) {
		return color.NRGBA{}
	}
	i := b.PixOffset(x, y)
	if b.Channels == 3 {
		return color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: 0xff}
	}
	return color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Opaque reports whether the raster carries no alpha channel.
func (b *Buffer) Opaque() bool {
	return b.Channels == 3
}

// NRGBA returns the raster as an *image.NRGBA. Four channel rasters share their
// samples with the result; three channel rasters are expanded into a copy.
func (b *Buffer) NRGBA() *image.NRGBA {
	if b.Channels == 4 {
		return &image.NRGBA{Pix: b.Pix, Stride: b.Stride, Rect: b.Bounds()}
	}
	dst := image.NewNRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		src := b.Pix[y*b.Stride:]
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Width; x++ {
			row[x*4] = src[x*3]
			row[x*4+1] = src[x*3+1]
			row[x*4+2] = src[x*3+2]
			row[x*4+3] = 0xff
		}
	}
	return dst
}

// Equal compares geometry and pixel samples, ignoring row padding.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width != o.Width || b.Height != o.Height || b.Channels != o.Channels {
		return false
	}
	n := b.Width * b.Channels
	for y := 0; y < b.Height; y++ {
		r1 := b.Pix[y*b.Stride : y*b.Stride+n]
		r2 := o.Pix[y*o.Stride : y*o.Stride+n]
		for i := range r1 {
			if r1[i] != r2[i] {
				return false
			}
		}
	}
	return true
}

// FromImage copies a decoded image into a new raster. Opaque images get three
// channels, everything else four.
func FromImage(img image.Image, alloc Allocator) (*Buffer, error) {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	channels := 4
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels = 3
	}

	dst, err := allocator(alloc).Alloc(w, h, channels)
	if err != nil {
		return nil, err
	}
	dst.copyFrom(src)
	return dst, nil
}

func (b *Buffer) copyFrom(src *image.NRGBA) {
	for y := 0; y < b.Height; y++ {
		in := src.Pix[y*src.Stride:]
		out := b.Pix[y*b.Stride:]
		if b.Channels == 4 {
			copy(out[:b.Width*4], in[:b.Width*4])
			continue
		}
		for x := 0; x < b.Width; x++ {
			out[x*3] = in[x*4]
			out[x*3+1] = in[x*4+1]
			out[x*3+2] = in[x*4+2]
		}
	}
}
