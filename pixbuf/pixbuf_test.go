package pixbuf

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pattern fills every sample with a value derived from its position so that any
// misplaced pixel shows up in comparisons.
func pattern(t *testing.T, w, h, channels int) *Buffer {
	t.Helper()
	b, err := New(w, h, channels)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := b.PixOffset(x, y)
			for c := 0; c < channels; c++ {
				b.Pix[i+c] = byte(x*7 + y*13 + c*31)
			}
		}
	}
	return b
}

func TestStrideIsAligned(t *testing.T) {
	assert.Equal(t, 12, Stride(3, 3))
	assert.Equal(t, 12, Stride(4, 3))
	assert.Equal(t, 20, Stride(5, 4))
	assert.Equal(t, 4, Stride(1, 3))
}

func TestLimitRejectsInvalidGeometry(t *testing.T) {
	_, err := Limit(100).Alloc(0, 10, 3)
	assert.ErrorIs(t, err, ErrAllocation)

	_, err = Limit(100).Alloc(11, 10, 3)
	assert.ErrorIs(t, err, ErrAllocation)

	_, err = Limit(100).Alloc(10, 10, 2)
	assert.ErrorIs(t, err, ErrAllocation)

	b, err := Limit(100).Alloc(10, 10, 4)
	require.NoError(t, err)
	assert.Len(t, b.Pix, 400)
}

func TestRotateMapping(t *testing.T) {
	src := pattern(t, 5, 3, 3)

	r90, err := Rotate(src, 90, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, r90.Width)
	assert.Equal(t, 5, r90.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			assert.Equal(t, src.At(x, y), r90.At(src.Height-y-1, x))
		}
	}

	r270, err := Rotate(src, 270, nil)
	require.NoError(t, err)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			assert.Equal(t, src.At(x, y), r270.At(y, src.Width-x-1))
		}
	}

	r180, err := Rotate(src, 180, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, r180.Width)
	assert.Equal(t, 3, r180.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			assert.Equal(t, src.At(x, y), r180.At(src.Width-x-1, src.Height-y-1))
		}
	}
}

func TestRotateInversePairs(t *testing.T) {
	for _, channels := range []int{3, 4} {
		src := pattern(t, 7, 4, channels)

		a, err := Rotate(src, 90, nil)
		require.NoError(t, err)
		back, err := Rotate(a, 270, nil)
		require.NoError(t, err)
		assert.True(t, src.Equal(back), "90 then 270, %d channels", channels)

		b, err := Rotate(src, 180, nil)
		require.NoError(t, err)
		back, err = Rotate(b, 180, nil)
		require.NoError(t, err)
		assert.True(t, src.Equal(back), "180 twice, %d channels", channels)

		back, err = Rotate(src, -90, nil)
		require.NoError(t, err)
		assert.True(t, back.Equal(mustRotate(t, src, 270)))
	}
}

func mustRotate(t *testing.T, b *Buffer, degrees int) *Buffer {
	t.Helper()
	r, err := Rotate(b, degrees, nil)
	require.NoError(t, err)
	return r
}

func TestRotateRespectsPaddedStride(t *testing.T) {
	// a hand built raster with a wide stride, as some decoders hand out
	src := &Buffer{Width: 3, Height: 2, Channels: 3, Stride: 16, Pix: make([]byte, 32)}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			for c := 0; c < 3; c++ {
				src.Pix[y*16+x*3+c] = byte(1 + x + y*3)
			}
		}
		for p := 9; p < 16; p++ {
			src.Pix[y*16+p] = 0xee
		}
	}

	dst, err := Rotate(src, 90, nil)
	require.NoError(t, err)
	assert.Equal(t, Stride(2, 3), dst.Stride)
	assert.Equal(t, color.NRGBA{R: 4, G: 4, B: 4, A: 0xff}, dst.At(0, 0))
	assert.Equal(t, color.NRGBA{R: 1, G: 1, B: 1, A: 0xff}, dst.At(1, 0))
	assert.Equal(t, color.NRGBA{R: 6, G: 6, B: 6, A: 0xff}, dst.At(0, 2))

	back, err := Rotate(dst, 270, nil)
	require.NoError(t, err)
	assert.True(t, src.Equal(back))
}

func TestRotateZeroIsIdentity(t *testing.T) {
	src := pattern(t, 2, 2, 4)
	out, err := Rotate(src, 360, nil)
	require.NoError(t, err)
	assert.Same(t, src, out)
}

func TestRotateAllocationFailureKeepsInput(t *testing.T) {
	src := pattern(t, 4, 2, 3)
	before := append([]byte(nil), src.Pix...)
	failing := AllocatorFunc(func(w, h, c int) (*Buffer, error) {
		return nil, ErrAllocation
	})

	_, err := Rotate(src, 90, failing)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, before, src.Pix)
	assert.Equal(t, 4, src.Width)
}

func TestScaleNearestNeighbour(t *testing.T) {
	src := pattern(t, 4, 4, 3)

	half, err := Scale(src, 2, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, half.Width)
	assert.Equal(t, 2, half.Height)
	assert.Equal(t, 3, half.Channels)

	double, err := Scale(src, 8, 8, nil)
	require.NoError(t, err)
	assert.Equal(t, src.At(0, 0), double.At(0, 0))
	assert.Equal(t, src.At(3, 3), double.At(7, 7))

	same, err := Scale(src, 4, 4, nil)
	require.NoError(t, err)
	assert.Same(t, src, same)
}

func TestScaleAllocationFailure(t *testing.T) {
	src := pattern(t, 4, 4, 4)
	_, err := Scale(src, 40, 40, Limit(100))
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestFromImageChannels(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range opaque.Pix {
		opaque.Pix[i] = 0xff
	}
	opaque.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 0xff})

	b, err := FromImage(opaque, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Channels)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}, b.At(1, 1))

	translucent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	translucent.Set(0, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	b, err = FromImage(translucent, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Channels)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, b.At(0, 1))

	nrgba := b.NRGBA()
	assert.Equal(t, b.Bounds(), nrgba.Bounds())
}
