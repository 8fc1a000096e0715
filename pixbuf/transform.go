package pixbuf

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// Rotate returns a new raster turned clockwise by degrees (90, 180 or 270).
// Zero returns src itself. Samples are copied verbatim; on error src is left
// untouched.
func Rotate(src *Buffer, degrees int, alloc Allocator) (*Buffer, error) {
	degrees = ((degrees % 360) + 360) % 360
	if degrees == 0 {
		return src, nil
	}
	if degrees%90 != 0 {
		return nil, fmt.Errorf("pixbuf: illegal rotation %d", degrees)
	}

	nw, nh := src.Height, src.Width
	if degrees == 180 {
		nw, nh = src.Width, src.Height
	}
	dst, err := allocator(alloc).Alloc(nw, nh, src.Channels)
	if err != nil {
		return nil, err
	}

	n := src.Channels
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			var nx, ny int
			switch degrees {
			case 90:
				nx, ny = src.Height-y-1, x
			case 270:
				nx, ny = y, src.Width-x-1
			case 180:
				nx, ny = src.Width-x-1, src.Height-y-1
			}
			i := y*src.Stride + x*n
			j := ny*dst.Stride + nx*n
			copy(dst.Pix[j:j+n], src.Pix[i:i+n])
		}
	}
	return dst, nil
}

// Scale resamples src to width x height with nearest-neighbour sampling. When the
// size already matches, src is returned unchanged.
func Scale(src *Buffer, width, height int, alloc Allocator) (*Buffer, error) {
	if width == src.Width && height == src.Height {
		return src, nil
	}
	dst, err := allocator(alloc).Alloc(width, height, src.Channels)
	if err != nil {
		return nil, err
	}

	res := imaging.Resize(src.NRGBA(), width, height, imaging.NearestNeighbor)
	if res.Bounds().Dx() < 1 || res.Bounds().Dy() < 1 {
		return nil, fmt.Errorf("%w: resampler returned %dx%d", ErrAllocation, res.Bounds().Dx(), res.Bounds().Dy())
	}
	if res.Bounds().Dx() != width || res.Bounds().Dy() != height {
		dst, err = allocator(alloc).Alloc(res.Bounds().Dx(), res.Bounds().Dy(), src.Channels)
		if err != nil {
			return nil, err
		}
	}
	dst.copyFrom(res)
	return dst, nil
}
