// Package backdrop picks the colour painted around an image in presentation
// mode.
package backdrop

import (
	"image"
	"image/color"
	"log"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/disintegration/imaging"
)

// minKmeansSide is the smallest width or height clustered with k-means.
// Smaller rasters are averaged instead.
const minKmeansSide = 16

// Color returns the prominent colour of img. Tiny rasters use the average of
// their non white pixels. When clustering fails the most frequent non white
// colour is used, and the average when every sampled pixel is white.
func Color(img image.Image) color.RGBA {
	bounds := img.Bounds()
	if bounds.Empty() {
		return color.RGBA{A: 255}
	}
	if bounds.Dx() < minKmeansSide || bounds.Dy() < minKmeansSide {
		r, g, b := AverageColor(img)
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
	kmeans, err := prominentcolor.Kmeans(img)
	if err == nil && len(kmeans) > 0 {
		return color.RGBA{
			R: uint8(kmeans[0].Color.R),
			G: uint8(kmeans[0].Color.G),
			B: uint8(kmeans[0].Color.B),
			A: 255,
		}
	}
	log.Printf("Unable to compute prominent colour: %v", err)
	if r, g, b, ok := prominent(img); ok {
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
	r, g, b := AverageColor(img)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// AverageColor averages the non white pixels of a small thumbnail of img.
func AverageColor(img image.Image) (r, g, b uint8) {
	temp := imaging.Resize(img, 20, 0, imaging.Lanczos)
	var count, sr, sg, sb uint32
	tempRect := temp.Bounds()
	for x := tempRect.Min.X; x < tempRect.Max.X; x++ {
		for y := tempRect.Min.Y; y < tempRect.Max.Y; y++ {
			c := temp.NRGBAAt(x, y)
			if c.R == 255 && c.G == 255 && c.B == 255 {
				continue
			}
			sr += uint32(c.R)
			sg += uint32(c.G)
			sb += uint32(c.B)
			count++
		}
	}
	if count > 0 {
		return uint8(sr / count), uint8(sg / count), uint8(sb / count)
	}
	return 0, 0, 0
}

// ProminentColor returns the most frequent colour among a sample of the pixels
// of img, ignoring white and transparent ones. The lowest bit of every channel
// is dropped so near identical shades count together.
func ProminentColor(img image.Image) (r, g, b uint8) {
	r, g, b, _ = prominent(img)
	return r, g, b
}

// prominent is ProminentColor, with ok false when no pixel was counted.
func prominent(img image.Image) (r, g, b uint8, ok bool) {
	step := 4
	colorsCount := make(map[uint32]int)
	tempRect := img.Bounds()
	currentMax := 0
	prominentColor := uint32(0)
	for x := tempRect.Min.X; x < tempRect.Max.X; x += step {
		for y := tempRect.Min.Y; y < tempRect.Max.Y; y += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			r, g, b = r>>8, g>>8, b>>8
			if r == 0xFF && g == 0xFF && b == 0xFF {
				continue
			}
			key := ((r & 0xFE) << 16) | ((g & 0xFE) << 8) | (b & 0xFE)
			colorsCount[key]++
			if colorsCount[key] > currentMax {
				prominentColor = key
				currentMax = colorsCount[key]
			}
		}
	}
	return uint8(prominentColor >> 16 & 0xff), uint8(prominentColor >> 8 & 0xff), uint8(prominentColor & 0xff), currentMax > 0
}
