package main

import (
	"bytes"
	_ "embed"
	"image"
	"image/png"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed icon/icon_16.png
var icon16 []byte

//go:embed icon/icon_32.png
var icon32 []byte

//go:embed icon/icon_48.png
var icon48 []byte

// windowIcons decodes the embedded icons, smallest first.
func windowIcons() []image.Image {
	var icons []image.Image
	for _, data := range [][]byte{icon16, icon32, icon48} {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			log.Printf("Unable to decode window icon: %v", err)
			continue
		}
		icons = append(icons, img)
	}
	return icons
}

func setWindowIcon() {
	if icons := windowIcons(); len(icons) > 0 {
		ebiten.SetWindowIcon(icons)
	}
}
