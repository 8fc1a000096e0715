// Package ui draws the overlays shown above the image: transient messages,
// prompts and the info panel.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Face is the font every overlay is drawn with.
var Face font.Face = basicfont.Face7x13

const lineHeight = 16

// Message is a line of text that disappears after a timeout.
type Message struct {
	Message string
	timeout float64
}

func NewMessage(message string, timeoutInSeconds float64) *Message {
	return &Message{Message: message, timeout: timeoutInSeconds}
}

// Update consumes elapsed seconds and reports whether the message expired.
func (m *Message) Update(elapsed float64) bool {
	m.timeout -= elapsed
	return m.timeout <= 0
}

func (m *Message) Draw(img *ebiten.Image, x, y int) {
	drawPanel(img, []string{m.Message}, x, y)
}

// drawPanel writes lines over a translucent box whose top left corner is
// x, y.
func drawPanel(img *ebiten.Image, lines []string, x, y int) {
	if len(lines) == 0 {
		return
	}
	width := 0
	for _, l := range lines {
		if w := text.BoundString(Face, l).Dx(); w > width {
			width = w
		}
	}
	box := ebiten.NewImage(width+16, len(lines)*lineHeight+8)
	defer box.Dispose()
	box.Fill(color.RGBA{A: 0xb0})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	img.DrawImage(box, op)

	for i, l := range lines {
		text.Draw(img, l, Face, x+8, y+4+(i+1)*lineHeight-4, color.White)
	}
}
