package ui

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mozvip/gopho/scale"
	"github.com/mozvip/gopho/viewer"
)

// Title is the window title for an image.
func Title(path string, width, height int, presentation bool) string {
	title := fmt.Sprintf("gopho: %s (%d x %d)", path, width, height)
	if presentation {
		title += " (fullscreen)"
	}
	return title
}

// InfoLines describes rec for the info panel.
func InfoLines(rec *viewer.Record, mode scale.Mode, ratio float64) []string {
	if rec == nil {
		return nil
	}
	lines := []string{
		rec.Path,
		fmt.Sprintf("Size: %d x %d, shown at %d x %d", rec.TrueWidth, rec.TrueHeight, rec.CurWidth, rec.CurHeight),
		fmt.Sprintf("Rotation: %d", rec.CurRot),
	}
	switch mode {
	case scale.ScreenRatio, scale.ImageRatio:
		lines = append(lines, fmt.Sprintf("Scale: %s x%.2f", mode, ratio))
	default:
		lines = append(lines, fmt.Sprintf("Scale: %s", mode))
	}
	var notes []string
	for n := 0; n < viewer.MaxNotes; n++ {
		if rec.HasNote(n) {
			notes = append(notes, fmt.Sprint(n))
		}
	}
	if len(notes) > 0 {
		lines = append(lines, "Notes: "+strings.Join(notes, " "))
	}
	if rec.Annotation != "" {
		lines = append(lines, "Comment: "+rec.Annotation)
	}
	return lines
}

// Info is the panel toggled with the i key.
type Info struct {
	Visible bool
}

func (i *Info) Toggle() {
	i.Visible = !i.Visible
}

func (i *Info) Draw(img *ebiten.Image, lines []string) {
	if !i.Visible {
		return
	}
	drawPanel(img, lines, 8, 8)
}
