package main

import (
	"errors"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mozvip/gopho/backdrop"
	"github.com/mozvip/gopho/files"
	"github.com/mozvip/gopho/pixbuf"
	"github.com/mozvip/gopho/ui"
	"github.com/mozvip/gopho/viewer"
)

// errQuit ends RunGame without reporting a failure.
var errQuit = errors.New("quit")

var digitKeys = [viewer.MaxNotes]ebiten.Key{
	ebiten.Key0, ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Pho is the ebiten game showing a session. It is the display and the
// prompter of the session it drives.
type Pho struct {
	session *viewer.Session
	library *files.Library
	sched   *viewer.TickScheduler

	current    *ebiten.Image
	background color.RGBA
	windowed   struct{ w, h int }
	fullscreen bool

	message *ui.Message
	prompt  *ui.Prompt
	edit    *ui.LineEdit
	info    ui.Info

	slideshowDelay int
	quit           bool
}

func NewPho(library *files.Library, sched *viewer.TickScheduler, windowW, windowH int) *Pho {
	p := &Pho{library: library, sched: sched, background: color.RGBA{A: 255}}
	p.windowed.w, p.windowed.h = windowW, windowH
	return p
}

// Present implements viewer.DisplaySink.
func (p *Pho) Present(buf *pixbuf.Buffer) {
	if p.current != nil {
		p.current.Dispose()
	}
	p.current = ebiten.NewImageFromImage(buf)
	if p.session.Presentation {
		p.background = backdrop.Color(buf)
	} else {
		p.background = color.RGBA{A: 255}
	}
	if rec := p.session.Current(); rec != nil {
		ebiten.SetWindowTitle(ui.Title(rec.Path, rec.TrueWidth, rec.TrueHeight, p.session.Presentation))
	}
}

// GeometryChanged implements viewer.DisplaySink: outside presentation mode the
// window follows the size of the image.
func (p *Pho) GeometryChanged(width, height int) {
	p.setFullscreen(p.session.Presentation)
	if !p.session.Presentation {
		ebiten.SetWindowSize(width, height)
	}
}

// SurfaceSize implements viewer.DisplaySink.
func (p *Pho) SurfaceSize() (int, int) {
	if p.session.Presentation {
		return ebiten.ScreenSizeInFullscreen()
	}
	return ebiten.WindowSize()
}

func (p *Pho) setFullscreen(on bool) {
	if on == p.fullscreen {
		return
	}
	if on {
		// save the size of the window
		p.windowed.w, p.windowed.h = ebiten.WindowSize()
	}
	p.fullscreen = on
	ebiten.SetFullscreen(on)
	if !on && p.windowed.w > 0 {
		// restore the size of the window
		ebiten.SetWindowSize(p.windowed.w, p.windowed.h)
	}
}

// Confirm implements viewer.Prompter.
func (p *Pho) Confirm(message, affirmative, negative string, answer func(bool)) {
	if p.prompt != nil {
		p.prompt.Cancel()
	}
	p.prompt = ui.NewPrompt(message, affirmative, negative, answer)
}

// Report implements viewer.Prompter.
func (p *Pho) Report(message string) {
	p.message = ui.NewMessage(message, 3)
}

func (p *Pho) next() {
	_, err := p.session.Next()
	if errors.Is(err, viewer.ErrEndOfList) {
		p.Confirm("Quit gopho?", "qx \n", "c ", func(ok bool) {
			if ok {
				p.quit = true
			}
		})
		return
	}
	p.check(err)
}

func (p *Pho) toggleSlideshow() {
	delay := p.session.Slideshow().Delay()
	if delay > 0 {
		p.slideshowDelay = delay
		p.session.SetDelay(0)
		p.Report("Slideshow stopped")
		return
	}
	if p.slideshowDelay == 0 {
		p.slideshowDelay = 5
	}
	p.session.SetDelay(p.slideshowDelay)
	p.Report("Slideshow started")
}

func (p *Pho) toggleBorders() {
	p.library.RemoveBorders = !p.library.RemoveBorders
	if _, err := p.session.This(); err != nil {
		log.Println(err)
	}
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// typed returns the characters entered this frame, with Enter as '\n'.
func typed() []rune {
	chars := ebiten.InputChars()
	if justPressed(ebiten.KeyEnter, ebiten.KeyKPEnter) {
		chars = append(chars, '\n')
	}
	return chars
}

// modal feeds input to the open prompt or line editor, if any.
func (p *Pho) modal() bool {
	switch {
	case p.prompt != nil:
		if justPressed(ebiten.KeyEscape) {
			p.prompt.Cancel()
		}
		for _, r := range typed() {
			if p.prompt.Key(r) {
				break
			}
		}
		if p.prompt.Done() {
			p.prompt = nil
		}
		return true

	case p.edit != nil:
		if justPressed(ebiten.KeyEscape) {
			p.edit = nil
			return true
		}
		if justPressed(ebiten.KeyBackspace) {
			p.edit.Backspace()
		}
		for _, r := range typed() {
			if r == '\n' {
				if err := p.session.Annotate(p.edit.Text()); err != nil {
					log.Println(err)
				}
				p.edit = nil
				return true
			}
			p.edit.Add(r)
		}
		return true
	}
	return false
}

func (p *Pho) check(err error) {
	if err != nil && !errors.Is(err, viewer.ErrSessionEnded) {
		log.Println(err)
	}
}

// tick runs the slideshow advances that are due. Nothing fires while a prompt
// or the comment editor is open; due advances wait until it closes.
func (p *Pho) tick() int {
	if p.prompt != nil || p.edit != nil {
		return 0
	}
	return p.sched.Poll()
}

func (p *Pho) Update() error {
	p.tick()
	if p.message != nil && p.message.Update(1/float64(ebiten.MaxTPS())) {
		p.message = nil
	}

	if !p.modal() {
		p.keys()
	}

	if p.quit || p.session.Ended() {
		return errQuit
	}
	return nil
}

func (p *Pho) keys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	switch {
	case justPressed(ebiten.KeySpace):
		p.next()
	case justPressed(ebiten.KeyBackspace, ebiten.KeyMinus):
		_, err := p.session.Prev()
		if err != nil && !errors.Is(err, viewer.ErrStartOfList) {
			log.Println(err)
		}
	case justPressed(ebiten.KeyHome):
		_, err := p.session.First()
		p.check(err)
	case justPressed(ebiten.KeyD):
		p.session.Delete()

	case justPressed(ebiten.KeyF) && shift:
		p.check(p.session.ToggleFullSize())
	case justPressed(ebiten.KeyF):
		p.check(p.session.ToggleFullScreen())
	case justPressed(ebiten.KeyP):
		p.check(p.session.TogglePresentation())
	case justPressed(ebiten.KeyEqual, ebiten.KeyKPAdd):
		p.check(p.session.Zoom(2))
	case justPressed(ebiten.KeySlash, ebiten.KeyKPSubtract):
		p.check(p.session.Zoom(0.5))

	case justPressed(ebiten.KeyT, ebiten.KeyR) && shift, justPressed(ebiten.KeyL, ebiten.KeyLeft):
		p.check(p.session.Rotate(-90))
	case justPressed(ebiten.KeyT, ebiten.KeyR, ebiten.KeyRight):
		p.check(p.session.Rotate(90))
	case justPressed(ebiten.KeyUp):
		p.check(p.session.Rotate(180))

	case justPressed(ebiten.KeyS):
		p.toggleSlideshow()
	case justPressed(ebiten.KeyB):
		p.toggleBorders()
	case justPressed(ebiten.KeyI):
		p.info.Toggle()
	case justPressed(ebiten.KeyA):
		if rec := p.session.Current(); rec != nil {
			p.edit = ui.NewLineEdit("Comment", rec.Annotation)
		}
	case justPressed(ebiten.KeyEscape, ebiten.KeyQ):
		p.quit = true

	default:
		for n, k := range digitKeys {
			if justPressed(k) {
				p.check(p.session.ToggleNote(n))
			}
		}
	}
}

func (p *Pho) Draw(screen *ebiten.Image) {
	screen.Fill(p.background)

	if p.current != nil {
		sw, sh := screen.Size()
		w, h := p.current.Size()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64((sw-w)/2), float64((sh-h)/2))
		screen.DrawImage(p.current, op)
	}

	p.info.Draw(screen, ui.InfoLines(p.session.Current(), p.session.Mode, p.session.Ratio))
	if p.message != nil {
		_, sh := screen.Size()
		p.message.Draw(screen, 8, sh-40)
	}
	if p.edit != nil {
		p.edit.Draw(screen)
	}
	if p.prompt != nil {
		p.prompt.Draw(screen)
	}
}

func (p *Pho) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return outsideWidth, outsideHeight
}
