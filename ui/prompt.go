package ui

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Prompt is a modal question answered with a single key. Keys listed in
// Affirmative answer yes, keys in Negative answer no, others are ignored.
type Prompt struct {
	Question    string
	Affirmative string
	Negative    string

	answer func(bool)
	done   bool
}

func NewPrompt(question, affirmative, negative string, answer func(bool)) *Prompt {
	return &Prompt{Question: question, Affirmative: affirmative, Negative: negative, answer: answer}
}

// Key feeds one typed character and reports whether the prompt is answered.
func (p *Prompt) Key(r rune) bool {
	if p.done {
		return true
	}
	switch {
	case strings.ContainsRune(p.Affirmative, r):
		p.finish(true)
	case strings.ContainsRune(p.Negative, r):
		p.finish(false)
	}
	return p.done
}

// Cancel answers no.
func (p *Prompt) Cancel() {
	if !p.done {
		p.finish(false)
	}
}

func (p *Prompt) Done() bool {
	return p.done
}

func (p *Prompt) finish(ok bool) {
	p.done = true
	if p.answer != nil {
		p.answer(ok)
	}
}

func (p *Prompt) Draw(img *ebiten.Image) {
	w, h := img.Size()
	x := w/2 - len(p.Question)*7/2 - 8
	if x < 0 {
		x = 0
	}
	drawPanel(img, []string{p.Question}, x, h/2-lineHeight)
}

// LineEdit collects a line of text, finished with Enter.
type LineEdit struct {
	Label string
	text  []rune
}

func NewLineEdit(label, initial string) *LineEdit {
	return &LineEdit{Label: label, text: []rune(initial)}
}

func (l *LineEdit) Add(r rune) {
	if r < ' ' {
		return
	}
	l.text = append(l.text, r)
}

func (l *LineEdit) Backspace() {
	if len(l.text) > 0 {
		l.text = l.text[:len(l.text)-1]
	}
}

func (l *LineEdit) Text() string {
	return string(l.text)
}

func (l *LineEdit) Draw(img *ebiten.Image) {
	_, h := img.Size()
	drawPanel(img, []string{l.Label + ": " + l.Text() + "_"}, 8, h-lineHeight-16)
}
