package viewer

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mozvip/gopho/pixbuf"
)

type fakeDecoder struct {
	sizes  map[string][2]int
	broken map[string]bool
	calls  map[string]int
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{
		sizes:  map[string][2]int{},
		broken: map[string]bool{},
		calls:  map[string]int{},
	}
}

func (d *fakeDecoder) Decode(path string) (*pixbuf.Buffer, error) {
	d.calls[path]++
	if d.broken[path] {
		return nil, errors.New("not an image file")
	}
	size, ok := d.sizes[path]
	if !ok {
		return nil, fmt.Errorf("%s: no such file", path)
	}
	b, err := pixbuf.New(size[0], size[1], 3)
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			i := b.PixOffset(x, y)
			b.Pix[i] = byte(x)
			b.Pix[i+1] = byte(y)
			b.Pix[i+2] = byte(x ^ y)
		}
	}
	return b, nil
}

type fakeMetadata map[string]int

func (m fakeMetadata) OrientationHint(path string) int {
	return m[path]
}

type fakeSink struct {
	presented []*pixbuf.Buffer
	geometry  [][2]int
	surface   [2]int
}

func (f *fakeSink) Present(buf *pixbuf.Buffer) {
	f.presented = append(f.presented, buf)
}

func (f *fakeSink) GeometryChanged(w, h int) {
	f.geometry = append(f.geometry, [2]int{w, h})
}

func (f *fakeSink) SurfaceSize() (int, int) {
	return f.surface[0], f.surface[1]
}

type fakePrompter struct {
	answer    bool
	questions []string
	reports   []string
}

func (p *fakePrompter) Confirm(message, affirmative, negative string, answer func(bool)) {
	p.questions = append(p.questions, message)
	answer(p.answer)
}

func (p *fakePrompter) Report(message string) {
	p.reports = append(p.reports, message)
}

type fakeRemover struct {
	fail    error
	removed []string
}

func (r *fakeRemover) Remove(path string) error {
	if r.fail != nil {
		return r.fail
	}
	r.removed = append(r.removed, path)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type harness struct {
	session  *Session
	decoder  *fakeDecoder
	sink     *fakeSink
	prompter *fakePrompter
	remover  *fakeRemover
	clock    *fakeClock
	sched    *TickScheduler
	ended    int
}

// newHarness builds a session over images of the given sizes on a 1920x1080
// monitor, in Normal mode.
func newHarness(t *testing.T, sizes map[string][2]int, order []string, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		decoder:  newFakeDecoder(),
		sink:     &fakeSink{surface: [2]int{1920, 1080}},
		prompter: &fakePrompter{answer: true},
		remover:  &fakeRemover{},
		clock:    &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	h.sched = NewTickScheduler(h.clock.Now)
	for p, s := range sizes {
		h.decoder.sizes[p] = s
	}
	base := []Option{
		WithDecoder(h.decoder),
		WithDisplay(h.sink),
		WithPrompter(h.prompter),
		WithRemover(h.remover),
		WithMonitor(1920, 1080),
		OnEnd(func() { h.ended++ }),
	}
	s, err := New(order, append(base, opts...)...)
	require.NoError(t, err)
	h.session = s
	return h
}
