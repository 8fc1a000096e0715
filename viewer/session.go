// Package viewer is the navigation and transform engine of gopho: it walks a
// circular list of images, keeps exactly one decoded raster alive for the
// current one, and scales and rotates it for display.
package viewer

import (
	"errors"
	"fmt"
	"log"

	"github.com/mozvip/gopho/pixbuf"
	"github.com/mozvip/gopho/scale"
)

// Decoder turns an image path into a raster.
type Decoder interface {
	Decode(path string) (*pixbuf.Buffer, error)
}

// MetadataReader returns the clockwise rotation an image asks for in its
// embedded metadata, 0 when there is none.
type MetadataReader interface {
	OrientationHint(path string) int
}

// Remover deletes an image from disk.
type Remover interface {
	Remove(path string) error
}

// RemoverFunc adapts a function such as os.Remove to the Remover interface.
type RemoverFunc func(path string) error

func (f RemoverFunc) Remove(path string) error {
	return f(path)
}

// Prompter asks the user questions and shows non-fatal failures. The answer to
// Confirm is delivered through a callback, as the host event loop cannot block.
type Prompter interface {
	Confirm(message, affirmative, negative string, answer func(bool))
	Report(message string)
}

// DisplaySink shows rasters. Resizing and placing the window after a geometry
// change is up to the sink.
type DisplaySink interface {
	Present(buf *pixbuf.Buffer)
	GeometryChanged(width, height int)
	SurfaceSize() (int, int)
}

// DefaultMonitor is assumed when no monitor size is configured.
var DefaultMonitor = scale.Size{W: 1920, H: 1080}

// Session owns the image list, the live raster and the display settings.
type Session struct {
	list  *List
	buf   *pixbuf.Buffer
	owner *Record

	decoder  Decoder
	meta     MetadataReader
	remover  Remover
	prompter Prompter
	sink     DisplaySink
	alloc    pixbuf.Allocator

	Mode         scale.Mode
	Ratio        float64
	Monitor      scale.Size
	Presentation bool

	slideshow *Slideshow
	onEnd     func()
	ended     bool
}

// Option configures a Session.
type Option func(*Session) error

func WithDecoder(d Decoder) Option {
	return func(s *Session) error {
		s.decoder = d
		return nil
	}
}

func WithMetadata(m MetadataReader) Option {
	return func(s *Session) error {
		s.meta = m
		return nil
	}
}

func WithRemover(r Remover) Option {
	return func(s *Session) error {
		s.remover = r
		return nil
	}
}

func WithPrompter(p Prompter) Option {
	return func(s *Session) error {
		s.prompter = p
		return nil
	}
}

func WithDisplay(d DisplaySink) Option {
	return func(s *Session) error {
		s.sink = d
		return nil
	}
}

// WithAllocator sets the allocator used by every scale and rotate.
func WithAllocator(a pixbuf.Allocator) Option {
	return func(s *Session) error {
		s.alloc = a
		return nil
	}
}

// WithScale sets the initial scale mode and ratio.
func WithScale(m scale.Mode, ratio float64) Option {
	return func(s *Session) error {
		if !m.Valid() {
			return fmt.Errorf("%w: %d", scale.ErrInvalidMode, int(m))
		}
		if ratio <= 0 {
			return fmt.Errorf("scale ratio must be greater than zero, given %g", ratio)
		}
		s.Mode, s.Ratio = m, ratio
		return nil
	}
}

func WithMonitor(width, height int) Option {
	return func(s *Session) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("invalid monitor size %dx%d", width, height)
		}
		s.Monitor = scale.Size{W: width, H: height}
		return nil
	}
}

func WithPresentation(on bool) Option {
	return func(s *Session) error {
		s.Presentation = on
		return nil
	}
}

// WithSlideshow arms an automatic advance every delay seconds through sched.
func WithSlideshow(delay int, sched Scheduler) Option {
	return func(s *Session) error {
		s.slideshow = NewSlideshow(delay, sched)
		return nil
	}
}

// OnEnd registers the function called once the list runs out of images.
func OnEnd(f func()) Option {
	return func(s *Session) error {
		s.onEnd = f
		return nil
	}
}

// New creates a session over paths. Nothing is decoded until the first Next.
func New(paths []string, opts ...Option) (*Session, error) {
	if len(paths) == 0 {
		return nil, ErrSessionEnded
	}
	s := &Session{
		list:     NewList(paths...),
		meta:     noMetadata{},
		remover:  RemoverFunc(removeFile),
		prompter: logPrompter{},
		Mode:     scale.Normal,
		Ratio:    1,
		Monitor:  DefaultMonitor,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.decoder == nil {
		return nil, errors.New("viewer: no decoder configured")
	}
	if s.sink == nil {
		s.sink = nopSink{s}
	}
	if s.slideshow == nil {
		s.slideshow = NewSlideshow(0, nil)
	}
	return s, nil
}

func (s *Session) List() *List {
	return s.list
}

// Current returns the record on display, nil before the first Next.
func (s *Session) Current() *Record {
	return s.list.Current()
}

// Buffer returns the live raster.
func (s *Session) Buffer() *pixbuf.Buffer {
	return s.buf
}

func (s *Session) Slideshow() *Slideshow {
	return s.slideshow
}

// Ended reports whether the list has been emptied.
func (s *Session) Ended() bool {
	return s.ended
}

func (s *Session) input() scale.Input {
	w, h := s.sink.SurfaceSize()
	return scale.Input{
		Mode:         s.Mode,
		Ratio:        s.Ratio,
		Monitor:      s.Monitor,
		Window:       scale.Size{W: w, H: h},
		Presentation: s.Presentation,
	}
}

func (s *Session) decode(rec *Record) (*pixbuf.Buffer, error) {
	buf, err := s.decoder.Decode(rec.Path)
	if err != nil {
		var de *DecodeError
		if !errors.As(err, &de) {
			de = &DecodeError{Path: rec.Path, Err: err}
		}
		return nil, de
	}
	return buf, nil
}

// materialize makes sure the live raster belongs to rec. A record seen for the
// first time also gets its true size and metadata rotation captured. A record
// decoded again starts from rotation zero, so its previous rotation is folded
// into degrees.
func (s *Session) materialize(rec *Record, degrees int) (int, error) {
	if rec.Loaded() && s.owner == rec && s.buf != nil {
		return degrees, nil
	}
	debugf("Loading %s", rec.Path)
	buf, err := s.decode(rec)
	if err != nil {
		return 0, err
	}
	if !rec.Loaded() {
		rec.MetadataRot = normalize(s.meta.OrientationHint(rec.Path))
	} else {
		degrees += rec.CurRot
	}
	rec.CurRot = 0
	rec.TrueWidth, rec.TrueHeight = buf.Width, buf.Height
	rec.CurWidth, rec.CurHeight = buf.Width, buf.Height
	s.buf, s.owner = buf, rec
	return degrees, nil
}

// load decodes rec afresh and restores its rotation: the saved one on later
// visits, the metadata hint on the first.
func (s *Session) load(rec *Record) error {
	first := !rec.Loaded()
	s.owner = nil
	degrees, err := s.materialize(rec, 0)
	if err != nil {
		return err
	}
	if first {
		degrees = rec.MetadataRot
	}
	return s.ScaleAndRotate(rec, degrees)
}

// ScaleAndRotate rotates rec by degrees relative to its current rotation and
// scales it according to the scale mode. On failure the live raster and the
// record keep their previous state.
func (s *Session) ScaleAndRotate(rec *Record, degrees int) error {
	if rec == nil || s.ended {
		return ErrSessionEnded
	}
	debugf("ScaleAndRotate(%d (cur = %d))", degrees, rec.CurRot)

	degrees, err := s.materialize(rec, degrees)
	if err != nil {
		return err
	}

	plan, err := NewPlan(rec, degrees, s.input())
	if err != nil {
		log.Printf("Internal error: %v", err)
		s.prompter.Report(err.Error())
		return err
	}

	buf := s.buf
	if plan.Reload {
		debugf("Getting bigger, from %dx%d to %s, need to reload", rec.CurWidth, rec.CurHeight, plan.Target)
		fresh, err := s.decode(rec)
		if err != nil {
			return err
		}
		buf = fresh
		plan.Rebase(scale.Size{W: fresh.Width, H: fresh.Height})
	}

	if plan.RotateFirst {
		if buf, err = s.rotate(buf, plan.Degrees); err != nil {
			return err
		}
	}

	want := plan.ScaleSize()
	if want.W != buf.Width || want.H != buf.Height {
		scaled, err := pixbuf.Scale(buf, want.W, want.H, s.alloc)
		if err == nil && (scaled.Width < 1 || scaled.Height < 1) {
			err = fmt.Errorf("%w: scaled raster is %dx%d", pixbuf.ErrAllocation, scaled.Width, scaled.Height)
		}
		if err != nil {
			log.Printf("Error scaling to %s: %v", want, err)
			s.prompter.Report("Couldn't scale: probably out of memory")
			return err
		}
		buf = scaled
	}

	if !plan.RotateFirst {
		if buf, err = s.rotate(buf, plan.Degrees); err != nil {
			return err
		}
	}

	s.buf, s.owner = buf, rec
	rec.CurWidth, rec.CurHeight = buf.Width, buf.Height
	rec.TrueWidth, rec.TrueHeight = plan.True.W, plan.True.H
	rec.CurRot = plan.FinalRot()
	debugf("Now %dx%d (true %dx%d), rotation %d", rec.CurWidth, rec.CurHeight, rec.TrueWidth, rec.TrueHeight, rec.CurRot)

	s.sink.GeometryChanged(buf.Width, buf.Height)
	return nil
}

func (s *Session) rotate(buf *pixbuf.Buffer, degrees int) (*pixbuf.Buffer, error) {
	out, err := pixbuf.Rotate(buf, degrees, s.alloc)
	if err != nil {
		log.Printf("Error rotating by %d: %v", degrees, err)
		s.prompter.Report("Couldn't rotate: probably out of memory")
		return nil, err
	}
	return out, nil
}

// show hands the raster to the display and arms the slideshow.
func (s *Session) show() {
	if s.buf == nil {
		return
	}
	s.sink.Present(s.buf)
	s.slideshow.Arm(s.list.Len(), func() {
		if _, err := s.Next(); err != nil {
			debugf("Slideshow: %v", err)
		}
	})
}

// Refresh re-applies the scale policy to the current record and shows it.
func (s *Session) Refresh() error {
	return s.Rotate(0)
}

// Rotate turns the current record by degrees clockwise and shows it.
func (s *Session) Rotate(degrees int) error {
	rec := s.list.Current()
	if rec == nil {
		return nil
	}
	if err := s.ScaleAndRotate(rec, degrees); err != nil {
		return err
	}
	s.show()
	return nil
}

// SetMode switches the scale policy and refreshes the display.
func (s *Session) SetMode(m scale.Mode, ratio float64) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", scale.ErrInvalidMode, int(m))
	}
	s.Mode, s.Ratio = m, ratio
	return s.Refresh()
}

// ToggleFullScreen switches between FullScreen and Normal.
func (s *Session) ToggleFullScreen() error {
	if s.Mode == scale.FullScreen {
		return s.SetMode(scale.Normal, 1)
	}
	return s.SetMode(scale.FullScreen, 1)
}

// ToggleFullSize switches between FullSize and Normal.
func (s *Session) ToggleFullSize() error {
	if s.Mode == scale.FullSize {
		return s.SetMode(scale.Normal, 1)
	}
	return s.SetMode(scale.FullSize, 1)
}

func (s *Session) TogglePresentation() error {
	s.Presentation = !s.Presentation
	return s.Refresh()
}

// Zoom multiplies the display ratio by factor, first moving to the ratio mode
// closest to the current one.
func (s *Session) Zoom(factor float64) error {
	if factor <= 0 {
		return fmt.Errorf("zoom factor must be greater than zero, given %g", factor)
	}
	switch s.Mode {
	case scale.Normal:
		s.Mode = scale.ScreenRatio
	case scale.FullSize:
		s.Mode, s.Ratio = scale.ImageRatio, 1
	case scale.FullScreen:
		s.Mode, s.Ratio = scale.ImageRatio, 1
		if rec := s.list.Current(); rec != nil && rec.TrueWidth > 0 {
			s.Ratio = float64(rec.CurWidth) / float64(rec.TrueWidth)
		}
	}
	s.Ratio *= factor
	return s.Refresh()
}

// SetDelay changes the slideshow delay; zero stops the slideshow.
func (s *Session) SetDelay(seconds int) {
	s.slideshow.SetDelay(seconds)
	if seconds > 0 && s.buf != nil {
		s.show()
	}
}

func (s *Session) end() {
	s.ended = true
	s.buf, s.owner = nil, nil
	if s.onEnd != nil {
		s.onEnd()
	}
}
