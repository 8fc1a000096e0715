package viewer

import "time"

// Scheduler runs f once after d has elapsed, on the control thread.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Slideshow advances to the next image after a delay. At most one advance is
// pending at a time. Manual navigation does not cancel a pending advance;
// setting the delay to zero turns it into a no-op when it fires.
type Slideshow struct {
	delay   int
	pending bool
	sched   Scheduler
}

func NewSlideshow(delaySeconds int, sched Scheduler) *Slideshow {
	s := &Slideshow{sched: sched}
	s.SetDelay(delaySeconds)
	return s
}

// SetDelay sets the delay in seconds; zero cancels.
func (s *Slideshow) SetDelay(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	s.delay = seconds
}

func (s *Slideshow) Delay() int {
	return s.delay
}

func (s *Slideshow) Pending() bool {
	return s.pending
}

// Arm schedules advance unless the slideshow is off, already pending, or there
// is nothing to advance to.
func (s *Slideshow) Arm(count int, advance func()) bool {
	if s.sched == nil || s.delay <= 0 || s.pending || count <= 1 {
		return false
	}
	d := time.Duration(s.delay) * time.Second
	debugf("Adding timeout for %d msec", d.Milliseconds())
	s.pending = true
	s.sched.AfterFunc(d, func() {
		s.pending = false
		if s.delay == 0 {
			return
		}
		debugf("-- Timer fired")
		advance()
	})
	return true
}

type tick struct {
	at time.Time
	f  func()
}

// TickScheduler is a Scheduler polled from the host event loop, so callbacks
// run on the same thread as every other operation.
type TickScheduler struct {
	now    func() time.Time
	timers []tick
}

func NewTickScheduler(now func() time.Time) *TickScheduler {
	if now == nil {
		now = time.Now
	}
	return &TickScheduler{now: now}
}

func (t *TickScheduler) AfterFunc(d time.Duration, f func()) {
	t.timers = append(t.timers, tick{at: t.now().Add(d), f: f})
}

// Poll runs every callback that is due and returns how many ran.
func (t *TickScheduler) Poll() int {
	now := t.now()
	var due []tick
	keep := t.timers[:0]
	for _, tk := range t.timers {
		if tk.at.After(now) {
			keep = append(keep, tk)
		} else {
			due = append(due, tk)
		}
	}
	t.timers = keep
	for _, tk := range due {
		tk.f()
	}
	return len(due)
}

// Len returns the number of callbacks still waiting.
func (t *TickScheduler) Len() int {
	return len(t.timers)
}
