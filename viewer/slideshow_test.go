package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slideshowHarness(t *testing.T, n int) *harness {
	t.Helper()
	sizes := map[string][2]int{}
	for _, p := range paths(n) {
		sizes[p] = [2]int{4, 3}
	}
	h := newHarness(t, sizes, paths(n))
	h.session.slideshow = NewSlideshow(2, h.sched)
	return h
}

func TestSlideshowAdvances(t *testing.T) {
	h := slideshowHarness(t, 3)
	_, err := h.session.Next()
	require.NoError(t, err)
	assert.True(t, h.session.Slideshow().Pending())
	assert.Equal(t, 1, h.sched.Len())

	h.clock.Advance(time.Second)
	assert.Equal(t, 0, h.sched.Poll())
	assert.Equal(t, "img00.jpg", h.session.Current().Path)

	h.clock.Advance(time.Second)
	assert.Equal(t, 1, h.sched.Poll())
	assert.Equal(t, "img01.jpg", h.session.Current().Path)
	assert.True(t, h.session.Slideshow().Pending(), "showing the next image arms again")

	h.clock.Advance(2 * time.Second)
	h.sched.Poll()
	assert.Equal(t, "img02.jpg", h.session.Current().Path)

	// the last image does not wrap around
	h.clock.Advance(2 * time.Second)
	h.sched.Poll()
	assert.Equal(t, "img02.jpg", h.session.Current().Path)
	assert.False(t, h.session.Slideshow().Pending())
	assert.Equal(t, 0, h.sched.Len())
}

func TestSlideshowZeroDelayMakesFireANoop(t *testing.T) {
	h := slideshowHarness(t, 3)
	_, err := h.session.Next()
	require.NoError(t, err)

	h.session.SetDelay(0)
	h.clock.Advance(2 * time.Second)
	assert.Equal(t, 1, h.sched.Poll())
	assert.Equal(t, "img00.jpg", h.session.Current().Path)
	assert.False(t, h.session.Slideshow().Pending())
	assert.Equal(t, 0, h.sched.Len())

	h.session.SetDelay(3)
	assert.True(t, h.session.Slideshow().Pending())
	h.clock.Advance(3 * time.Second)
	h.sched.Poll()
	assert.Equal(t, "img01.jpg", h.session.Current().Path)
}

func TestSlideshowManualNextKeepsPendingAdvance(t *testing.T) {
	h := slideshowHarness(t, 3)
	_, err := h.session.Next()
	require.NoError(t, err)

	h.clock.Advance(time.Second)
	_, err = h.session.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, h.sched.Len(), "a pending advance is not armed twice")

	h.clock.Advance(time.Second)
	h.sched.Poll()
	assert.Equal(t, "img02.jpg", h.session.Current().Path)
}

func TestSlideshowNeedsMoreThanOneImage(t *testing.T) {
	h := slideshowHarness(t, 1)
	_, err := h.session.Next()
	require.NoError(t, err)
	assert.False(t, h.session.Slideshow().Pending())
	assert.Equal(t, 0, h.sched.Len())
}

func TestSlideshowOffWithoutScheduler(t *testing.T) {
	s := NewSlideshow(-4, nil)
	assert.Equal(t, 0, s.Delay())
	s.SetDelay(5)
	assert.False(t, s.Arm(3, func() { t.Fatal("advanced without a scheduler") }))
}

func TestTickSchedulerRunsDueCallbacks(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	sched := NewTickScheduler(clock.Now)
	var ran []string
	sched.AfterFunc(2*time.Second, func() { ran = append(ran, "late") })
	sched.AfterFunc(time.Second, func() { ran = append(ran, "early") })
	assert.Equal(t, 2, sched.Len())

	assert.Equal(t, 0, sched.Poll())
	clock.Advance(time.Second)
	assert.Equal(t, 1, sched.Poll())
	assert.Equal(t, []string{"early"}, ran)
	assert.Equal(t, 1, sched.Len())

	clock.Advance(time.Hour)
	assert.Equal(t, 1, sched.Poll())
	assert.Equal(t, []string{"early", "late"}, ran)
	assert.Equal(t, 0, sched.Len())
}
