package viewer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("img%02d.jpg", i)
	}
	return out
}

// checkRing verifies the circular doubly linked invariants.
func checkRing(t *testing.T, l *List) {
	t.Helper()
	records := l.Records()
	require.Len(t, records, l.Len())
	if l.Len() == 0 {
		assert.Nil(t, l.Anchor())
		return
	}
	for _, r := range records {
		assert.Same(t, r, l.Prev(l.Next(r)), "next.prev for %s", r.Path)
		assert.Same(t, r, l.Next(l.Prev(r)), "prev.next for %s", r.Path)
	}
	assert.Same(t, l.Anchor(), l.Next(l.Prev(l.Anchor())))
}

func TestListCycleCloses(t *testing.T) {
	for n := 1; n <= 6; n++ {
		l := NewList(paths(n)...)
		r := l.Anchor()
		for i := 0; i < n; i++ {
			r = l.Next(r)
		}
		assert.Same(t, l.Anchor(), r, "n=%d", n)
		checkRing(t, l)
	}
}

func TestListSingleRecordLinksToItself(t *testing.T) {
	l := NewList("only.png")
	r := l.Anchor()
	assert.Same(t, r, l.Next(r))
	assert.Same(t, r, l.Prev(r))
}

func TestStepNextStopsAtEnd(t *testing.T) {
	l := NewList(paths(3)...)
	for i := 0; i < 3; i++ {
		r, err := l.StepNext()
		require.NoError(t, err)
		assert.Equal(t, paths(3)[i], r.Path)
	}
	_, err := l.StepNext()
	assert.ErrorIs(t, err, ErrEndOfList)
	assert.Equal(t, "img02.jpg", l.Current().Path)
}

func TestStepPrevFromStartLandsOnLast(t *testing.T) {
	l := NewList(paths(3)...)
	r, err := l.StepPrev()
	require.NoError(t, err)
	assert.Equal(t, "img02.jpg", r.Path)

	r, err = l.StepPrev()
	require.NoError(t, err)
	assert.Equal(t, "img01.jpg", r.Path)

	r, err = l.StepPrev()
	require.NoError(t, err)
	assert.Equal(t, "img00.jpg", r.Path)

	_, err = l.StepPrev()
	assert.ErrorIs(t, err, ErrStartOfList)
}

func TestUnlinkKeepsRing(t *testing.T) {
	l := NewList(paths(3)...)
	_, err := l.StepNext()
	require.NoError(t, err)

	for k := 3; k >= 1; k-- {
		require.Equal(t, k, l.Len())
		more := l.Unlink(l.Current())
		assert.Equal(t, k-1, l.Len())
		assert.Equal(t, k > 1, more)
		checkRing(t, l)
		if more {
			assert.NotNil(t, l.Current())
		}
	}
	assert.Nil(t, l.Current())
	_, err = l.StepNext()
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestUnlinkInteriorMovesForward(t *testing.T) {
	l := NewList(paths(4)...)
	records := l.Records()
	l.Unlink(records[1])
	assert.Same(t, records[2], l.Current())
	assert.Same(t, records[0], l.Anchor())
	checkRing(t, l)
}

func TestUnlinkLastMovesBack(t *testing.T) {
	l := NewList(paths(4)...)
	records := l.Records()
	l.Unlink(records[3])
	assert.Same(t, records[2], l.Current())
	assert.Same(t, records[0], l.Next(records[2]))
	assert.Same(t, records[2], l.Prev(l.Anchor()))
	checkRing(t, l)
}

func TestUnlinkAnchorPromotesNext(t *testing.T) {
	l := NewList(paths(3)...)
	records := l.Records()
	l.Unlink(records[0])
	assert.Same(t, records[1], l.Anchor())
	assert.Same(t, records[1], l.Current())
	checkRing(t, l)
}

func TestUnlinkLeavingOneSelfLinks(t *testing.T) {
	l := NewList(paths(2)...)
	records := l.Records()
	l.Unlink(records[0])
	survivor := records[1]
	assert.Same(t, survivor, l.Anchor())
	assert.Same(t, survivor, l.Current())
	assert.Same(t, survivor, l.Next(survivor))
	assert.Same(t, survivor, l.Prev(survivor))
}

func TestUnlinkIgnoresForeignRecord(t *testing.T) {
	l := NewList(paths(2)...)
	other := NewList("elsewhere.png").Anchor()
	assert.True(t, l.Unlink(other))
	assert.Equal(t, 2, l.Len())
}

func TestClearReleasesRecords(t *testing.T) {
	l := NewList(paths(3)...)
	r := l.Anchor()
	r.Annotation = "sunset"
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, r.Annotation)
	assert.Nil(t, l.Current())
	assert.Empty(t, l.Records())
}
