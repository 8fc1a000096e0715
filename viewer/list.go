package viewer

const none = -1

// List is a circular doubly linked list of records. Records live in an arena
// and link to each other by index; the anchor is the first inserted record
// still present and the cursor is the current one.
type List struct {
	arena  []*Record
	anchor int
	cursor int
	count  int
}

func NewList(paths ...string) *List {
	l := &List{anchor: none, cursor: none}
	for _, p := range paths {
		l.Append(p)
	}
	return l
}

// Append adds a record at the end of the traversal order, just before the anchor.
func (l *List) Append(path string) *Record {
	r := &Record{Path: path, id: len(l.arena)}
	l.arena = append(l.arena, r)
	l.count++

	if l.anchor == none {
		l.anchor = r.id
		r.next, r.prev = r.id, r.id
		return r
	}
	first := l.arena[l.anchor]
	last := l.arena[first.prev]
	r.prev, r.next = last.id, first.id
	last.next = r.id
	first.prev = r.id
	return r
}

func (l *List) Len() int {
	return l.count
}

// Anchor returns the first record, or nil for an empty list.
func (l *List) Anchor() *Record {
	return l.at(l.anchor)
}

// Current returns the cursor record, or nil before the first advance.
func (l *List) Current() *Record {
	return l.at(l.cursor)
}

func (l *List) Next(r *Record) *Record {
	return l.at(r.next)
}

func (l *List) Prev(r *Record) *Record {
	return l.at(r.prev)
}

func (l *List) at(i int) *Record {
	if i == none || i >= len(l.arena) {
		return nil
	}
	return l.arena[i]
}

// Records returns the records in traversal order starting at the anchor.
func (l *List) Records() []*Record {
	out := make([]*Record, 0, l.count)
	if l.anchor == none {
		return out
	}
	r := l.arena[l.anchor]
	for {
		out = append(out, r)
		r = l.arena[r.next]
		if r.id == l.anchor {
			return out
		}
	}
}

// Rewind clears the cursor so the next StepNext lands on the anchor.
func (l *List) Rewind() {
	l.cursor = none
}

// seek puts the cursor back on r, or clears it when r is nil or no longer in
// the list.
func (l *List) seek(r *Record) {
	if r == nil || l.at(r.id) != r {
		l.cursor = none
		return
	}
	l.cursor = r.id
}

// StepNext moves the cursor forward without wrapping.
func (l *List) StepNext() (*Record, error) {
	if l.count == 0 {
		return nil, ErrSessionEnded
	}
	switch {
	case l.cursor == none:
		l.cursor = l.anchor
	case l.arena[l.cursor].next == l.anchor:
		return nil, ErrEndOfList
	default:
		l.cursor = l.arena[l.cursor].next
	}
	return l.arena[l.cursor], nil
}

// StepPrev moves the cursor backward without wrapping past the anchor. Before
// the first move it lands on the last record.
func (l *List) StepPrev() (*Record, error) {
	if l.count == 0 {
		return nil, ErrSessionEnded
	}
	switch {
	case l.cursor == none:
		l.cursor = l.arena[l.anchor].prev
	case l.cursor == l.anchor:
		return nil, ErrStartOfList
	default:
		l.cursor = l.arena[l.cursor].prev
	}
	return l.arena[l.cursor], nil
}

// Unlink removes r and moves the cursor to its neighbour. It returns false
// when the list is now empty.
func (l *List) Unlink(r *Record) bool {
	if l.at(r.id) != r {
		return l.count > 0
	}
	switch {
	case r.next == r.id:
		// sole record
		l.anchor, l.cursor = none, none

	case r.next == r.prev:
		// one record left afterwards
		survivor := l.arena[r.prev]
		survivor.next, survivor.prev = survivor.id, survivor.id
		l.anchor, l.cursor = survivor.id, survivor.id

	case r.next == l.anchor:
		// last in traversal order, step back
		cur := l.arena[r.prev]
		cur.next = l.anchor
		l.arena[l.anchor].prev = cur.id
		l.cursor = cur.id

	default:
		cur := l.arena[r.next]
		cur.prev = r.prev
		l.arena[r.prev].next = cur.id
		l.cursor = cur.id
		if r.id == l.anchor {
			l.anchor = cur.id
		}
	}

	l.arena[r.id] = nil
	r.release()
	l.count--
	return l.count > 0
}

// Clear drops every record.
func (l *List) Clear() {
	for _, r := range l.arena {
		if r != nil {
			r.release()
		}
	}
	l.arena = nil
	l.anchor, l.cursor = none, none
	l.count = 0
}
