package viewer

import (
	"fmt"

	"github.com/samber/lo"
)

// MaxNotes is the number of note lists, bound to the digit keys.
const MaxNotes = 10

// ToggleNote flags or unflags the current record in note list n.
func (s *Session) ToggleNote(n int) error {
	if n < 0 || n >= MaxNotes {
		return fmt.Errorf("note list %d out of range", n)
	}
	rec := s.list.Current()
	if rec == nil {
		return ErrSessionEnded
	}
	rec.notes ^= 1 << uint(n)
	debugf("Note %d for %s: %v", n, rec.Path, rec.HasNote(n))
	return nil
}

// NoteLists returns, for every non-empty note list, the flagged paths in list
// order.
func (s *Session) NoteLists() map[int][]string {
	records := s.list.Records()
	out := map[int][]string{}
	for n := 0; n < MaxNotes; n++ {
		flagged := lo.Filter(records, func(r *Record, _ int) bool {
			return r.HasNote(n)
		})
		if len(flagged) == 0 {
			continue
		}
		out[n] = lo.Map(flagged, func(r *Record, _ int) string {
			return r.Path
		})
	}
	return out
}

// Annotate attaches text to the current record.
func (s *Session) Annotate(text string) error {
	rec := s.list.Current()
	if rec == nil {
		return ErrSessionEnded
	}
	rec.Annotation = text
	return nil
}
