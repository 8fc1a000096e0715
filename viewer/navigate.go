package viewer

import (
	"errors"
	"fmt"
	"log"
)

// Next advances to the following record, skipping any that cannot be decoded.
// It returns ErrEndOfList instead of wrapping around.
func (s *Session) Next() (*Record, error) {
	debugf("================= Next ====================")
	return s.walk(s.list.StepNext)
}

// Prev goes back to the previous record, skipping any that cannot be decoded.
// Called before any Next it shows the last record.
func (s *Session) Prev() (*Record, error) {
	debugf("================= Prev ====================")
	return s.walk(s.list.StepPrev)
}

// First goes back to the first record.
func (s *Session) First() (*Record, error) {
	s.list.Rewind()
	return s.Next()
}

// walk steps until a record loads. Records that cannot be decoded are
// skipped; if the list runs out first the cursor goes back to the record on
// display. Other load failures still show the record and are returned with it.
func (s *Session) walk(step func() (*Record, error)) (*Record, error) {
	if s.ended {
		return nil, ErrSessionEnded
	}
	start, owner := s.list.Current(), s.owner
	for {
		rec, err := step()
		if err != nil {
			if s.list.Current() != start {
				s.list.seek(start)
				s.owner = owner
			}
			return nil, err
		}
		if err := s.load(rec); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				log.Println(err)
				continue
			}
			s.show()
			return rec, err
		}
		s.show()
		return rec, nil
	}
}

// This shows the current record again after the list changed under it. If it
// cannot be decoded the session moves on to the next one.
func (s *Session) This() (*Record, error) {
	rec := s.list.Current()
	if rec == nil {
		return s.Next()
	}
	if err := s.load(rec); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			log.Println(err)
			return s.Next()
		}
		s.show()
		return rec, err
	}
	s.show()
	return rec, nil
}

// Remove deletes rec from disk and from the list, then shows the record that
// took its place. When the list runs empty the session ends and
// ErrSessionEnded is returned.
func (s *Session) Remove(rec *Record) error {
	if s.ended {
		return ErrSessionEnded
	}
	if err := s.remover.Remove(rec.Path); err != nil {
		derr := &DeleteError{Path: rec.Path, Err: err}
		log.Printf("OOPS! %v", derr)
		s.prompter.Report(derr.Error())
		return derr
	}
	log.Printf("Deleted %s", rec.Path)

	if s.owner == rec {
		s.owner = nil
	}
	if !s.list.Unlink(rec) {
		s.end()
		return ErrSessionEnded
	}
	_, err := s.This()
	return err
}

// Delete asks for confirmation and removes the current record.
func (s *Session) Delete() {
	rec := s.list.Current()
	if rec == nil || s.ended {
		return
	}
	s.prompter.Confirm(fmt.Sprintf("Delete file %s?", rec.Path), "dD\n", "nN", func(ok bool) {
		if !ok {
			return
		}
		if err := s.Remove(rec); err != nil {
			debugf("Delete: %v", err)
		}
	})
}

// Replace drops the working set and starts over with paths.
func (s *Session) Replace(paths []string) (*Record, error) {
	s.list.Clear()
	s.buf, s.owner = nil, nil
	for _, p := range paths {
		s.list.Append(p)
	}
	if s.list.Len() == 0 {
		s.end()
		return nil, ErrSessionEnded
	}
	s.ended = false
	return s.Next()
}
