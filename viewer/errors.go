package viewer

import (
	"errors"
	"fmt"
	"log"
)

var (
	// ErrEndOfList is returned when advancing past the last record.
	ErrEndOfList = errors.New("end of image list")
	// ErrStartOfList is returned when retreating past the first record.
	ErrStartOfList = errors.New("start of image list")
	// ErrSessionEnded is returned once the list has no records left.
	ErrSessionEnded = errors.New("no images left")
)

// DecodeError reports an image that could not be read.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("can't open %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DeleteError reports a file that could not be removed from disk.
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("can't delete %s: %v", e.Path, e.Err)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}

// Debug turns on tracing of navigation and transforms.
var Debug bool

func debugf(format string, args ...interface{}) {
	if Debug {
		log.Printf(format, args...)
	}
}
