package viewer

import (
	"log"
	"os"

	"github.com/mozvip/gopho/pixbuf"
)

type noMetadata struct{}

func (noMetadata) OrientationHint(string) int { return 0 }

func removeFile(path string) error {
	return os.Remove(path)
}

// logPrompter declines every question, so nothing is deleted without a user
// interface to confirm it.
type logPrompter struct{}

func (logPrompter) Confirm(message, _, _ string, answer func(bool)) {
	log.Printf("%s (no prompt available, answering no)", message)
	answer(false)
}

func (logPrompter) Report(message string) {
	log.Println(message)
}

type nopSink struct {
	s *Session
}

func (nopSink) Present(*pixbuf.Buffer) {}
func (nopSink) GeometryChanged(int, int) {}

func (n nopSink) SurfaceSize() (int, int) {
	return n.s.Monitor.W, n.s.Monitor.H
}
