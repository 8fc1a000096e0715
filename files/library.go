package files

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/nxshock/colorcrop"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/mozvip/gopho/pixbuf"
)

// EntrySeparator joins a container path and the name of an entry inside it.
const EntrySeparator = "::"

// ErrReadOnly is returned when deleting an image stored inside a container.
var ErrReadOnly = errors.New("images inside an archive cannot be deleted")

// Join builds the path of an entry inside a container.
func Join(archive, entry string) string {
	return archive + EntrySeparator + entry
}

// Split separates a container entry path. ok is false for plain files.
func Split(path string) (archive, entry string, ok bool) {
	i := strings.Index(path, EntrySeparator)
	if i < 0 || !IsArchive(path[:i]) {
		return path, "", false
	}
	return path[:i], path[i+len(EntrySeparator):], true
}

// Library decodes images from plain files and containers, keeping every
// container it had to open until Close.
type Library struct {
	// RemoveBorders trims uniform white borders after decoding.
	RemoveBorders bool
	Allocator     pixbuf.Allocator

	archives map[string]Archive
}

func NewLibrary() *Library {
	return &Library{archives: make(map[string]Archive)}
}

func (l *Library) archive(path string) (Archive, error) {
	if a, ok := l.archives[path]; ok {
		return a, nil
	}
	log.Printf("Opening archive %s", path)
	a, err := OpenArchive(path)
	if err != nil {
		return nil, err
	}
	if l.archives == nil {
		l.archives = make(map[string]Archive)
	}
	l.archives[path] = a
	return a, nil
}

// Image decodes path without converting it.
func (l *Library) Image(path string) (image.Image, error) {
	if name, entry, ok := Split(path); ok {
		a, err := l.archive(name)
		if err != nil {
			return nil, err
		}
		return a.ReadEntry(entry)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readImage(path, f)
}

// Decode reads path into a raster.
func (l *Library) Decode(path string) (*pixbuf.Buffer, error) {
	img, err := l.Image(path)
	if err != nil {
		return nil, err
	}
	if l.RemoveBorders {
		img = colorcrop.Crop(
			img,                            // for source image
			color.RGBA{255, 255, 255, 255}, // crop white border
			0.5)                            // with 50% thresold
	}
	return pixbuf.FromImage(img, l.Allocator)
}

// OrientationHint returns the clockwise rotation asked for by the EXIF
// orientation tag of path, 0 when there is none. Container entries carry no
// hint.
func (l *Library) OrientationHint(path string) int {
	if _, _, ok := Split(path); ok {
		return 0
	}
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	o, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return OrientationDegrees(o)
}

// OrientationDegrees maps an EXIF orientation value to a clockwise rotation.
// Mirrored orientations are not supported and map to 0.
func OrientationDegrees(orientation int) int {
	switch orientation {
	case 3:
		return 180
	case 6:
		return 90
	case 8:
		return 270
	}
	return 0
}

// Remove deletes a plain image file.
func (l *Library) Remove(path string) error {
	if _, _, ok := Split(path); ok {
		return fmt.Errorf("%w: %s", ErrReadOnly, path)
	}
	return os.Remove(path)
}

// Close closes every container opened so far.
func (l *Library) Close() error {
	var first error
	for path, a := range l.archives {
		if err := a.Close(); err != nil && first == nil {
			first = err
		}
		delete(l.archives, path)
	}
	return first
}
