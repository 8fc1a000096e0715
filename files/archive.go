// Package files reads images from disk and from comic book style containers
// (cbz/zip, cbr/rar, pdf), and turns command line arguments into image paths.
package files

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Archive is a read-only container of images.
type Archive interface {
	Close() error
	List() ([]string, error)
	ReadEntry(name string) (image.Image, error)
	Init() error
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}

// IsImage reports whether name has a known image extension.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsArchive reports whether name looks like a supported container.
func IsArchive(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".cbz", ".zip", ".cbr", ".rar", ".pdf":
		return true
	}
	return false
}

func readImage(name string, reader io.Reader) (image.Image, error) {
	if strings.HasSuffix(strings.ToLower(name), "webp") {
		return webp.Decode(reader)
	}
	img, _, err := image.Decode(reader)
	return img, err
}

// OpenArchive opens and indexes the container at fileName.
func OpenArchive(fileName string) (Archive, error) {
	var a Archive
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		a = &pdfArchive{fileName: fileName}
	case ".cbz", ".zip":
		a = &zipArchive{fileName: fileName}
	case ".cbr", ".rar":
		a = &rarArchive{fileName: fileName}
	default:
		return nil, fmt.Errorf("unable to determine type of archive for file %s", fileName)
	}
	if err := a.Init(); err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return a, nil
}
