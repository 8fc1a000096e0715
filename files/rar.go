package files

import (
	"fmt"
	"image"
	"io"

	"github.com/nwaples/rardecode"
	"github.com/samber/lo"
)

// rarArchive reads entries sequentially, reopening the archive when an
// entry at or before the current position is asked for.
type rarArchive struct {
	fileName string
	contents []string
	archive  *rardecode.ReadCloser
	header   *rardecode.FileHeader
	// consumed is set once the data of header has been read.
	consumed bool
}

func (z *rarArchive) Close() error {
	if z.archive == nil {
		return nil
	}
	return z.archive.Close()
}

func (z *rarArchive) List() ([]string, error) {
	return z.contents, nil
}

func (z *rarArchive) reload() error {
	if z.archive != nil {
		z.archive.Close()
	}
	z.header, z.consumed = nil, false

	var err error
	z.archive, err = rardecode.OpenReader(z.fileName, "")
	if err != nil {
		return err
	}
	z.header, err = z.archive.Next()
	return err
}

// behind reports whether reaching name needs the archive to be reopened.
func (z *rarArchive) behind(name string) bool {
	if z.header == nil {
		return true
	}
	if z.header.Name == name {
		return z.consumed
	}
	return lo.IndexOf(z.contents, name) < lo.IndexOf(z.contents, z.header.Name)
}

func (z *rarArchive) ReadEntry(name string) (image.Image, error) {
	if !lo.Contains(z.contents, name) {
		return nil, fmt.Errorf("file %s was not found in archive", name)
	}
	if z.behind(name) {
		if err := z.reload(); err != nil {
			return nil, err
		}
	}

	var err error
	for {
		if z.header.Name == name && !z.header.IsDir {
			z.consumed = true
			return readImage(name, z.archive)
		}
		z.header, err = z.archive.Next()
		z.consumed = false
		if err == io.EOF {
			z.header = nil
			return nil, fmt.Errorf("file %s was not found in archive", name)
		}
		if err != nil {
			z.header = nil
			return nil, err
		}
	}
}

func (z *rarArchive) Init() error {
	archive, err := rardecode.OpenReader(z.fileName, "")
	if err != nil {
		return err
	}
	defer archive.Close()

	for {
		header, err := archive.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if header.IsDir {
			continue
		}
		z.contents = append(z.contents, header.Name)
	}

	return z.reload()
}
