package files

import (
	"archive/zip"
	"fmt"
	"image"
)

type zipArchive struct {
	fileName string
	zip      *zip.ReadCloser
}

func (z *zipArchive) Close() error {
	if z.zip == nil {
		return nil
	}
	return z.zip.Close()
}

func (z *zipArchive) ReadEntry(name string) (image.Image, error) {
	for _, f := range z.zip.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return readImage(name, rc)
		}
	}
	return nil, fmt.Errorf("file %s was not found in archive", name)
}

func (z *zipArchive) Init() (err error) {
	z.zip, err = zip.OpenReader(z.fileName)
	return err
}

func (z *zipArchive) List() ([]string, error) {
	result := make([]string, 0, len(z.zip.File))
	for _, f := range z.zip.File {
		if f.FileInfo().IsDir() {
			continue
		}
		result = append(result, f.Name)
	}
	return result, nil
}
