package files

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// pdfArchive exposes the first image of every page as an entry named
// "Page NNN".
type pdfArchive struct {
	fileName  string
	f         *os.File
	pages     []string
	pdfReader *model.PdfReader
}

func (p *pdfArchive) Close() error {
	if p.f == nil {
		return nil
	}
	return p.f.Close()
}

func (p *pdfArchive) List() ([]string, error) {
	return p.pages, nil
}

func (p *pdfArchive) ReadEntry(name string) (image.Image, error) {
	var index int
	if _, err := fmt.Sscanf(name, "Page %d", &index); err != nil {
		return nil, fmt.Errorf("file %s was not found in archive", name)
	}

	page, err := p.pdfReader.GetPage(index)
	if err != nil {
		return nil, err
	}
	pextract, err := extractor.New(page)
	if err != nil {
		return nil, err
	}
	pimages, err := pextract.ExtractPageImages(nil)
	if err != nil {
		return nil, err
	}
	if len(pimages.Images) == 0 {
		return nil, fmt.Errorf("page %d has no image", index)
	}
	return pimages.Images[0].Image.ToGoImage()
}

func (p *pdfArchive) Init() (err error) {
	p.f, err = os.Open(p.fileName)
	if err != nil {
		return err
	}

	p.pdfReader, err = model.NewPdfReader(p.f)
	if err != nil {
		return err
	}

	isEncrypted, err := p.pdfReader.IsEncrypted()
	if err != nil {
		return err
	}

	// Try decrypting with an empty one.
	if isEncrypted {
		auth, err := p.pdfReader.Decrypt([]byte(""))
		if err != nil {
			return err
		}
		if !auth {
			return errors.New("PDF file is encrypted")
		}
	}

	numPages, err := p.pdfReader.GetNumPages()
	if err != nil {
		return err
	}
	for i := 0; i < numPages; i++ {
		p.pages = append(p.pages, fmt.Sprintf("Page %03d", i+1))
	}
	return nil
}
