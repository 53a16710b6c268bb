package form

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// PDFMediaType is the only media type accepted by SelectFile.
const PDFMediaType = "application/pdf"

// File is a candidate resume.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// IsPDF reports whether the declared media type is exactly PDF.
func (f *File) IsPDF() bool {
	return f != nil && f.MediaType == PDFMediaType
}

// Size returns the file size in bytes.
func (f *File) Size() int {
	if f == nil {
		return 0
	}
	return len(f.Data)
}

// OpenFile reads a file from disk and sniffs its media type from the content.
func OpenFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume %q: %w", path, err)
	}

	return &File{
		Name:      filepath.Base(path),
		MediaType: mimetype.Detect(data).String(),
		Data:      data,
	}, nil
}
