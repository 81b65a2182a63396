package decode

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Decoder turns one document into a single raw text blob. Page-aware
// decoders join page texts with a form-feed marker line (textproc.PageBreak)
// so downstream segmentation can keep the decoder's page separation.
type Decoder interface {
	Decode(r io.Reader) (string, error)
}

// ErrUnsupported is returned for file extensions no decoder handles.
var ErrUnsupported = errors.New("unsupported file extension")

// Error wraps a decode failure with the path it originated from.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
	".csv":      true,
}

// ForFile returns the appropriate decoder for a filename.
func ForFile(filename string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return &PDFDecoder{}, nil
	case ".txt":
		return &TextDecoder{}, nil
	case ".md", ".markdown":
		return &MarkdownDecoder{}, nil
	case ".html", ".htm":
		return &HTMLDecoder{}, nil
	case ".docx":
		return &DOCXDecoder{}, nil
	case ".csv":
		return &CSVDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

