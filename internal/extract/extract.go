// Package extract composes decoding, cleanup, page segmentation, and
// chunking into the three public document operations.
package extract

import (
	"io"
	"os"

	"github.com/dgallion1/doctext/internal/chunker"
	"github.com/dgallion1/doctext/internal/decode"
	"github.com/dgallion1/doctext/internal/textproc"
)

// Service runs the extraction pipeline. It is stateless: every call decodes,
// processes, and returns with no shared mutable state, so one Service can
// serve concurrent requests without coordination.
type Service struct {
	Segmenter            *textproc.Segmenter
	PDFFallbackPdftotext bool
}

// NewService returns a Service with the default numeric-marker segmenter.
func NewService() *Service {
	return &Service{Segmenter: textproc.NewSegmenter()}
}

// Text decodes the document at path and returns its full text with
// numeric-only lines removed.
func (s *Service) Text(path string) (string, error) {
	raw, err := s.decodeFile(path)
	if err != nil {
		return "", err
	}
	return textproc.Clean(textproc.Flatten(raw)), nil
}

// Pages decodes the document at path and returns its text segmented into
// sequentially numbered pages.
func (s *Service) Pages(path string) ([]textproc.Page, error) {
	raw, err := s.decodeFile(path)
	if err != nil {
		return nil, err
	}
	return s.Segmenter.Segment(raw), nil
}

// Chunks decodes the document at path, cleans it, and splits the result into
// overlapping chunks. Invalid chunk configuration fails before any decoding
// side effects matter; decode failures carry the path.
func (s *Service) Chunks(path string, chunkSize, chunkOverlap int) ([]chunker.Chunk, error) {
	cfg := chunker.Config{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	raw, err := s.decodeFile(path)
	if err != nil {
		return nil, err
	}
	return chunker.Split(textproc.Clean(textproc.Flatten(raw)), cfg)
}

// TextFrom is Text for in-memory documents; filename selects the decoder.
func (s *Service) TextFrom(r io.Reader, filename string) (string, error) {
	raw, err := s.decodeReader(r, filename)
	if err != nil {
		return "", err
	}
	return textproc.Clean(textproc.Flatten(raw)), nil
}

// PagesFrom is Pages for in-memory documents.
func (s *Service) PagesFrom(r io.Reader, filename string) ([]textproc.Page, error) {
	raw, err := s.decodeReader(r, filename)
	if err != nil {
		return nil, err
	}
	return s.Segmenter.Segment(raw), nil
}

// ChunksFrom is Chunks for in-memory documents.
func (s *Service) ChunksFrom(r io.Reader, filename string, chunkSize, chunkOverlap int) ([]chunker.Chunk, error) {
	cfg := chunker.Config{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	raw, err := s.decodeReader(r, filename)
	if err != nil {
		return nil, err
	}
	return chunker.Split(textproc.Clean(textproc.Flatten(raw)), cfg)
}

func (s *Service) decodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &decode.Error{Path: path, Err: err}
	}
	defer f.Close()
	return s.decodeReader(f, path)
}

func (s *Service) decodeReader(r io.Reader, filename string) (string, error) {
	dec, err := decode.ForFile(filename)
	if err != nil {
		return "", &decode.Error{Path: filename, Err: err}
	}
	if pdfDec, ok := dec.(*decode.PDFDecoder); ok {
		pdfDec.FallbackPdftotext = s.PDFFallbackPdftotext
	}
	text, err := dec.Decode(r)
	if err != nil {
		return "", &decode.Error{Path: filename, Err: err}
	}
	return text, nil
}
