package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/doctext/internal/chunker"
	"github.com/dgallion1/doctext/internal/decode"
)

func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	text, err := s.svc.TextFrom(bytes.NewReader(data), filename)
	if err != nil {
		s.extractError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"text": text})
}

func (s *Server) handleExtractPages(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	pages, err := s.svc.PagesFrom(bytes.NewReader(data), filename)
	if err != nil {
		s.extractError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

func (s *Server) handleExtractChunks(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	chunkSize, chunkOverlap := s.chunkParams(r)
	chunks, err := s.svc.ChunksFrom(bytes.NewReader(data), filename, chunkSize, chunkOverlap)
	if err != nil {
		s.extractError(w, err)
		return
	}
	if chunks == nil {
		chunks = []chunker.Chunk{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"chunks": chunks})
}

// readUpload reads the multipart "file" field, enforcing the upload size
// limit and supported extensions. It writes the error response itself when
// returning ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	// Limit total request size; extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !decode.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil, "", false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, "", false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, "", false
	}

	return data, filename, true
}

// chunkParams reads chunk sizing overrides from form or query values,
// falling back to the configured defaults. Values are passed through as-is
// so invalid combinations surface as chunker config errors.
func (s *Server) chunkParams(r *http.Request) (int, int) {
	chunkSize := s.cfg.DefaultChunkSize
	if v := formOrQuery(r, "chunk_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			chunkSize = n
		}
	}
	chunkOverlap := s.cfg.DefaultChunkOverlap
	if v := formOrQuery(r, "chunk_overlap"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			chunkOverlap = n
		}
	}
	return chunkSize, chunkOverlap
}

func formOrQuery(r *http.Request, key string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return r.URL.Query().Get(key)
}

// extractError maps pipeline failures to status codes: invalid chunk config
// is the client's request (400), a document that cannot be decoded is an
// unprocessable upload (422).
func (s *Server) extractError(w http.ResponseWriter, err error) {
	var cfgErr *chunker.ConfigError
	if errors.As(err, &cfgErr) {
		jsonError(w, cfgErr.Error(), http.StatusBadRequest)
		return
	}
	var decErr *decode.Error
	if errors.As(err, &decErr) {
		if errors.Is(err, decode.ErrUnsupported) {
			jsonError(w, decErr.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, decErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.log.Error("extraction failed", "error", err)
	jsonError(w, "extraction failed", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
