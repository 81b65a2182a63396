package chunker

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Chunk is one overlapping text segment, sized for embedding-model context
// windows. IDs are sequential from 0 in emission order.
type Chunk struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Config controls chunk sizing. Sizes are measured in runes.
type Config struct {
	ChunkSize    int // Target chunk size; advisory, never truncates inside a semantic unit.
	ChunkOverlap int // Runes of the previous chunk repeated at the next chunk's head.
}

// DefaultConfig returns sensible defaults for embedding pipelines.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
	}
}

var (
	// ErrZeroSize is returned when the chunk size is zero or negative.
	ErrZeroSize = errors.New("chunk size must be greater than zero")
	// ErrOverlapTooLarge is returned when the overlap is not smaller than
	// the chunk size.
	ErrOverlapTooLarge = errors.New("chunk overlap must be smaller than chunk size")
)

// ConfigError reports an invalid chunk configuration. It wraps one of the
// sentinel errors above for errors.Is checks.
type ConfigError struct {
	ChunkSize    int
	ChunkOverlap int
	reason       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid chunk config (chunk_size=%d, chunk_overlap=%d): %v",
		e.ChunkSize, e.ChunkOverlap, e.reason)
}

func (e *ConfigError) Unwrap() error { return e.reason }

// Validate checks the chunk configuration without processing any text, so
// callers can fail fast before decoding.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return &ConfigError{ChunkSize: c.ChunkSize, ChunkOverlap: c.ChunkOverlap, reason: ErrZeroSize}
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return &ConfigError{ChunkSize: c.ChunkSize, ChunkOverlap: c.ChunkOverlap, reason: ErrOverlapTooLarge}
	}
	return nil
}

// Split partitions text into overlapping chunks. Split points are ranked by
// semantic strength (paragraph break > sentence end > word boundary) and each
// chunk greedily accumulates units of the strongest rank that still fits the
// size budget. A single unit longer than the budget is emitted whole rather
// than truncated. Configuration is validated before any processing; a valid
// configuration never fails, with empty text yielding zero chunks.
func Split(text string, cfg Config) ([]Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	bounds := scanBoundaries(text)

	var chunks []Chunk
	start := skipSpace(text, 0)
	for start < len(text) {
		end := cutAt(text, bounds, start, cfg.ChunkSize)
		segment := strings.TrimRightFunc(text[start:end], unicode.IsSpace)
		if segment != "" {
			chunks = append(chunks, Chunk{ID: len(chunks), Text: segment})
		}
		if end >= len(text) {
			break
		}
		start = overlapStart(text, bounds, start, end, cfg.ChunkOverlap)
	}
	return chunks, nil
}

// cutAt picks the end of the chunk starting at start: the latest boundary of
// the strongest rank whose segment still fits the budget. When not even the
// first unit fits, that unit is emitted whole.
func cutAt(text string, bounds []boundary, start, size int) int {
	if fits(text, start, len(text), size) {
		return len(text)
	}

	bestPos, bestStrength := -1, 0
	firstAfter := len(text)
	for _, b := range bounds {
		if b.pos <= start {
			continue
		}
		if b.pos < firstAfter {
			firstAfter = b.pos
		}
		if !fits(text, start, b.pos, size) {
			continue
		}
		if b.strength > bestStrength || (b.strength == bestStrength && b.pos > bestPos) {
			bestPos, bestStrength = b.pos, b.strength
		}
	}
	if bestPos > start {
		return bestPos
	}
	// The very first unit overflows the budget on its own.
	return firstAfter
}

// overlapStart picks where the next chunk begins: the earliest boundary
// inside the closed chunk whose trailing text is at most overlap runes, so
// up to overlap runes reappear at the next chunk's head without splitting a
// unit. The result is always past the previous chunk's start, keeping the
// walk through the text monotonic; when no boundary qualifies the chunks
// simply do not overlap.
func overlapStart(text string, bounds []boundary, start, end, overlap int) int {
	if overlap <= 0 {
		return end
	}
	for _, b := range bounds {
		if b.pos <= start || b.pos >= end {
			continue
		}
		tail := strings.TrimRightFunc(text[b.pos:end], unicode.IsSpace)
		if utf8.RuneCountInString(tail) <= overlap {
			return b.pos
		}
	}
	return end
}

func fits(text string, start, end, size int) bool {
	segment := strings.TrimRightFunc(text[start:end], unicode.IsSpace)
	return utf8.RuneCountInString(segment) <= size
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}
