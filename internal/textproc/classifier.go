package textproc

import (
	"strings"
	"unicode"
)

// LineContext describes where a line sits relative to its neighbours, for
// classifiers that want positional signals.
type LineContext struct {
	Index     int  // 0-based line position in the document
	PrevBlank bool // preceding line is blank, or the line is first
	NextBlank bool // following line is blank, or the line is last
}

// BoundaryClassifier decides whether a line is a page-boundary marker
// rather than content. Implementations must be deterministic and free of
// side effects so the segmenter can call them concurrently across requests.
type BoundaryClassifier interface {
	IsBoundary(line string, ctx LineContext) bool
}

// NumericLineClassifier treats any numeric-only line as a boundary marker,
// regardless of position. This matches the typical page-footer artifact left
// behind by PDF text extraction.
type NumericLineClassifier struct{}

func (NumericLineClassifier) IsBoundary(line string, _ LineContext) bool {
	return IsNumericOnly(line)
}

// IsNumericOnly reports whether a line consists solely of decimal digits
// after trimming surrounding whitespace. An all-whitespace line is blank,
// not numeric. Punctuated page labels like "- 12 -" are content; callers
// wanting to tolerate them can supply their own BoundaryClassifier.
func IsNumericOnly(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
