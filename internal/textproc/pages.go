package textproc

import "strings"

// PageBreak is the marker page-aware decoders insert between page texts,
// always on a line of its own.
const PageBreak = "\f"

// Page is one segmented page of a document. Numbering is sequential from 1
// in document order; detected page labels are boundary signals only and are
// never echoed into the output numbering.
type Page struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Segmenter reconstructs page structure from decoded text. When the decoder
// already separated pages with PageBreak markers it degenerates to a
// renumbering pass; otherwise page boundaries are inferred from marker lines
// flagged by the boundary classifier.
type Segmenter struct {
	Boundary BoundaryClassifier
}

// NewSegmenter returns a segmenter using the numeric-only line heuristic.
func NewSegmenter() *Segmenter {
	return &Segmenter{Boundary: NumericLineClassifier{}}
}

// Segment splits raw decoded text into an ordered sequence of pages. It
// always succeeds: with no boundary signal anywhere the whole document
// becomes a single page numbered 1. Marker lines are never part of page
// text, and every emitted page is cleaned of numeric-only lines.
func (s *Segmenter) Segment(raw string) []Page {
	if sections := splitPageBreaks(raw); len(sections) > 1 {
		return renumber(sections, raw)
	}
	return s.segmentByMarkers(raw)
}

// renumber handles decoder-separated input: each section becomes one page,
// numbered in order, with blank sections dropped.
func renumber(sections []string, raw string) []Page {
	var pages []Page
	for _, section := range sections {
		text := Clean(section)
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, Page{Page: len(pages) + 1, Text: text})
	}
	if len(pages) == 0 {
		pages = []Page{{Page: 1, Text: Clean(Flatten(raw))}}
	}
	return pages
}

func (s *Segmenter) segmentByMarkers(raw string) []Page {
	lines := splitLines(raw)

	var pages []Page
	var buf strings.Builder

	closePage := func() {
		text := Clean(buf.String())
		buf.Reset()
		if strings.TrimSpace(text) == "" {
			return
		}
		pages = append(pages, Page{Page: len(pages) + 1, Text: text})
	}

	for i, ln := range lines {
		ctx := LineContext{
			Index:     i,
			PrevBlank: i == 0 || isBlank(lines[i-1].text),
			NextBlank: i == len(lines)-1 || isBlank(lines[i+1].text),
		}
		if s.Boundary.IsBoundary(ln.text, ctx) {
			closePage()
			continue
		}
		buf.WriteString(ln.text)
		buf.WriteString(ln.sep)
	}
	closePage()

	// No page survived: degrade to a single page holding whatever content
	// remains after cleanup (possibly none).
	if len(pages) == 0 {
		pages = []Page{{Page: 1, Text: Clean(raw)}}
	}
	return pages
}

// Flatten removes PageBreak marker lines, joining decoder-separated pages
// back into one continuous text stream.
func Flatten(raw string) string {
	if !strings.Contains(raw, PageBreak) {
		return raw
	}
	raw = strings.ReplaceAll(raw, PageBreak+"\n", "")
	return strings.ReplaceAll(raw, PageBreak, "")
}

// splitPageBreaks splits on PageBreak marker lines. A single section means
// the input carried no decoder page separation.
func splitPageBreaks(raw string) []string {
	if !strings.Contains(raw, PageBreak) {
		return []string{raw}
	}
	sections := strings.Split(raw, PageBreak)
	for i, section := range sections {
		// The marker sits on its own line; drop the newline it owned.
		sections[i] = strings.TrimPrefix(section, "\n")
	}
	return sections
}

type lineSpan struct {
	text string
	sep  string
}

// splitLines splits raw text into lines, preserving each line's separator so
// page text can be rebuilt byte-for-byte.
func splitLines(raw string) []lineSpan {
	var lines []lineSpan
	for start := 0; start < len(raw); {
		line := raw[start:]
		sep := ""
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
			sep = "\n"
			if strings.HasSuffix(line, "\r") {
				line = line[:len(line)-1]
				sep = "\r\n"
			}
		}
		start += len(line) + len(sep)
		lines = append(lines, lineSpan{text: line, sep: sep})
	}
	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
