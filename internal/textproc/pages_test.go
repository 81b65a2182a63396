package textproc

import (
	"strings"
	"testing"
)

func TestSegment_NumericMarkersSplitPages(t *testing.T) {
	s := NewSegmenter()
	pages := s.Segment("Intro text\n1\nChapter One\n2\nChapter Two\n")

	want := []Page{
		{Page: 1, Text: "Intro text\n"},
		{Page: 2, Text: "Chapter One\n"},
		{Page: 3, Text: "Chapter Two\n"},
	}
	if len(pages) != len(want) {
		t.Fatalf("expected %d pages, got %d: %+v", len(want), len(pages), pages)
	}
	for i, w := range want {
		if pages[i] != w {
			t.Errorf("page[%d] = %+v, want %+v", i, pages[i], w)
		}
	}
}

func TestSegment_NoMarkersYieldsSinglePage(t *testing.T) {
	s := NewSegmenter()
	pages := s.Segment("Hello\nWorld\n")
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Page != 1 || pages[0].Text != "Hello\nWorld\n" {
		t.Errorf("unexpected page: %+v", pages[0])
	}
}

func TestSegment_EmptyInputStillYieldsOnePage(t *testing.T) {
	s := NewSegmenter()
	pages := s.Segment("")
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Page != 1 || pages[0].Text != "" {
		t.Errorf("unexpected page: %+v", pages[0])
	}
}

func TestSegment_MarkersOnlyYieldsOneEmptyPage(t *testing.T) {
	s := NewSegmenter()
	pages := s.Segment("1\n2\n3\n")
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Page != 1 || pages[0].Text != "" {
		t.Errorf("unexpected page: %+v", pages[0])
	}
}

func TestSegment_SequentialNumberingIgnoresMarkerValues(t *testing.T) {
	// OCR'd page labels are often wrong or out of order; output numbering
	// must stay 1..N regardless.
	s := NewSegmenter()
	pages := s.Segment("alpha\n17\nbeta\n3\ngamma\n")
	for i, p := range pages {
		if p.Page != i+1 {
			t.Errorf("page[%d].Page = %d, want %d", i, p.Page, i+1)
		}
	}
	if len(pages) != 3 {
		t.Errorf("expected 3 pages, got %d", len(pages))
	}
}

func TestSegment_PageBreakMarkersRenumber(t *testing.T) {
	s := NewSegmenter()
	raw := "First page\n" + PageBreak + "\n12\nSecond page\n"
	pages := s.Segment(raw)

	want := []Page{
		{Page: 1, Text: "First page\n"},
		{Page: 2, Text: "Second page\n"},
	}
	if len(pages) != len(want) {
		t.Fatalf("expected %d pages, got %d: %+v", len(want), len(pages), pages)
	}
	for i, w := range want {
		if pages[i] != w {
			t.Errorf("page[%d] = %+v, want %+v", i, pages[i], w)
		}
	}
}

func TestSegment_BlankDecoderSectionsSkipped(t *testing.T) {
	s := NewSegmenter()
	raw := "Alpha\n" + PageBreak + "\n" + PageBreak + "\nBeta\n"
	pages := s.Segment(raw)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d: %+v", len(pages), pages)
	}
	if pages[0].Text != "Alpha\n" || pages[1].Text != "Beta\n" {
		t.Errorf("unexpected pages: %+v", pages)
	}
}

func TestSegment_PreservesContentLineOrder(t *testing.T) {
	raw := "one\n1\ntwo\nthree\n2\nfour\n"
	s := NewSegmenter()
	pages := s.Segment(raw)

	var joined strings.Builder
	for _, p := range pages {
		joined.WriteString(p.Text)
	}
	want := "one\ntwo\nthree\nfour\n"
	if joined.String() != want {
		t.Errorf("concatenated pages = %q, want %q", joined.String(), want)
	}
}

// isolatedMarkerClassifier only treats numeric lines as boundaries when
// their neighbours are blank, i.e. footer-shaped markers.
type isolatedMarkerClassifier struct{}

func (isolatedMarkerClassifier) IsBoundary(line string, ctx LineContext) bool {
	return IsNumericOnly(line) && ctx.PrevBlank && ctx.NextBlank
}

func TestSegment_CustomClassifier(t *testing.T) {
	s := &Segmenter{Boundary: isolatedMarkerClassifier{}}

	// "12" is inline between content lines, so the stricter classifier keeps
	// the document whole; "3" sits between blank lines and splits it.
	raw := "alpha\n12\nbeta\n\n3\n\ngamma\n"
	pages := s.Segment(raw)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d: %+v", len(pages), pages)
	}
	// The inline numeric line is still cleaned out of the page text.
	if strings.Contains(pages[0].Text, "12") {
		t.Errorf("page 1 retained numeric line: %q", pages[0].Text)
	}
	if !strings.Contains(pages[0].Text, "beta") || !strings.Contains(pages[1].Text, "gamma") {
		t.Errorf("unexpected page split: %+v", pages)
	}
}
