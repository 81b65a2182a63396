package chunker

import "unicode"

// Boundary strengths, weakest to strongest. A boundary's position is the
// byte offset where a new semantic unit starts.
const (
	strengthWord = iota + 1
	strengthSentence
	strengthParagraph
)

type boundary struct {
	pos      int
	strength int
}

// scanBoundaries walks the text once and records every unit start: word
// boundaries at whitespace runs, sentence boundaries after terminal
// punctuation, paragraph boundaries after blank lines.
func scanBoundaries(text string) []boundary {
	var bounds []boundary

	inSpace := false
	newlines := 0
	var prevNonSpace rune

	for i, r := range text {
		if unicode.IsSpace(r) {
			inSpace = true
			if r == '\n' {
				newlines++
			}
			continue
		}
		if inSpace {
			strength := strengthWord
			switch {
			case newlines >= 2:
				strength = strengthParagraph
			case isSentenceEnd(prevNonSpace):
				strength = strengthSentence
			}
			bounds = append(bounds, boundary{pos: i, strength: strength})
			inSpace = false
			newlines = 0
		}
		prevNonSpace = r
	}

	return bounds
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?':
		return true
	}
	return false
}
