package virtual

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/clipperhouse/uax29/v2/words"
	"github.com/mj1618/a11y-conform/internal/platform"
)

// splitGraphemes splits s into extended grapheme clusters, so "\r\n" and
// combining sequences are a single character.
func splitGraphemes(s string) []string {
	var out []string
	seg := graphemes.FromString(s)
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

var (
	lineBreaks      = map[string]bool{"\r\n": true, "\n": true, "\r": true, "\v": true, "\f": true, "\u0085": true, "\u2028": true, "\u2029": true}
	paragraphBreaks = map[string]bool{"\r\n": true, "\n": true, "\r": true, "\u0085": true, "\u2029": true}
)

func isSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// unitBoundaries computes the sorted boundary positions of every text unit.
// Positions are grapheme indices; every list starts at 0 and ends at len(chars).
func unitBoundaries(chars []string) [platform.NumTextUnits][]int {
	n := len(chars)
	var b [platform.NumTextUnits][]int

	b[platform.UnitCharacter] = make([]int, n+1)
	for i := range b[platform.UnitCharacter] {
		b[platform.UnitCharacter][i] = i
	}
	b[platform.UnitWord] = wordBoundaries(chars)
	b[platform.UnitLine] = breakBoundaries(chars, lineBreaks)
	b[platform.UnitParagraph] = breakBoundaries(chars, paragraphBreaks)
	if n == 0 {
		b[platform.UnitDocument] = []int{0}
	} else {
		b[platform.UnitDocument] = []int{0, n}
	}
	return b
}

func breakBoundaries(chars []string, breaks map[string]bool) []int {
	out := []int{0}
	for i, c := range chars {
		if breaks[c] && i+1 < len(chars) {
			out = append(out, i+1)
		}
	}
	if len(chars) > 0 {
		out = append(out, len(chars))
	}
	return out
}

// wordBoundaries uses UAX #29 word segmentation and attaches trailing
// whitespace (including line breaks) to the preceding word.
func wordBoundaries(chars []string) []int {
	if len(chars) == 0 {
		return []int{0}
	}
	// byte offset -> grapheme index
	index := make(map[int]int, len(chars)+1)
	offset := 0
	for i, c := range chars {
		index[offset] = i
		offset += len(c)
	}
	index[offset] = len(chars)

	text := strings.Join(chars, "")
	out := []int{0}
	offset = 0
	seenWord := false
	tokens := words.FromString(text)
	for tokens.Next() {
		tok := tokens.Value()
		start := offset
		offset += len(tok)
		if isSpace(tok) && seenWord {
			continue
		}
		seenWord = true
		if pos, ok := index[start]; ok && pos > 0 && pos != out[len(out)-1] {
			out = append(out, pos)
		}
	}
	if out[len(out)-1] != len(chars) {
		out = append(out, len(chars))
	}
	return out
}
