package layout

import (
	"strings"
	"unicode/utf8"
)

// Approx estimates Helvetica widths from an average glyph of half an em.
type Approx struct{}

const ptToMM = 25.4 / 72

// Width implements Measurer.
func (Approx) Width(text string, font Font) float64 {
	em := font.Size * ptToMM
	factor := 0.5
	if font.Bold {
		factor = 0.55
	}
	return float64(utf8.RuneCountInString(text)) * em * factor
}

// Wrap breaks text into lines no wider than width. Words are kept whole
// unless a single word is wider than the line, in which case it is split by
// rune. The result always has at least one line.
func Wrap(text string, width float64, font Font, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.Width(candidate, font) <= width {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		for m.Width(word, font) > width {
			head, rest := splitWord(word, width, font, m)
			lines = append(lines, head)
			word = rest
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitWord returns the longest prefix of word that fits, at least one rune.
func splitWord(word string, width float64, font Font, m Measurer) (string, string) {
	cut := 0
	for i, r := range word {
		next := i + utf8.RuneLen(r)
		if cut > 0 && m.Width(word[:next], font) > width {
			break
		}
		cut = next
	}
	return word[:cut], word[cut:]
}
