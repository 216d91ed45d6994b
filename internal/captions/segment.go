// Package captions turns narration text and a measured audio duration into a
// time-aligned caption track and serializes it as SRT.
package captions

import (
	"strings"
	"unicode/utf8"
)

// Sentence is one sentence-like span of the narration text.
type Sentence struct {
	Text    string
	CharLen int
}

// sentence-final punctuation, including full-width variants
var terminators = map[rune]bool{
	'.': true,
	'!': true,
	'?': true,
	'。': true,
	'！': true,
	'？': true,
}

// Segment splits narration text into ordered sentence spans. Terminating
// punctuation stays attached to the preceding sentence. It never returns an
// empty slice: text without a boundary becomes a single sentence, and
// empty or whitespace-only input falls back to the original text unmodified
// so downstream proportional allocation stays defined.
func Segment(text string) []Sentence {
	normalized := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)

	var sentences []Sentence
	var b strings.Builder
	for _, r := range normalized {
		b.WriteRune(r)
		if terminators[r] {
			if s, ok := newSentence(b.String()); ok {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s, ok := newSentence(b.String()); ok {
		sentences = append(sentences, s)
	}

	if len(sentences) == 0 {
		return []Sentence{{Text: text, CharLen: max(utf8.RuneCountInString(text), 1)}}
	}
	return sentences
}

func newSentence(raw string) (Sentence, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Sentence{}, false
	}
	return Sentence{Text: trimmed, CharLen: utf8.RuneCountInString(trimmed)}, true
}
