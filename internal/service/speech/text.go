package speech

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// markdown emphasis, headings and code fences read aloud as symbols
	markupPattern     = regexp.MustCompile("[*_#`]+")
	whitespacePattern = regexp.MustCompile(`[ \t]+`)
)

// prepareSpeechText strips markdown markers and squeezes runs of spaces
func prepareSpeechText(text string) string {
	text = markupPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// splitForSpeech breaks text into chunks of at most limit characters,
// preferring sentence boundaries, then word boundaries.
func splitForSpeech(text string, limit int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
		currentLen = 0
	}

	for _, sentence := range sentences(text) {
		for _, piece := range fitPieces(sentence, limit) {
			n := utf8.RuneCountInString(piece)
			if currentLen+n > limit {
				flush()
			}
			current.WriteString(piece)
			currentLen += n
		}
	}
	flush()

	return chunks
}

// sentences splits after terminal punctuation or a newline, keeping the
// trailing whitespace with the sentence it follows.
func sentences(text string) []string {
	var out []string
	start := 0
	ended := false

	for i, r := range text {
		if ended && !unicode.IsSpace(r) {
			out = append(out, text[start:i])
			start = i
			ended = false
		}
		switch r {
		case '.', '!', '?', '\n':
			ended = true
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// fitPieces splits a sentence longer than limit at spaces,
// and hard-splits any single word longer than limit.
func fitPieces(sentence string, limit int) []string {
	if utf8.RuneCountInString(sentence) <= limit {
		return []string{sentence}
	}

	var out []string
	for _, word := range strings.SplitAfter(sentence, " ") {
		runes := []rune(word)
		for len(runes) > limit {
			out = append(out, string(runes[:limit]))
			runes = runes[limit:]
		}
		if len(runes) > 0 {
			out = append(out, string(runes))
		}
	}
	return out
}
