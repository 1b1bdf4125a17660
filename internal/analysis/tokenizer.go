package analysis

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into maximal runs of word characters.
// Word characters are Unicode letters, Unicode numbers and the underscore;
// everything else separates tokens and is discarded. Lowercasing is the full
// Unicode mapping (see Lower), so "İ" yields "i" and a combining dot, which
// splits the word.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	text = Lower(text)

	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// Lower applies the full Unicode lowercase mapping: the simple per-rune
// mapping plus the two rules that differ from it, U+0130 expanding to
// "i\u0307" and capital sigma becoming final sigma at the end of a word.
func Lower(text string) string {
	if !strings.ContainsAny(text, "\u0130\u03a3") {
		return strings.ToLower(text)
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range runes {
		switch r {
		case '\u0130':
			b.WriteString("i\u0307")
		case '\u03a3':
			if isFinalSigma(runes, i) {
				b.WriteRune('\u03c2')
			} else {
				b.WriteRune('\u03c3')
			}
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// isFinalSigma reports whether the sigma at runes[i] is preceded by a cased
// letter and not followed by one, ignoring case-ignorable runes in between.
func isFinalSigma(runes []rune, i int) bool {
	before := false
	for j := i - 1; j >= 0; j-- {
		if isCaseIgnorable(runes[j]) {
			continue
		}
		before = isCased(runes[j])
		break
	}
	if !before {
		return false
	}
	for j := i + 1; j < len(runes); j++ {
		if isCaseIgnorable(runes[j]) {
			continue
		}
		return !isCased(runes[j])
	}
	return true
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

func isCaseIgnorable(r rune) bool {
	switch r {
	case '\'', '.', ':', '\u00b7', '\u00ad', '\u0387', '\u05f4', '\u2018', '\u2019',
		'\u2024', '\u2027', '\ufe13', '\ufe52', '\ufe55', '\uff07', '\uff0e', '\uff1a':
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf, unicode.Lm, unicode.Sk)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isSentenceTerminator reports whether r ends a sentence.
func isSentenceTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
