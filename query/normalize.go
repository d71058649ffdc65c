// Package query provides bilingual (Latin/Arabic) text normalization,
// tokenization, synonym expansion, and coarse query classification for
// the catalog search engine.
package query

import (
	"strings"
	"unicode"

	"github.com/dalil-app/dalil"
)

// minTokenLength is the shortest token worth indexing. Single characters
// carry no signal in either script.
const minTokenLength = 2

// Normalize lower-cases text, filters it to Latin letters, digits, and
// Arabic letters, and collapses whitespace. Arabic text is additionally
// folded: diacritics are stripped and common letter variants unified so
// that orthographic variation does not defeat matching.
func Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	lastSpace := true
	for _, r := range strings.ToLower(text) {
		r = foldArabic(r)
		switch {
		case r == -1:
			// stripped diacritic
		case isWordRune(r):
			sb.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				sb.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimSpace(sb.String())
}

// Tokenize normalizes text and splits it into tokens longer than one
// character.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// TokenSet returns the distinct tokens of text.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// DetectLanguage guesses the language of text by script: Arabic wins when
// it has more letters than the Latin script, English otherwise.
func DetectLanguage(text string) dalil.Language {
	var latin, arabic int
	for _, r := range text {
		switch {
		case isArabicLetter(r):
			arabic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}
	if arabic > latin {
		return dalil.LanguageArabic
	}
	return dalil.LanguageEnglish
}

// isWordRune reports whether r belongs in normalized output.
func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= '0' && r <= '9' ||
		isArabicLetter(r)
}

// isArabicLetter reports whether r is a letter in the Arabic block.
func isArabicLetter(r rune) bool {
	return r >= 0x0621 && r <= 0x064A ||
		r >= 0x0671 && r <= 0x06D3 // extended letters (e.g. Persian-origin)
}

// foldArabic unifies Arabic letter variants and marks diacritics for
// removal (returned as -1). Non-Arabic runes pass through unchanged.
func foldArabic(r rune) rune {
	switch r {
	case 0x0622, 0x0623, 0x0625: // آ أ إ -> ا
		return 0x0627
	case 0x0629: // ة -> ه
		return 0x0647
	case 0x0649: // ى -> ي
		return 0x064A
	}
	if r >= 0x064B && r <= 0x0652 { // tashkeel
		return -1
	}
	if r == 0x0640 { // tatweel
		return -1
	}
	return r
}
