package chatbot

import (
	"unicode"
)

// Tokenize lowercases text and splits it into word tokens and punctuation
// tokens. Whitespace only separates.
func Tokenize(text string) []string {
	var tokens []string
	word := make([]rune, 0, 16)

	flush := func() {
		if len(word) > 0 {
			tokens = append(tokens, string(word))
			word = word[:0]
		}
	}

	for _, r := range lower(text) {
		switch {
		case isWordRune(r) || unicode.Is(unicode.Mn, r):
			word = append(word, r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}
