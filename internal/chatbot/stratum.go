package chatbot

import (
	"strings"
	"unicode"
)

// numberWords maps the Spanish words for one to twenty to their digits.
var numberWords = map[string]string{
	"uno":        "1",
	"dos":        "2",
	"tres":       "3",
	"cuatro":     "4",
	"cinco":      "5",
	"seis":       "6",
	"siete":      "7",
	"ocho":       "8",
	"nueve":      "9",
	"diez":       "10",
	"once":       "11",
	"doce":       "12",
	"trece":      "13",
	"catorce":    "14",
	"quince":     "15",
	"dieciseis":  "16",
	"diecisiete": "17",
	"dieciocho":  "18",
	"diecinueve": "19",
	"veinte":     "20",
}

// ExtractStratum finds the stratum code in free text. A standalone run of
// digits always wins, even over a number word that appears before it. The
// digits are returned as written, without range checks. When there are no
// digits the first whitespace separated word found in the number word table
// is used. Words are lowercased but keep their accents, so "dieciséis" is
// not in the table.
func ExtractStratum(text string) (string, bool) {
	if digits, ok := firstStandaloneDigits(text); ok {
		return digits, true
	}

	for _, word := range strings.Fields(lower(text)) {
		if code, ok := numberWords[word]; ok {
			return code, true
		}
	}
	return "", false
}

// firstStandaloneDigits returns the first maximal run of decimal digits that
// has no word character directly before or after it.
func firstStandaloneDigits(text string) (string, bool) {
	runes := []rune(text)

	for i := 0; i < len(runes); {
		if !unicode.IsDigit(runes[i]) {
			i++
			continue
		}

		start := i
		for i < len(runes) && unicode.IsDigit(runes[i]) {
			i++
		}

		boundedBefore := start == 0 || !isWordRune(runes[start-1])
		boundedAfter := i == len(runes) || !isWordRune(runes[i])
		if boundedBefore && boundedAfter {
			return string(runes[start:i]), true
		}
	}
	return "", false
}
