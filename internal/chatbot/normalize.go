package chatbot

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// lower lowercases s with Spanish casing rules. A Caser keeps state, so one is
// built per call.
func lower(s string) string {
	return cases.Lower(language.Spanish).String(s)
}

// foldAccents removes combining marks: "dieciséis" becomes "dieciseis".
// Only Mn marks are removed, so "ñ" decomposes and loses its tilde too.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
