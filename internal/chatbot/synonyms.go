package chatbot

import (
	"sort"
	"strings"
)

// WordSet is an unordered set of words.
type WordSet map[string]struct{}

func (s WordSet) Add(words ...string) {
	for _, w := range words {
		s[w] = struct{}{}
	}
}

func (s WordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Sorted returns the words in lexical order.
func (s WordSet) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Synonyms returns every lemma, lowercased, of every synset of word. Lookup
// failures yield an empty set.
func Synonyms(lexicon Lexicon, word string) WordSet {
	set := WordSet{}
	if lexicon == nil {
		return set
	}

	synsets, err := lexicon.Synsets(word)
	if err != nil {
		return set
	}
	for _, synset := range synsets {
		for _, lemma := range synset.Lemmas {
			set.Add(strings.ReplaceAll(lower(strings.TrimSpace(lemma)), " ", "_"))
		}
	}
	return set
}

// ExpandQuery returns the tokens plus the synonyms of each token.
func ExpandQuery(lexicon Lexicon, tokens []string) WordSet {
	expanded := WordSet{}
	expanded.Add(tokens...)
	for _, token := range tokens {
		for synonym := range Synonyms(lexicon, token) {
			expanded.Add(synonym)
		}
	}
	return expanded
}
