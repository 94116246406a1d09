package chatbot

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"
)

//go:embed lexicon_es.yaml
var defaultLexiconYAML []byte

// ErrWordNotFound is returned by a Lexicon that has no synset for a word.
var ErrWordNotFound = errors.New("word not found in lexicon")

// Synset is a set of synonymous word senses. Lemmas are the word forms that
// belong to it.
type Synset struct {
	ID     string   `yaml:"id"`
	Lemmas []string `yaml:"lemmas"`
}

// Lexicon looks up the synsets a word belongs to.
type Lexicon interface {
	Synsets(word string) ([]Synset, error)
}

// YAMLLexicon is a Lexicon read from a YAML synset file.
type YAMLLexicon struct {
	synsets []Synset
	index   map[string][]int
}

// DefaultLexicon returns the Spanish lexicon bundled with the binary.
func DefaultLexicon() (*YAMLLexicon, error) {
	return ParseLexicon(defaultLexiconYAML)
}

// LoadLexiconFile reads a YAML synset file from disk.
func LoadLexiconFile(path string) (*YAMLLexicon, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading lexicon file: %w", err)
	}
	lexicon, err := ParseLexicon(b)
	if err != nil {
		return nil, fmt.Errorf("error parsing lexicon file %s: %w", path, err)
	}
	return lexicon, nil
}

// ParseLexicon decodes a YAML document with a top level "synsets" list.
func ParseLexicon(b []byte) (*YAMLLexicon, error) {
	var doc struct {
		Synsets []Synset `yaml:"synsets"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	lexicon := &YAMLLexicon{
		synsets: doc.Synsets,
		index:   make(map[string][]int),
	}
	for i, synset := range doc.Synsets {
		if len(synset.Lemmas) == 0 {
			return nil, fmt.Errorf("synset %q has no lemmas", synset.ID)
		}
		for _, lemma := range synset.Lemmas {
			for _, key := range lookupKeys(lemma) {
				lexicon.index[key] = appendUnique(lexicon.index[key], i)
			}
		}
	}
	return lexicon, nil
}

// Synsets matches word case-insensitively, with and without accents.
func (l *YAMLLexicon) Synsets(word string) ([]Synset, error) {
	var positions []int
	for _, key := range lookupKeys(word) {
		for _, i := range l.index[key] {
			positions = appendUnique(positions, i)
		}
	}
	if len(positions) == 0 {
		return nil, ErrWordNotFound
	}

	synsets := make([]Synset, 0, len(positions))
	for _, i := range positions {
		synsets = append(synsets, l.synsets[i])
	}
	return synsets, nil
}

// Len returns the number of synsets.
func (l *YAMLLexicon) Len() int {
	return len(l.synsets)
}

func lookupKeys(word string) []string {
	key := strings.ReplaceAll(lower(strings.TrimSpace(word)), " ", "_")
	if key == "" {
		return nil
	}
	folded := foldAccents(key)
	if folded == key {
		return []string{key}
	}
	return []string{key, folded}
}

func appendUnique(list []int, v int) []int {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// CachedLexicon memoises the lookups of another Lexicon, misses included.
type CachedLexicon struct {
	next  Lexicon
	cache *gocache.Cache
}

type cachedLookup struct {
	synsets []Synset
	err     error
}

// NewCachedLexicon caches lookups on next for ttl.
func NewCachedLexicon(next Lexicon, ttl time.Duration) *CachedLexicon {
	cleanup := 2 * ttl
	if ttl <= 0 {
		ttl = gocache.NoExpiration
		cleanup = 0
	}
	return &CachedLexicon{
		next:  next,
		cache: gocache.New(ttl, cleanup),
	}
}

func (c *CachedLexicon) Synsets(word string) ([]Synset, error) {
	if v, found := c.cache.Get(word); found {
		hit := v.(cachedLookup)
		return hit.synsets, hit.err
	}

	synsets, err := c.next.Synsets(word)
	// Backend failures other than a plain miss are not cached.
	if err == nil || errors.Is(err, ErrWordNotFound) {
		c.cache.SetDefault(word, cachedLookup{synsets: synsets, err: err})
	}
	return synsets, err
}

// ItemCount reports how many words are cached.
func (c *CachedLexicon) ItemCount() int {
	return c.cache.ItemCount()
}
