package chatbot

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLexicon(t *testing.T) *YAMLLexicon {
	t.Helper()
	lexicon, err := DefaultLexicon()
	require.NoError(t, err)
	return lexicon
}

func TestDefaultLexicon(t *testing.T) {
	lexicon := defaultLexicon(t)
	assert.Greater(t, lexicon.Len(), 10)

	synsets, err := lexicon.Synsets("estrato")
	require.NoError(t, err)
	assert.Len(t, synsets, 2)

	_, err = lexicon.Synsets("hola")
	assert.ErrorIs(t, err, ErrWordNotFound)
}

func TestSynonyms(t *testing.T) {
	lexicon := defaultLexicon(t)

	t.Run("collects lemmas across every synset", func(t *testing.T) {
		synonyms := Synonyms(lexicon, "estrato")
		assert.True(t, synonyms.Contains("estrato"))
		assert.True(t, synonyms.Contains("nivel"))
		assert.True(t, synonyms.Contains("capa"))
	})

	t.Run("matches without accents", func(t *testing.T) {
		synonyms := Synonyms(lexicon, "Infraccion")
		assert.True(t, synonyms.Contains("infracción"))
		assert.True(t, synonyms.Contains("falta"))
	})

	t.Run("unknown words yield an empty set", func(t *testing.T) {
		assert.Empty(t, Synonyms(lexicon, "hola"))
	})

	t.Run("nil lexicon yields an empty set", func(t *testing.T) {
		assert.Empty(t, Synonyms(nil, "multa"))
	})

	t.Run("backend errors are swallowed", func(t *testing.T) {
		failing := &countingLexicon{err: errors.New("backend unavailable")}
		assert.Empty(t, Synonyms(failing, "multa"))
	})
}

func TestExpandQuery(t *testing.T) {
	expanded := ExpandQuery(defaultLexicon(t), Tokenize("multas del estrato 3"))

	assert.True(t, expanded.Contains("multas"))
	assert.True(t, expanded.Contains("3"))
	assert.True(t, expanded.Contains("nivel"))
	assert.False(t, expanded.Contains("sanción"), "lookup is exact, plural forms have no synsets")
	assert.Equal(t, "3", expanded.Sorted()[0])
}

func TestParseLexicon(t *testing.T) {
	lexicon, err := ParseLexicon([]byte("synsets:\n  - id: a\n    lemmas: [Salario Mínimo, sueldo]\n"))
	require.NoError(t, err)

	synonyms := Synonyms(lexicon, "sueldo")
	assert.True(t, synonyms.Contains("salario_mínimo"))

	_, err = ParseLexicon([]byte("synsets:\n  - id: empty\n"))
	assert.Error(t, err)

	_, err = ParseLexicon([]byte("synsets: [:"))
	assert.Error(t, err)
}

func TestLoadLexiconFile(t *testing.T) {
	_, err := LoadLexiconFile("missing.yaml")
	assert.Error(t, err)

	lexicon, err := LoadLexiconFile("lexicon_es.yaml")
	require.NoError(t, err)
	assert.Equal(t, defaultLexicon(t).Len(), lexicon.Len())
}

type countingLexicon struct {
	calls   int
	synsets []Synset
	err     error
}

func (c *countingLexicon) Synsets(word string) ([]Synset, error) {
	c.calls++
	return c.synsets, c.err
}

func TestCachedLexicon(t *testing.T) {
	t.Run("memoises hits", func(t *testing.T) {
		backend := &countingLexicon{synsets: []Synset{{ID: "x", Lemmas: []string{"multa"}}}}
		cached := NewCachedLexicon(backend, time.Minute)

		for i := 0; i < 3; i++ {
			synsets, err := cached.Synsets("multa")
			require.NoError(t, err)
			assert.Len(t, synsets, 1)
		}
		assert.Equal(t, 1, backend.calls)
		assert.Equal(t, 1, cached.ItemCount())
	})

	t.Run("memoises misses", func(t *testing.T) {
		backend := &countingLexicon{err: ErrWordNotFound}
		cached := NewCachedLexicon(backend, 0)

		_, err := cached.Synsets("hola")
		assert.ErrorIs(t, err, ErrWordNotFound)
		_, err = cached.Synsets("hola")
		assert.ErrorIs(t, err, ErrWordNotFound)
		assert.Equal(t, 1, backend.calls)
	})

	t.Run("does not memoise backend failures", func(t *testing.T) {
		backend := &countingLexicon{err: errors.New("timeout")}
		cached := NewCachedLexicon(backend, time.Minute)

		_, _ = cached.Synsets("multa")
		_, _ = cached.Synsets("multa")
		assert.Equal(t, 2, backend.calls)
		assert.Equal(t, 0, cached.ItemCount())
	})
}
