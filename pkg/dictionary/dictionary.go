/*
Package dictionary loads word lists and serves read-only membership tests.

A Dictionary is a sorted, deduplicated slice of lowercase words. Membership
is a binary search over that slice, so a single Dictionary can be shared by
any number of goroutines without locking. A patricia trie over the same
words is built on first use to answer prefix queries, which lets callers
abandon letter orderings that no word starts with.

# Formats

Three on-disk formats are understood (see DetectFileFormat):

	words.txt          one word per line, any case
	dict_0001.bin ...  chunked binary files (int32 count, then len/word/rank entries)
	words.msgpack      a msgpack array of strings

Text is the canonical source; the other two exist so that large lists can
be shipped pre-normalised. WriteMsgpack and WriteChunk convert between them.
*/
package dictionary

import (
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

var (
	// ErrEmptyDictionary is returned when a source yields no usable words.
	ErrEmptyDictionary = errors.New("dictionary contains no words")
	// ErrUnknownFormat is returned when a path matches no supported format.
	ErrUnknownFormat = errors.New("unknown dictionary format")
)

// Dictionary is an immutable sorted word list.
type Dictionary struct {
	words []string

	indexOnce sync.Once
	index     *patricia.Trie
}

// New builds a Dictionary from words. Entries are trimmed and lowercased,
// empty ones dropped, and the rest sorted ascending with duplicates removed.
// The input slice is not modified.
func New(words []string) *Dictionary {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			normalized = append(normalized, w)
		}
	}
	return fromSorted(normalized)
}

// fromSorted takes ownership of words, which must already be normalised.
func fromSorted(words []string) *Dictionary {
	if !slices.IsSorted(words) {
		slices.Sort(words)
	}
	words = slices.Compact(words)
	return &Dictionary{words: slices.Clip(words)}
}

// Contains reports whether word is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	i := sort.SearchStrings(d.words, word)
	return i < len(d.words) && d.words[i] == word
}

// HasPrefix reports whether any word starts with prefix. The empty prefix
// matches any non-empty dictionary.
func (d *Dictionary) HasPrefix(prefix string) bool {
	return d.HasPrefixBytes([]byte(prefix))
}

// HasPrefixBytes is HasPrefix for a byte slice. prefix is only read.
func (d *Dictionary) HasPrefixBytes(prefix []byte) bool {
	if len(prefix) == 0 {
		return len(d.words) > 0
	}
	d.indexOnce.Do(d.buildIndex)
	return d.index.MatchSubtree(patricia.Prefix(prefix))
}

func (d *Dictionary) buildIndex() {
	trie := patricia.NewTrie()
	for i, w := range d.words {
		trie.Insert(patricia.Prefix(w), i)
	}
	d.index = trie
	log.Debugf("Prefix index built over %d words", len(d.words))
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Words returns a copy of the sorted word list.
func (d *Dictionary) Words() []string {
	return slices.Clone(d.words)
}
