package solver

import (
	"slices"
	"sync"
)

// ResultSet collects matched words from concurrent workers. Each word is
// stored once no matter how many candidates produced it.
type ResultSet struct {
	mu    sync.Mutex
	words map[string]struct{}
}

// NewResultSet returns an empty set.
func NewResultSet() *ResultSet {
	return &ResultSet{words: make(map[string]struct{})}
}

// Add inserts word unless it is already present and reports whether it was
// new. Membership check and insert happen under one lock.
func (rs *ResultSet) Add(word string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if _, ok := rs.words[word]; ok {
		return false
	}
	rs.words[word] = struct{}{}
	return true
}

// Contains reports whether word has been added.
func (rs *ResultSet) Contains(word string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	_, ok := rs.words[word]
	return ok
}

// Len returns the number of distinct words collected so far.
func (rs *ResultSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.words)
}

// Finalize returns the collected words sorted ascending and their count.
// The set itself is left untouched.
func (rs *ResultSet) Finalize() ([]string, int) {
	rs.mu.Lock()
	words := make([]string, 0, len(rs.words))
	for w := range rs.words {
		words = append(words, w)
	}
	rs.mu.Unlock()

	slices.Sort(words)
	return words, len(words)
}
