package solver

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sortedWords is the smallest Lookup: a sorted slice searched in place.
type sortedWords []string

func newSortedWords(words ...string) sortedWords {
	w := slices.Clone(words)
	slices.Sort(w)
	return sortedWords(w)
}

func (s sortedWords) Contains(word string) bool {
	i := sort.SearchStrings(s, word)
	return i < len(s) && s[i] == word
}

// prefixWords adds HasPrefix so the stream matcher prunes.
type prefixWords struct {
	sortedWords
}

func (p prefixWords) HasPrefix(prefix string) bool {
	i := sort.SearchStrings(p.sortedWords, prefix)
	return i < len(p.sortedWords) && strings.HasPrefix(p.sortedWords[i], prefix)
}

// bytePrefixWords answers prefix questions only through HasPrefixBytes.
type bytePrefixWords struct {
	prefixWords
	calls atomic.Int64
}

func (b *bytePrefixWords) HasPrefix(string) bool {
	panic("HasPrefix called instead of HasPrefixBytes")
}

func (b *bytePrefixWords) HasPrefixBytes(prefix []byte) bool {
	b.calls.Add(1)
	return b.prefixWords.HasPrefix(string(prefix))
}

// countingLookup records how many membership tests were made.
type countingLookup struct {
	Lookup
	calls atomic.Int64
}

func (c *countingLookup) Contains(word string) bool {
	c.calls.Add(1)
	return c.Lookup.Contains(word)
}

var sampleWords = newSortedWords(
	"a", "aa", "ab", "act", "at", "ate", "ba", "bat", "cat", "east", "eat",
	"eats", "eta", "sat", "sate", "sea", "seat", "set", "tac", "tae", "tas",
	"tea", "teas", "teat", "tat", "test", "treat", "tsetse", "zzz",
)

func TestSolveScenarios(t *testing.T) {
	tests := []struct {
		name    string
		letters string
		dict    sortedWords
		want    []string
	}{
		{
			name:    "all orderings of cat",
			letters: "cat",
			dict:    newSortedWords("at", "cat", "act", "tac"),
			want:    []string{"act", "at", "cat", "tac"},
		},
		{
			name:    "repeated letters and single letter word",
			letters: "aab",
			dict:    newSortedWords("a", "aa", "ab", "ba"),
			want:    []string{"aa", "ab", "ba"},
		},
		{
			name:    "upper case input is normalised",
			letters: "  CAT ",
			dict:    newSortedWords("act"),
			want:    []string{"act"},
		},
		{
			name:    "letter used at most as often as given",
			letters: "tea",
			dict:    newSortedWords("tat", "tea", "eat", "ate", "teat"),
			want:    []string{"ate", "eat", "tea"},
		},
		{
			name:    "no hits",
			letters: "xyz",
			dict:    newSortedWords("cat"),
			want:    []string{},
		},
	}

	for _, tt := range tests {
		for _, mode := range []Mode{ModePool, ModeStream} {
			t.Run(tt.name+"/"+mode.String(), func(t *testing.T) {
				s := New(tt.dict, WithMode(mode), WithWorkers(4))
				res, err := s.Solve(context.Background(), tt.letters)
				require.NoError(t, err)
				assert.Equal(t, tt.want, res.Words)
				assert.Equal(t, len(tt.want), res.Count)
				assert.Equal(t, mode, res.Mode)
			})
		}
	}
}

func TestSolveLongSequenceEmptyDictionary(t *testing.T) {
	if testing.Short() {
		t.Skip("walks ~10 million candidates")
	}
	lookup := &countingLookup{Lookup: newSortedWords()}
	s := New(lookup)

	res, err := s.Solve(context.Background(), "abcdefghij")
	require.NoError(t, err)
	assert.Empty(t, res.Words)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, uint64(9864090), res.Candidates)
	assert.Equal(t, ModeStream, res.Mode)
	assert.Equal(t, int64(res.Candidates), lookup.calls.Load())
}

func TestSolveRejectsInvalidInput(t *testing.T) {
	s := New(sampleWords)
	for _, raw := range []string{"", "ab", "abcdefghijk", "ab3", "a-b", "héllo"} {
		_, err := s.Solve(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidSequence, "input %q", raw)
	}

	wide := New(sampleWords, WithSequenceBounds(2, 10))
	_, err := wide.Solve(context.Background(), "ab")
	assert.NoError(t, err)
}

func TestStreamPrefersBytePrefixLookup(t *testing.T) {
	dict := &bytePrefixWords{prefixWords: prefixWords{sampleWords}}
	streamed, err := MatchSubsets(context.Background(), GenerateSubsets("treats"), dict, 3)
	require.NoError(t, err)
	pool, err := MatchAll(context.Background(), BuildCandidates("treats"), sampleWords, 3)
	require.NoError(t, err)

	want, _ := pool.Finalize()
	got, _ := streamed.Finalize()
	assert.Equal(t, want, got)
	assert.Positive(t, dict.calls.Load())
}

func TestSequenceBoundsCapped(t *testing.T) {
	s := New(sampleWords, WithSequenceBounds(2, 22), WithMode(ModePool))
	minLen, maxLen := s.SequenceBounds()
	assert.Equal(t, 2, minLen)
	assert.Equal(t, DefaultMaxLetters, maxLen)

	var err error
	assert.NotPanics(t, func() {
		_, err = s.Solve(context.Background(), "abcdefghijklmnopqrstuv")
	})
	assert.ErrorIs(t, err, ErrInvalidSequence)
}

func TestSolveMinWordLen(t *testing.T) {
	s := New(sampleWords, WithMinWordLen(3), WithMode(ModePool))
	res, err := s.Solve(context.Background(), "seat")
	require.NoError(t, err)
	assert.Equal(t, []string{"ate", "east", "eat", "eats", "eta", "sat", "sate", "sea", "seat", "set", "tae", "tas", "tea", "teas"}, res.Words)
	for _, w := range res.Words {
		assert.GreaterOrEqual(t, len(w), 3)
	}

	clamped := New(sampleWords, WithMinWordLen(0))
	assert.Equal(t, MinSubsetLen, clamped.minWordLen)
}

func TestSolveIsIdempotent(t *testing.T) {
	s := New(sampleWords, WithWorkers(8))
	first, err := s.Solve(context.Background(), "treats")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := s.Solve(context.Background(), "treats")
		require.NoError(t, err)
		assert.Equal(t, first.Words, again.Words)
		assert.Equal(t, first.Count, again.Count)
	}
}

func TestStreamMatchesPool(t *testing.T) {
	dict := prefixWords{sampleWords}
	for _, letters := range []string{"cat", "aab", "seat", "treats", "tsetse", "abcdefg", "zzzaa"} {
		t.Run(letters, func(t *testing.T) {
			pool, err := MatchAll(context.Background(), BuildCandidates(letters), dict, 3)
			require.NoError(t, err)
			streamed, err := MatchSubsets(context.Background(), GenerateSubsets(letters), dict, 3)
			require.NoError(t, err)
			plain, err := MatchSubsets(context.Background(), GenerateSubsets(letters), dict.sortedWords, 3)
			require.NoError(t, err)

			want, _ := pool.Finalize()
			got, _ := streamed.Finalize()
			unpruned, _ := plain.Finalize()
			assert.Equal(t, want, got)
			assert.Equal(t, want, unpruned)
		})
	}
}

func TestResultsAreDictionaryAndCandidateSubsets(t *testing.T) {
	for _, letters := range []string{"seat", "treats", "aab"} {
		candidates := BuildCandidates(letters)
		res, err := MatchAll(context.Background(), candidates, sampleWords, 4)
		require.NoError(t, err)

		words, count := res.Finalize()
		assert.Len(t, words, count)
		for _, w := range words {
			assert.True(t, sampleWords.Contains(w), "%q not in dictionary", w)
			assert.Contains(t, candidates, w)
			assert.GreaterOrEqual(t, len(w), 2)
		}
	}
}

func TestMatchAllDuplicateCandidates(t *testing.T) {
	candidates := make([]string, 0, 50*100)
	for i := 0; i < 50; i++ {
		candidates = append(candidates, "cat")
		for j := 0; j < 99; j++ {
			candidates = append(candidates, "zzq")
		}
	}
	res, err := MatchAll(context.Background(), candidates, newSortedWords("cat"), 16)
	require.NoError(t, err)

	words, count := res.Finalize()
	assert.Equal(t, []string{"cat"}, words)
	assert.Equal(t, 1, count)
}

func TestMatchAllSkipsMalformedCandidates(t *testing.T) {
	res, err := MatchAll(context.Background(), []string{"CAT", "c at", "", "cat!", "cat"}, newSortedWords("cat"), 2)
	require.NoError(t, err)
	words, _ := res.Finalize()
	assert.Equal(t, []string{"cat"}, words)
}

func TestMatchAllEmptyPool(t *testing.T) {
	res, err := MatchAll(context.Background(), nil, sampleWords, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Len())
}

func TestMatchAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MatchAll(ctx, BuildCandidates("abcdef"), sampleWords, 2)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = MatchSubsets(ctx, GenerateSubsets("abcdef"), sampleWords, 2)
	assert.ErrorIs(t, err, context.Canceled)

	s := New(sampleWords)
	_, err = s.Solve(ctx, "abcdef")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultSetConcurrentAdd(t *testing.T) {
	rs := NewResultSet()
	words := []string{"alpha", "beta", "gamma", "delta"}

	var fresh atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 64; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if rs.Add(words[i%len(words)]) {
					fresh.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(len(words)), fresh.Load())
	got, count := rs.Finalize()
	assert.Equal(t, []string{"alpha", "beta", "delta", "gamma"}, got)
	assert.Equal(t, 4, count)
	assert.True(t, rs.Contains("beta"))
	assert.False(t, rs.Contains("omega"))

	again, _ := rs.Finalize()
	assert.Equal(t, got, again)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"pool", ModePool, false},
		{"stream", ModeStream, false},
		{"fast", ModeAuto, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		if tt.in != "" {
			assert.Equal(t, tt.in, got.String())
		}
	}
}

func TestAutoModeThreshold(t *testing.T) {
	small := New(sampleWords, WithStreamThreshold(1000))
	res, err := small.Solve(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, ModePool, res.Mode)

	res, err = small.Solve(context.Background(), "treats")
	require.NoError(t, err)
	assert.Equal(t, ModeStream, res.Mode)
}

func TestDefaultWorkers(t *testing.T) {
	s := New(sampleWords, WithWorkers(-3))
	assert.Equal(t, DefaultWorkers(), s.Workers())
	assert.Positive(t, s.Workers())
}
