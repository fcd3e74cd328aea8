// Package solver finds every dictionary word that can be spelled from a
// subset of a short letter sequence.
//
// The pipeline is: GenerateSubsets -> GeneratePermutations per subset ->
// candidate pool -> parallel binary-search matching -> sorted result.
// Solver wires those steps together; the individual steps are exported for
// callers that want to drive them directly.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/charmbracelet/log"
)

// ErrInvalidSequence wraps every rejection of a letter sequence.
var ErrInvalidSequence = errors.New("invalid letter sequence")

// Default bounds for a letter sequence. DefaultMaxLetters is also the
// hard upper limit.
const (
	DefaultMinLetters = 3
	DefaultMaxLetters = 10
)

// DefaultStreamThreshold is the candidate pool size above which ModeAuto
// switches from the materialised pool to streaming.
const DefaultStreamThreshold = 2_000_000

// Mode selects how candidates reach the matcher.
type Mode int

const (
	// ModeAuto picks ModePool for small pools and ModeStream otherwise.
	ModeAuto Mode = iota
	// ModePool builds the whole candidate pool, then matches it.
	ModePool
	// ModeStream matches subset by subset without building the pool.
	ModeStream
)

func (m Mode) String() string {
	switch m {
	case ModePool:
		return "pool"
	case ModeStream:
		return "stream"
	default:
		return "auto"
	}
}

// ParseMode converts a config or flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "pool":
		return ModePool, nil
	case "stream":
		return ModeStream, nil
	}
	return ModeAuto, fmt.Errorf("unknown mode %q (want auto, pool or stream)", s)
}

// Result is the outcome of one Solve call.
type Result struct {
	Letters    string
	Words      []string
	Count      int
	Candidates uint64
	Mode       Mode
	Elapsed    time.Duration
}

// Solver answers queries against one dictionary. It is safe for
// concurrent use; the dictionary is never written to.
type Solver struct {
	dict            Lookup
	workers         int
	mode            Mode
	minWordLen      int
	minLetters      int
	maxLetters      int
	streamThreshold uint64
}

// Option configures a Solver.
type Option func(*Solver)

// WithWorkers sets the matcher pool size. n < 1 means one per CPU.
func WithWorkers(n int) Option {
	return func(s *Solver) { s.workers = n }
}

// WithMode forces a matching mode.
func WithMode(m Mode) Option {
	return func(s *Solver) { s.mode = m }
}

// WithMinWordLen drops words shorter than n from results. Values below 2
// are raised to 2.
func WithMinWordLen(n int) Option {
	return func(s *Solver) { s.minWordLen = max(n, MinSubsetLen) }
}

// WithSequenceBounds changes the accepted letter sequence length range.
// maxLen is capped at DefaultMaxLetters: longer sequences overflow the
// candidate count.
func WithSequenceBounds(minLen, maxLen int) Option {
	return func(s *Solver) {
		s.minLetters = minLen
		s.maxLetters = min(maxLen, DefaultMaxLetters)
	}
}

// WithStreamThreshold sets the pool size at which ModeAuto streams.
func WithStreamThreshold(n uint64) Option {
	return func(s *Solver) { s.streamThreshold = n }
}

// New creates a Solver over dict, which must already be sorted for
// binary search.
func New(dict Lookup, opts ...Option) *Solver {
	s := &Solver{
		dict:            dict,
		workers:         DefaultWorkers(),
		mode:            ModeAuto,
		minWordLen:      MinSubsetLen,
		minLetters:      DefaultMinLetters,
		maxLetters:      DefaultMaxLetters,
		streamThreshold: DefaultStreamThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = DefaultWorkers()
	}
	return s
}

// Workers returns the configured matcher pool size.
func (s *Solver) Workers() int {
	return s.workers
}

// SequenceBounds returns the accepted letter sequence length range.
func (s *Solver) SequenceBounds() (minLen, maxLen int) {
	return s.minLetters, s.maxLetters
}

// Normalize validates raw input the same way Solve does and returns the
// lowercase letter sequence.
func (s *Solver) Normalize(raw string) (string, error) {
	letters, err := utils.NormalizeSequence(raw, s.minLetters, s.maxLetters)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSequence, err)
	}
	return letters, nil
}

// Solve finds every word in the dictionary spelled by a subset of raw.
func (s *Solver) Solve(ctx context.Context, raw string) (*Result, error) {
	letters, err := s.Normalize(raw)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	subsets := generateSubsets(letters, s.minWordLen)
	candidates := poolSize(subsets)

	mode := s.mode
	if mode == ModeAuto {
		mode = ModePool
		if candidates > s.streamThreshold {
			mode = ModeStream
		}
	}
	log.Debug("solving", "letters", letters, "subsets", len(subsets), "candidates", candidates, "mode", mode)

	var results *ResultSet
	switch mode {
	case ModeStream:
		results, err = MatchSubsets(ctx, subsets, s.dict, s.workers)
	default:
		results, err = MatchAll(ctx, candidatesFor(subsets), s.dict, s.workers)
	}
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", letters, err)
	}

	words, count := results.Finalize()
	return &Result{
		Letters:    letters,
		Words:      words,
		Count:      count,
		Candidates: candidates,
		Mode:       mode,
		Elapsed:    time.Since(start),
	}, nil
}
