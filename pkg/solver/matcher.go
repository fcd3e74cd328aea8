package solver

import (
	"context"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Lookup is the membership test the matcher needs from a dictionary.
// Implementations are shared by every worker and must be safe for
// concurrent reads.
type Lookup interface {
	Contains(word string) bool
}

// PrefixLookup is a Lookup that can also tell whether any word starts with
// a prefix. The stream matcher uses it to cut dead permutation branches.
type PrefixLookup interface {
	Lookup
	HasPrefix(prefix string) bool
}

// BytePrefixLookup is a PrefixLookup that also answers for a byte slice
// without copying it. The slice must not be retained past the call.
type BytePrefixLookup interface {
	PrefixLookup
	HasPrefixBytes(prefix []byte) bool
}

const (
	minChunkSize    = 256
	chunksPerWorker = 4
)

// DefaultWorkers returns the worker count used when none is configured.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// chunkSize splits n candidates so every worker gets a few chunks to keep
// the pool busy when some chunks finish early.
func chunkSize(n, workers int) int {
	size := (n + workers*chunksPerWorker - 1) / (workers * chunksPerWorker)
	return max(size, minChunkSize)
}

// MatchAll tests every candidate against dict on a pool of workers and
// returns the distinct hits. workers < 1 means DefaultWorkers.
//
// Matching itself cannot fail. The only error is ctx's, returned when the
// context is cancelled before all chunks were scheduled; the partial set is
// returned with it.
func MatchAll(ctx context.Context, candidates []string, dict Lookup, workers int) (*ResultSet, error) {
	if workers < 1 {
		workers = DefaultWorkers()
	}
	results := NewResultSet()
	size := chunkSize(len(candidates), workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunks := 0
	for start := 0; start < len(candidates); start += size {
		if gctx.Err() != nil {
			break
		}
		part := candidates[start:min(start+size, len(candidates))]
		chunks++
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for _, candidate := range part {
				if dict.Contains(candidate) {
					results.Add(candidate)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	log.Debug("match done", "candidates", len(candidates), "chunks", chunks, "workers", workers, "hits", results.Len())
	return results, err
}

// MatchSubsets matches the permutations of each subset without building a
// candidate pool: workers take whole subsets and walk their orderings in
// place. When dict is a PrefixLookup, orderings whose prefix starts no
// dictionary word are skipped; a BytePrefixLookup is asked without
// allocating a string per prefix. The resulting set equals
// MatchAll over the pool built from the same subsets.
func MatchSubsets(ctx context.Context, subsets []string, dict Lookup, workers int) (*ResultSet, error) {
	if workers < 1 {
		workers = DefaultWorkers()
	}
	results := NewResultSet()

	var keep func([]byte) bool
	switch pl := dict.(type) {
	case BytePrefixLookup:
		keep = pl.HasPrefixBytes
	case PrefixLookup:
		keep = func(prefix []byte) bool { return pl.HasPrefix(string(prefix)) }
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, subset := range subsets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			permuteBytesPruned(subset, keep, func(candidate string) bool {
				if dict.Contains(candidate) {
					results.Add(candidate)
				}
				return true
			})
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	log.Debug("stream match done", "subsets", len(subsets), "pruned", keep != nil, "workers", workers, "hits", results.Len())
	return results, err
}
