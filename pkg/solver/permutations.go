package solver

import "slices"

// GeneratePermutations returns every distinct ordering of subset's letters,
// sorted ascending. Repeated letters do not produce repeated strings, so the
// result has len(subset)! / prod(m!) entries where m ranges over the
// multiplicity of each letter.
func GeneratePermutations(subset string) []string {
	if subset == "" {
		return nil
	}
	buf := []byte(subset)
	slices.Sort(buf)

	perms := make([]string, 0, PermutationCount(subset))
	for {
		perms = append(perms, string(buf))
		if !nextPermutation(buf) {
			return perms
		}
	}
}

// nextPermutation rearranges b into the next lexicographically greater
// ordering and returns false when b is already the greatest one. Equal
// bytes are never swapped with each other, so starting from sorted input
// each distinct ordering is produced exactly once.
func nextPermutation(b []byte) bool {
	i := len(b) - 2
	for i >= 0 && b[i] >= b[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(b) - 1
	for b[j] <= b[i] {
		j--
	}
	b[i], b[j] = b[j], b[i]
	slices.Reverse(b[i+1:])
	return true
}

// PermuteFunc calls visit with each distinct ordering of subset in ascending
// order. The walk stops early when visit returns false.
func PermuteFunc(subset string, visit func(string) bool) {
	PermuteFuncPruned(subset, nil, visit)
}

// PermuteFuncPruned is PermuteFunc with a pruning hook: keep is asked about
// every proper prefix before it is extended, and a false answer skips every
// ordering that starts with that prefix. A nil keep prunes nothing.
func PermuteFuncPruned(subset string, keep func(prefix string) bool, visit func(string) bool) {
	var keepBytes func([]byte) bool
	if keep != nil {
		keepBytes = func(prefix []byte) bool { return keep(string(prefix)) }
	}
	permuteBytesPruned(subset, keepBytes, visit)
}

// permuteBytesPruned hands keep a view into the walk buffer, which is
// overwritten as soon as keep returns.
func permuteBytesPruned(subset string, keep func(prefix []byte) bool, visit func(string) bool) {
	if subset == "" {
		return
	}
	letters := make([]byte, 0, len(subset))
	counts := make([]int, 0, len(subset))
	sorted := []byte(subset)
	slices.Sort(sorted)
	for i, c := range sorted {
		if i == 0 || c != sorted[i-1] {
			letters = append(letters, c)
			counts = append(counts, 0)
		}
		counts[len(counts)-1]++
	}

	w := &permWalker{
		letters: letters,
		counts:  counts,
		buf:     make([]byte, len(subset)),
		keep:    keep,
		visit:   visit,
	}
	w.walk(0)
}

type permWalker struct {
	letters []byte
	counts  []int
	buf     []byte
	keep    func([]byte) bool
	visit   func(string) bool
}

// walk fills buf[depth:] and reports false once visit asked to stop.
func (w *permWalker) walk(depth int) bool {
	if depth == len(w.buf) {
		return w.visit(string(w.buf))
	}
	for i, c := range w.letters {
		if w.counts[i] == 0 {
			continue
		}
		w.buf[depth] = c
		if w.keep != nil && depth+1 < len(w.buf) && !w.keep(w.buf[:depth+1]) {
			continue
		}
		w.counts[i]--
		ok := w.walk(depth + 1)
		w.counts[i]++
		if !ok {
			return false
		}
	}
	return true
}

// PermutationCount returns the number of distinct orderings of subset
// without enumerating them.
func PermutationCount(subset string) uint64 {
	var counts [256]int
	for i := 0; i < len(subset); i++ {
		counts[subset[i]]++
	}
	// Build the multinomial as a product of binomials to stay in range.
	var total uint64 = 1
	placed := 0
	for _, m := range counts {
		for k := 1; k <= m; k++ {
			placed++
			total = total * uint64(placed) / uint64(k)
		}
	}
	return total
}
