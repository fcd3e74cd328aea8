package solver

// BuildCandidates expands letters into the full candidate pool: the
// permutations of every subset, concatenated in subset order. Strings may
// repeat across subsets; only the permutations of a single subset are
// guaranteed distinct.
func BuildCandidates(letters string) []string {
	return buildCandidates(letters, MinSubsetLen)
}

func buildCandidates(letters string, minLen int) []string {
	return candidatesFor(generateSubsets(letters, minLen))
}

// candidatesFor concatenates the permutations of subsets in order.
func candidatesFor(subsets []string) []string {
	pool := make([]string, 0, poolSize(subsets))
	for _, subset := range subsets {
		pool = append(pool, GeneratePermutations(subset)...)
	}
	return pool
}

// EstimateCandidates returns len(BuildCandidates(letters)) without
// building the pool.
func EstimateCandidates(letters string) uint64 {
	return poolSize(GenerateSubsets(letters))
}

func poolSize(subsets []string) uint64 {
	var total uint64
	for _, subset := range subsets {
		total += PermutationCount(subset)
	}
	return total
}
