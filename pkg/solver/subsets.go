package solver

import "github.com/bastiangx/wordsolve/internal/utils"

// MinSubsetLen is the shortest subset ever generated.
const MinSubsetLen = 2

// GenerateSubsets returns every distinct subset of letters, taken at strictly
// increasing positions, for every length from len(letters) down to 2.
// Within one length the index combinations are walked in lexicographic
// order. A rendered subset is kept only if no earlier subset rendered the
// same characters.
func GenerateSubsets(letters string) []string {
	return generateSubsets(letters, MinSubsetLen)
}

func generateSubsets(letters string, minLen int) []string {
	n := len(letters)
	if minLen < MinSubsetLen {
		minLen = MinSubsetLen
	}
	if n < minLen {
		return nil
	}

	filter := utils.NewSeenFilter(1 << n)
	var subsets []string
	idx := make([]int, n)
	buf := make([]byte, n)

	for length := n; length >= minLen; length-- {
		for i := 0; i < length; i++ {
			idx[i] = i
		}
		for {
			for i := 0; i < length; i++ {
				buf[i] = letters[idx[i]]
			}
			if s := string(buf[:length]); filter.ShouldInclude(s) {
				subsets = append(subsets, s)
			}
			if !nextCombination(idx[:length], n) {
				break
			}
		}
	}
	return subsets
}

// nextCombination advances idx to the next strictly increasing combination
// over [0, n) in lexicographic order. It returns false after the last one.
func nextCombination(idx []int, n int) bool {
	k := len(idx)
	i := k - 1
	for i >= 0 && idx[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < k; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}
