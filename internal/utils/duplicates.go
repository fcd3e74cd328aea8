package utils

// SeenFilter remembers every string it has been shown and admits each one
// only the first time. It is not safe for concurrent use.
type SeenFilter struct {
	seen map[string]struct{}
}

// NewSeenFilter creates an empty filter sized for roughly hint entries.
func NewSeenFilter(hint int) *SeenFilter {
	return &SeenFilter{seen: make(map[string]struct{}, hint)}
}

// ShouldInclude returns true the first time s is seen and false afterwards.
func (f *SeenFilter) ShouldInclude(s string) bool {
	if _, ok := f.seen[s]; ok {
		return false
	}
	f.seen[s] = struct{}{}
	return true
}

// Len reports how many distinct strings have been admitted.
func (f *SeenFilter) Len() int {
	return len(f.seen)
}
