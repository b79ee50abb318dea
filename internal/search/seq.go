package search

// atom matches one position of a candidate sequence. A nil match accepts
// any value; many atoms may consume zero or more positions.
type atom[T any] struct {
	match func(T) bool
	many  bool
}

// matchSequence reports whether the pattern covers the values exactly.
// Many atoms try consuming zero positions before one, backtracking on
// failure; the match succeeds only when pattern and values are exhausted
// together.
func matchSequence[T any](pattern []atom[T], values []T) bool {
	var walk func(pi, vi int) bool
	walk = func(pi, vi int) bool {
		if pi == len(pattern) {
			return vi == len(values)
		}
		a := pattern[pi]
		if a.many {
			if walk(pi+1, vi) {
				return true
			}
			if vi < len(values) && (a.match == nil || a.match(values[vi])) {
				return walk(pi, vi+1)
			}
			return false
		}
		if vi >= len(values) {
			return false
		}
		if a.match != nil && !a.match(values[vi]) {
			return false
		}
		return walk(pi+1, vi+1)
	}
	return walk(0, 0)
}
