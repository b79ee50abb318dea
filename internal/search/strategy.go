package search

// Strategy compiles queries against one column kind. CoarseFilter yields
// the over-approximating bulk predicate, Verifier the authoritative
// per-value test. Both are pure given (query, options); implementations
// may keep a single-slot memo shared between the two calls of one query,
// which makes instances unsafe for concurrent use with differing queries.
type Strategy interface {
	CoarseFilter(column, query string) (Predicate, error)
	Verifier(query string) (func(value string) bool, error)
}

// MixedStrategy answers queries that interleave script characters with
// phonetic syllables, matching the headword and reading columns of a row
// position for position. A (nil, nil) result from either method means the
// query holds no genuine mixture and the strategy contributes nothing.
type MixedStrategy interface {
	CoarseFilterMixed(headwordColumn, readingColumn, query string) (Predicate, error)
	MixedVerifier(query string) (func(headword, reading string) bool, error)
}
