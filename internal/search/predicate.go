// Package search implements the two-phase lookup engine: every query is
// compiled into a coarse filter predicate for bulk elimination in the row
// store and a precise verifier applied to each surviving candidate. The
// verifier is authoritative; the coarse form only over-approximates it.
package search

// Predicate is an opaque filter tree handed to the row store, which
// translates it into its own query language.
type Predicate interface {
	isPredicate()
}

// Equals requires a column to equal a value exactly.
type Equals struct {
	Column          string
	Value           string
	CaseInsensitive bool
}

// Like requires a column to match a SQL LIKE style pattern where "_"
// stands for one character and "%" for any run. Literal occurrences of
// the two and of Escape itself are escaped with Escape.
type Like struct {
	Column          string
	Pattern         string
	Escape          rune
	CaseInsensitive bool
}

// And is satisfied when every child is.
type And []Predicate

// Or is satisfied when at least one child is.
type Or []Predicate

func (Equals) isPredicate() {}
func (Like) isPredicate()   {}
func (And) isPredicate()    {}
func (Or) isPredicate()     {}

// orOf flattens a clause list to a single predicate, avoiding one-element
// wrappers. Returns nil for an empty list.
func orOf(clauses []Predicate) Predicate {
	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0]
	default:
		return Or(clauses)
	}
}
