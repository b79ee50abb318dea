package search

import (
	"fmt"
	"regexp"
)

// ExactHeadword matches the headword column by plain equality, with
// optional case and fullwidth folding on both sides.
type ExactHeadword struct {
	CaseInsensitive bool
	FullwidthFold   bool
}

func (s ExactHeadword) fold(v string) string {
	return Compiler{CaseInsensitive: s.CaseInsensitive, FullwidthFold: s.FullwidthFold}.Fold(v)
}

func (s ExactHeadword) CoarseFilter(column, query string) (Predicate, error) {
	return Equals{Column: column, Value: s.fold(query), CaseInsensitive: s.CaseInsensitive}, nil
}

func (s ExactHeadword) Verifier(query string) (func(string) bool, error) {
	want := s.fold(query)
	return func(value string) bool {
		return s.fold(value) == want
	}, nil
}

// WildcardHeadword matches the headword column against a query that may
// carry wildcards. Queries without wildcards fall back to the equality
// fast path.
type WildcardHeadword struct {
	Compiler Compiler

	cache memo[*regexp.Regexp]
}

func NewWildcardHeadword(c Compiler) *WildcardHeadword {
	return &WildcardHeadword{Compiler: c}
}

func (s *WildcardHeadword) CoarseFilter(column, query string) (Predicate, error) {
	if !s.Compiler.Grammar.HasWildcards(query) {
		plain := s.Compiler.Fold(s.Compiler.Grammar.Unescape(query))
		return Equals{Column: column, Value: plain, CaseInsensitive: s.Compiler.CaseInsensitive}, nil
	}
	pattern := s.Compiler.LikePattern(s.Compiler.Grammar.Tokenize(query))
	return Like{
		Column:          column,
		Pattern:         pattern,
		Escape:          likeEscape,
		CaseInsensitive: s.Compiler.CaseInsensitive,
	}, nil
}

func (s *WildcardHeadword) Verifier(query string) (func(string) bool, error) {
	if !s.Compiler.Grammar.HasWildcards(query) {
		want := s.Compiler.Fold(s.Compiler.Grammar.Unescape(query))
		return func(value string) bool {
			return s.Compiler.Fold(value) == want
		}, nil
	}

	re, err := s.pattern(query)
	if err != nil {
		return nil, err
	}
	return func(value string) bool {
		return re.MatchString(s.Compiler.Fold(value))
	}, nil
}

func (s *WildcardHeadword) pattern(query string) (*regexp.Regexp, error) {
	if re, ok := s.cache.get(query); ok {
		return re, nil
	}
	body := s.Compiler.RegexBody(s.Compiler.Grammar.Tokenize(query), ".")
	re, err := regexp.Compile("^" + body + "$")
	if err != nil {
		return nil, fmt.Errorf("compile headword pattern for %q: %w", query, err)
	}
	return s.cache.put(query, re), nil
}
