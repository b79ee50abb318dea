package search

import (
	"regexp"
	"strings"
)

// foldASCIIFullwidth maps halfwidth ASCII letters to their fullwidth
// forms. Only letters are widened so wildcard and escape characters keep
// their meaning either way.
func foldASCIIFullwidth(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return r + 0xFEE0
		}
		return r
	}, s)
}

// Compiler turns parsed query tokens into the two compiled forms of a
// pattern: a LIKE pattern for the coarse filter and a regular expression
// body for the verifier. Folding options apply identically to literal
// tokens and, through Fold, to candidate values.
type Compiler struct {
	Grammar         Grammar
	CaseInsensitive bool
	FullwidthFold   bool
}

// Fold normalizes text the way compiled literals are normalized, so both
// sides of a comparison agree.
func (c Compiler) Fold(s string) string {
	if c.CaseInsensitive {
		s = strings.ToLower(s)
	}
	if c.FullwidthFold {
		s = foldASCIIFullwidth(s)
	}
	return s
}

// LikePattern renders tokens as a LIKE pattern, wildcards mapping to the
// predicate language's own placeholders.
func (c Compiler) LikePattern(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t.Kind {
		case TokenLiteral:
			b.WriteString(escapeLike(c.Fold(t.Text)))
		case TokenSingle:
			b.WriteByte('_')
		case TokenMultiple:
			b.WriteByte('%')
		}
	}
	return b.String()
}

// RegexBody renders tokens as an unanchored regular expression fragment.
// singleClass is the character class a single wildcard matches, "." for
// headwords and "[^/]" inside slash-delimited translation fields.
func (c Compiler) RegexBody(tokens []Token, singleClass string) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t.Kind {
		case TokenLiteral:
			b.WriteString(regexp.QuoteMeta(c.Fold(t.Text)))
		case TokenSingle:
			b.WriteString(singleClass)
		case TokenMultiple:
			b.WriteString(singleClass + "*")
		}
	}
	return b.String()
}

// memo is the single-slot cache strategies use to share the compiled
// pattern between the coarse-filter call and the verifier call of one
// logical query. Last write wins; it is not safe for concurrent use with
// differing queries.
type memo[T any] struct {
	key   string
	value T
	valid bool
}

func (m *memo[T]) get(key string) (T, bool) {
	if m.valid && m.key == key {
		return m.value, true
	}
	var zero T
	return zero, false
}

func (m *memo[T]) put(key string, value T) T {
	m.key = key
	m.value = value
	m.valid = true
	return value
}
