package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hanzikit/cjklex/internal/domain"
)

// likeEscape is the escape character used in generated LIKE patterns.
// It is independent of the grammar's query-side escape character.
const likeEscape = '\\'

// TokenKind discriminates parsed query tokens.
type TokenKind int

const (
	// TokenLiteral is a run of plain text with escapes resolved.
	TokenLiteral TokenKind = iota
	// TokenSingle matches exactly one character or entity.
	TokenSingle
	// TokenMultiple matches zero or more characters or entities.
	TokenMultiple
)

// Token is one element of a parsed query string.
type Token struct {
	Kind TokenKind
	Text string // set for TokenLiteral only
}

// Grammar holds the wildcard characters a query string is parsed with.
type Grammar struct {
	single   rune
	multiple rune
	escape   rune
}

// NewGrammar builds a Grammar from single-character markers. Each marker
// must be exactly one character; anything else is a configuration error.
func NewGrammar(single, multiple, escape string) (Grammar, error) {
	g := Grammar{}
	for _, m := range []struct {
		name  string
		value string
		dst   *rune
	}{
		{"single wildcard", single, &g.single},
		{"multiple wildcard", multiple, &g.multiple},
		{"escape", escape, &g.escape},
	} {
		if utf8.RuneCountInString(m.value) != 1 {
			return Grammar{}, fmt.Errorf("%s character %q must be exactly one character: %w",
				m.name, m.value, domain.ErrValidation)
		}
		r, _ := utf8.DecodeRuneInString(m.value)
		*m.dst = r
	}
	if g.single == g.multiple || g.single == g.escape || g.multiple == g.escape {
		return Grammar{}, fmt.Errorf("wildcard and escape characters %q, %q, %q must be distinct: %w",
			single, multiple, escape, domain.ErrValidation)
	}
	return g, nil
}

// DefaultGrammar uses "_", "%" and "\".
func DefaultGrammar() Grammar {
	return Grammar{single: '_', multiple: '%', escape: '\\'}
}

// Tokenize parses a query into literal runs and wildcard markers. An
// escape character followed by a wildcard or another escape produces the
// literal character; before anything else, including at the end of the
// query, the escape stays a literal of its own.
func (g Grammar) Tokenize(query string) []Token {
	var tokens []Token
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: literal.String()})
			literal.Reset()
		}
	}

	runes := []rune(query)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == g.escape:
			if i+1 < len(runes) {
				next := runes[i+1]
				if next == g.escape || next == g.single || next == g.multiple {
					literal.WriteRune(next)
					i++
					continue
				}
			}
			literal.WriteRune(r)
		case r == g.single:
			flush()
			tokens = append(tokens, Token{Kind: TokenSingle})
		case r == g.multiple:
			flush()
			tokens = append(tokens, Token{Kind: TokenMultiple})
		default:
			literal.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// HasWildcards reports whether tokenization yields any non-literal token.
// Queries without wildcards take the plain equality fast path.
func (g Grammar) HasWildcards(query string) bool {
	for _, t := range g.Tokenize(query) {
		if t.Kind != TokenLiteral {
			return true
		}
	}
	return false
}

// Unescape strips escape markers without interpreting wildcards.
func (g Grammar) Unescape(query string) string {
	var b strings.Builder
	runes := []rune(query)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == g.escape && i+1 < len(runes) {
			next := runes[i+1]
			if next == g.escape || next == g.single || next == g.multiple {
				b.WriteRune(next)
				i++
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Escape makes a literal string safe against this grammar's wildcard
// interpretation, so Unescape(Escape(s)) == s for all s.
func (g Grammar) Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == g.escape || r == g.single || r == g.multiple {
			b.WriteRune(g.escape)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapeLike makes literal text safe inside a LIKE pattern. The pattern
// metacharacters are fixed regardless of the grammar's configured
// wildcards, since LIKE always interprets "_" and "%".
func escapeLike(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || r == '%' || r == likeEscape {
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	return b.String()
}
