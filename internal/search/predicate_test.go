package search

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// evalPredicate interprets a predicate tree against a row, the way a
// LIKE-capable row store would.
func evalPredicate(t *testing.T, p Predicate, row map[string]string) bool {
	t.Helper()
	switch p := p.(type) {
	case Equals:
		got := row[p.Column]
		if p.CaseInsensitive {
			return strings.EqualFold(got, p.Value)
		}
		return got == p.Value
	case Like:
		re := likeToRegexp(t, p.Pattern, p.Escape, p.CaseInsensitive)
		return re.MatchString(row[p.Column])
	case And:
		for _, c := range p {
			if !evalPredicate(t, c, row) {
				return false
			}
		}
		return true
	case Or:
		for _, c := range p {
			if evalPredicate(t, c, row) {
				return true
			}
		}
		return false
	default:
		t.Fatalf("unexpected predicate %T", p)
		return false
	}
}

func likeToRegexp(t *testing.T, pattern string, escape rune, caseInsensitive bool) *regexp.Regexp {
	t.Helper()
	var b strings.Builder
	b.WriteString("(?s)")
	if caseInsensitive {
		b.WriteString("(?i)")
	}
	b.WriteString("^")
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == escape && i+1 < len(runes):
			b.WriteString(regexp.QuoteMeta(string(runes[i+1])))
			i++
		case r == '_':
			b.WriteString(".")
		case r == '%':
			b.WriteString(".*")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	re, err := regexp.Compile(b.String())
	require.NoError(t, err)
	return re
}
