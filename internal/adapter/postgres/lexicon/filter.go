package lexicon

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/hanzikit/cjklex/internal/domain"
	"github.com/hanzikit/cjklex/internal/search"
)

// sqlColumn maps logical predicate columns to table columns. The
// traditional headword shares a column with the plain headword, the same
// way domain.Entry.Column resolves it.
var sqlColumn = map[string]string{
	domain.ColHeadword:            "headword",
	domain.ColHeadwordTraditional: "headword",
	domain.ColHeadwordSimplified:  "headword_simplified",
	domain.ColReading:             "reading",
	domain.ColTranslation:         "translation",
}

// toSqlizer translates an opaque predicate tree into squirrel conditions.
// Column names are resolved through an allowlist; unknown columns are a
// validation error, never interpolated.
func toSqlizer(p search.Predicate) (sq.Sqlizer, error) {
	switch p := p.(type) {
	case search.Equals:
		column, err := resolveColumn(p.Column)
		if err != nil {
			return nil, err
		}
		if p.CaseInsensitive {
			return sq.Expr("lower("+column+") = lower(?)", p.Value), nil
		}
		return sq.Eq{column: p.Value}, nil

	case search.Like:
		column, err := resolveColumn(p.Column)
		if err != nil {
			return nil, err
		}
		op := "LIKE"
		if p.CaseInsensitive {
			op = "ILIKE"
		}
		escape := string(p.Escape)
		if p.Escape == '\\' {
			escape = `\\`
		}
		return sq.Expr(fmt.Sprintf("%s %s ? ESCAPE '%s'", column, op, escape), p.Pattern), nil

	case search.And:
		conj := make(sq.And, 0, len(p))
		for _, c := range p {
			child, err := toSqlizer(c)
			if err != nil {
				return nil, err
			}
			conj = append(conj, child)
		}
		return conj, nil

	case search.Or:
		disj := make(sq.Or, 0, len(p))
		for _, c := range p {
			child, err := toSqlizer(c)
			if err != nil {
				return nil, err
			}
			disj = append(disj, child)
		}
		return disj, nil

	default:
		return nil, fmt.Errorf("predicate %T: %w", p, domain.ErrUnsupportedPredicate)
	}
}

func resolveColumn(name string) (string, error) {
	column, ok := sqlColumn[name]
	if !ok {
		return "", fmt.Errorf("unknown column %q: %w", name, domain.ErrValidation)
	}
	return column, nil
}
