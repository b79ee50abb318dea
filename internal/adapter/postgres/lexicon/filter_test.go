package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzikit/cjklex/internal/domain"
	"github.com/hanzikit/cjklex/internal/search"
)

func TestToSqlizer(t *testing.T) {
	tests := []struct {
		name      string
		predicate search.Predicate
		wantSQL   string
		wantArgs  []any
	}{
		{
			name:      "equals",
			predicate: search.Equals{Column: domain.ColHeadword, Value: "東京"},
			wantSQL:   "headword = ?",
			wantArgs:  []any{"東京"},
		},
		{
			name:      "equals case insensitive",
			predicate: search.Equals{Column: domain.ColReading, Value: "dong1 jing1", CaseInsensitive: true},
			wantSQL:   "lower(reading) = lower(?)",
			wantArgs:  []any{"dong1 jing1"},
		},
		{
			name:      "like",
			predicate: search.Like{Column: domain.ColHeadword, Pattern: "東%", Escape: '\\'},
			wantSQL:   `headword LIKE ? ESCAPE '\\'`,
			wantArgs:  []any{"東%"},
		},
		{
			name:      "like case insensitive",
			predicate: search.Like{Column: domain.ColTranslation, Pattern: "%tokyo%", Escape: '\\', CaseInsensitive: true},
			wantSQL:   `translation ILIKE ? ESCAPE '\\'`,
			wantArgs:  []any{"%tokyo%"},
		},
		{
			name: "traditional headword shares the headword column",
			predicate: search.Equals{
				Column: domain.ColHeadwordTraditional,
				Value:  "對不起",
			},
			wantSQL:  "headword = ?",
			wantArgs: []any{"對不起"},
		},
		{
			name: "and of likes",
			predicate: search.And{
				search.Like{Column: domain.ColHeadword, Pattern: "_不_", Escape: '\\'},
				search.Like{Column: domain.ColReading, Pattern: "dui4 _% qi3", Escape: '\\'},
			},
			wantSQL:  `(headword LIKE ? ESCAPE '\\' AND reading LIKE ? ESCAPE '\\')`,
			wantArgs: []any{"_不_", "dui4 _% qi3"},
		},
		{
			name: "or of equals",
			predicate: search.Or{
				search.Equals{Column: domain.ColReading, Value: "zhi1 dao4"},
				search.Equals{Column: domain.ColReading, Value: "zhi2 dao5"},
			},
			wantSQL:  "(reading = ? OR reading = ?)",
			wantArgs: []any{"zhi1 dao4", "zhi2 dao5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := toSqlizer(tt.predicate)
			require.NoError(t, err)

			gotSQL, gotArgs, err := cond.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, gotSQL)
			assert.Equal(t, tt.wantArgs, gotArgs)
		})
	}
}

func TestToSqlizerUnknownColumn(t *testing.T) {
	_, err := toSqlizer(search.Equals{Column: "id; DROP TABLE lexicon_entries", Value: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
