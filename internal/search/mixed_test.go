package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMixed(t *testing.T, tonalCompletion bool) *MixedReading {
	t.Helper()
	c := Compiler{Grammar: DefaultGrammar(), CaseInsensitive: true}
	return NewMixedReading(numberedPinyinEngine(t), c, c, tonalCompletion)
}

func TestMixedReadingVerifier(t *testing.T) {
	s := newMixed(t, false)

	verify, err := s.MixedVerifier("dui4 不 qi3")
	require.NoError(t, err)
	require.NotNil(t, verify)

	tests := []struct {
		name     string
		headword string
		reading  string
		want     bool
	}{
		{name: "glyph and syllables agree", headword: "对不起", reading: "dui4 bu5 qi3", want: true},
		{name: "wrong middle glyph", headword: "对很起", reading: "dui4 bu5 qi3", want: false},
		{name: "wrong first syllable", headword: "对不起", reading: "dui1 bu5 qi3", want: false},
		{name: "headword longer than reading", headword: "对不起", reading: "dui4 bu5", want: false},
		{name: "reading longer than headword", headword: "对不", reading: "dui4 bu5 qi3", want: false},
		{name: "both too short", headword: "对不", reading: "dui4 bu5", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, verify(tt.headword, tt.reading))
		})
	}
}

func TestMixedReadingNoContribution(t *testing.T) {
	s := newMixed(t, false)

	t.Run("pure reading query", func(t *testing.T) {
		verify, err := s.MixedVerifier("dui4bu5qi3")
		require.NoError(t, err)
		assert.Nil(t, verify)

		p, err := s.CoarseFilterMixed("headword", "reading", "dui4bu5qi3")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("pure headword query", func(t *testing.T) {
		verify, err := s.MixedVerifier("对不起")
		require.NoError(t, err)
		assert.Nil(t, verify)
	})
}

func TestMixedReadingWildcards(t *testing.T) {
	s := newMixed(t, false)

	t.Run("single wildcard position", func(t *testing.T) {
		verify, err := s.MixedVerifier("dui4 不 _")
		require.NoError(t, err)
		require.NotNil(t, verify)
		assert.True(t, verify("对不起", "dui4 bu5 qi3"))
		assert.True(t, verify("对不对", "dui4 bu5 dui4"))
		assert.False(t, verify("对不", "dui4 bu5"))
	})

	t.Run("multiple wildcard consumes paired positions", func(t *testing.T) {
		verify, err := s.MixedVerifier("dui4 不%")
		require.NoError(t, err)
		require.NotNil(t, verify)
		assert.True(t, verify("对不", "dui4 bu5"))
		assert.True(t, verify("对不起", "dui4 bu5 qi3"))
		assert.False(t, verify("对很起", "dui4 hen3 qi3"))
		// The wildcard cannot repair a malformed row.
		assert.False(t, verify("对不起", "dui4 bu5"))
	})
}

func TestMixedReadingTonalCompletion(t *testing.T) {
	s := newMixed(t, true)

	verify, err := s.MixedVerifier("dui 不 qi")
	require.NoError(t, err)
	require.NotNil(t, verify)
	assert.True(t, verify("对不起", "dui4 bu5 qi3"))
	assert.False(t, verify("对很起", "dui4 bu5 qi3"))

	strict := newMixed(t, false)
	verifyStrict, err := strict.MixedVerifier("dui 不 qi")
	require.NoError(t, err)
	require.NotNil(t, verifyStrict)
	assert.False(t, verifyStrict("对不起", "dui4 bu5 qi3"))
}

func TestMixedReadingCoarseFilter(t *testing.T) {
	s := newMixed(t, false)

	p, err := s.CoarseFilterMixed("headword", "reading", "dui4 不 qi3")
	require.NoError(t, err)
	require.NotNil(t, p)

	t.Run("matching row passes", func(t *testing.T) {
		assert.True(t, evalPredicate(t, p, map[string]string{
			"headword": "对不起",
			"reading":  "dui4 bu5 qi3",
		}))
	})

	t.Run("verifier acceptance implies coarse acceptance", func(t *testing.T) {
		verify, err := s.MixedVerifier("dui4 不 qi3")
		require.NoError(t, err)
		rows := []map[string]string{
			{"headword": "对不起", "reading": "dui4 bu5 qi3"},
			{"headword": "对很起", "reading": "dui4 bu5 qi3"},
			{"headword": "对不起", "reading": "dui4 bu5"},
		}
		for _, row := range rows {
			if verify(row["headword"], row["reading"]) {
				assert.True(t, evalPredicate(t, p, row))
			}
		}
	})
}
