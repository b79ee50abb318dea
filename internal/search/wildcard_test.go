package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzikit/cjklex/internal/domain"
)

func TestNewGrammar(t *testing.T) {
	tests := []struct {
		name    string
		single  string
		multi   string
		escape  string
		wantErr bool
	}{
		{name: "defaults", single: "_", multi: "%", escape: `\`},
		{name: "custom markers", single: "?", multi: "*", escape: "!"},
		{name: "empty escape", single: "_", multi: "%", escape: "", wantErr: true},
		{name: "two character escape", single: "_", multi: "%", escape: "!!", wantErr: true},
		{name: "empty single", single: "", multi: "%", escape: `\`, wantErr: true},
		{name: "single equals multiple", single: "*", multi: "*", escape: `\`, wantErr: true},
		{name: "single equals escape", single: `\`, multi: "%", escape: `\`, wantErr: true},
		{name: "multiple equals escape", single: "_", multi: "!", escape: "!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrammar(tt.single, tt.multi, tt.escape)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGrammarTokenize(t *testing.T) {
	g := DefaultGrammar()

	tests := []struct {
		name  string
		query string
		want  []Token
	}{
		{
			name:  "plain literal",
			query: "東京",
			want:  []Token{{Kind: TokenLiteral, Text: "東京"}},
		},
		{
			name:  "trailing multiple",
			query: "東%",
			want:  []Token{{Kind: TokenLiteral, Text: "東"}, {Kind: TokenMultiple}},
		},
		{
			name:  "single between literals",
			query: "a_b",
			want: []Token{
				{Kind: TokenLiteral, Text: "a"},
				{Kind: TokenSingle},
				{Kind: TokenLiteral, Text: "b"},
			},
		},
		{
			name:  "escaped wildcard is literal",
			query: `100\%`,
			want:  []Token{{Kind: TokenLiteral, Text: "100%"}},
		},
		{
			name:  "escaped escape",
			query: `a\\b`,
			want:  []Token{{Kind: TokenLiteral, Text: `a\b`}},
		},
		{
			name:  "escape before plain char stays literal",
			query: `a\b`,
			want:  []Token{{Kind: TokenLiteral, Text: `a\b`}},
		},
		{
			name:  "dangling escape stays literal",
			query: `ab\`,
			want:  []Token{{Kind: TokenLiteral, Text: `ab\`}},
		},
		{
			name:  "empty query",
			query: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Tokenize(tt.query))
		})
	}
}

func TestGrammarHasWildcards(t *testing.T) {
	g := DefaultGrammar()

	assert.True(t, g.HasWildcards("東%"))
	assert.True(t, g.HasWildcards("a_b"))
	assert.False(t, g.HasWildcards("東京"))
	assert.False(t, g.HasWildcards(`100\%`))
}

func TestGrammarEscapeRoundTrip(t *testing.T) {
	g := DefaultGrammar()

	inputs := []string{
		"plain",
		"with % and _",
		`back\slash`,
		`\%_\\`,
		"",
		"東京_語%",
	}
	for _, s := range inputs {
		escaped := g.Escape(s)
		assert.Equal(t, s, g.Unescape(escaped), "round trip of %q", s)
		assert.False(t, g.HasWildcards(escaped), "escape must neutralize wildcards in %q", s)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
	assert.Equal(t, "東京", escapeLike("東京"))
}

func TestCustomGrammarKeepsLikeEscaping(t *testing.T) {
	g, err := NewGrammar("?", "*", "!")
	require.NoError(t, err)

	tokens := g.Tokenize("a?b%c")
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenSingle, tokens[1].Kind)

	// "%" is literal under this grammar but still a LIKE metacharacter.
	c := Compiler{Grammar: g}
	assert.Equal(t, `a_b\%c`, c.LikePattern(tokens))
}
