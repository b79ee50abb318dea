package search

import (
	"fmt"
	"regexp"
	"strings"
)

// Translation columns store several slash-delimited senses with optional
// parenthetical qualifiers, e.g. "/sense one (qualifier)/sense two/".
// The strategies below differ only in the template wrapped around the
// compiled query: what may precede the match inside a sense and which
// characters may terminate it.

// qualifierGuard skips whitespace and parenthetical qualifiers between
// the sense delimiter and the matched text.
const qualifierGuard = `((\s+)|(\([^)]+\)))*`

// translationTemplate is the delimiter-aware pattern a translation
// strategy wraps around the compiled query tokens.
type translationTemplate struct {
	// leading precedes the query body; bareLeading replaces it when the
	// query itself starts with a multiple wildcard.
	leading     string
	bareLeading string
	// trailing follows the query body; bareTrailing replaces it when the
	// query ends with a multiple wildcard.
	trailing     string
	bareTrailing string
}

// simpleTemplate terminates a sense at the next slash only.
var simpleTemplate = translationTemplate{
	leading:      "/" + qualifierGuard,
	bareLeading:  "/",
	trailing:     qualifierGuard + "/",
	bareTrailing: "/",
}

// cedictTemplate additionally accepts a comma, for fields that pack
// several related senses into one slash-delimited run.
var cedictTemplate = translationTemplate{
	leading:      "/" + qualifierGuard,
	bareLeading:  "/",
	trailing:     qualifierGuard + `[/,]`,
	bareTrailing: `[/,]`,
}

// hanDeDictTemplate allows a leading sense fragment before the match and
// terminates at slash or sentence punctuation.
var hanDeDictTemplate = translationTemplate{
	leading:      `/((\([^)]+\)|[^(/])+\s+)?(\([^)]+\)\s+)?`,
	bareLeading:  "/",
	trailing:     qualifierGuard + `(\([^)]+\))?[/,;.?!]`,
	bareTrailing: `[/,;.?!]`,
}

// ExactTranslation matches only when the query equals a whole sense
// between two delimiter slashes.
type ExactTranslation struct {
	CaseInsensitive bool
}

func (s ExactTranslation) fold(v string) string {
	if s.CaseInsensitive {
		return strings.ToLower(v)
	}
	return v
}

func (s ExactTranslation) CoarseFilter(column, query string) (Predicate, error) {
	pattern := "%/" + escapeLike(s.fold(query)) + "/%"
	return Like{Column: column, Pattern: pattern, Escape: likeEscape, CaseInsensitive: s.CaseInsensitive}, nil
}

func (s ExactTranslation) Verifier(query string) (func(string) bool, error) {
	want := "/" + s.fold(query) + "/"
	return func(value string) bool {
		return strings.Contains(s.fold(value), want)
	}, nil
}

// WildcardTranslation matches a query, possibly wildcard-bearing, inside
// one sense of a translation field according to its template.
type WildcardTranslation struct {
	Compiler Compiler
	Template translationTemplate

	cache memo[*regexp.Regexp]
}

// NewSimpleTranslation terminates senses at slashes only.
func NewSimpleTranslation(c Compiler) *WildcardTranslation {
	return &WildcardTranslation{Compiler: c, Template: simpleTemplate}
}

// NewCEDICTTranslation also accepts a comma as sense terminator.
func NewCEDICTTranslation(c Compiler) *WildcardTranslation {
	return &WildcardTranslation{Compiler: c, Template: cedictTemplate}
}

// NewHanDeDictTranslation accepts leading sense fragments and sentence
// punctuation as terminators.
func NewHanDeDictTranslation(c Compiler) *WildcardTranslation {
	return &WildcardTranslation{Compiler: c, Template: hanDeDictTemplate}
}

func (s *WildcardTranslation) CoarseFilter(column, query string) (Predicate, error) {
	tokens := s.Compiler.Grammar.Tokenize(query)
	pattern := "%" + s.Compiler.LikePattern(tokens) + "%"
	return Like{
		Column:          column,
		Pattern:         pattern,
		Escape:          likeEscape,
		CaseInsensitive: s.Compiler.CaseInsensitive,
	}, nil
}

func (s *WildcardTranslation) Verifier(query string) (func(string) bool, error) {
	re, err := s.pattern(query)
	if err != nil {
		return nil, err
	}
	return re.MatchString, nil
}

func (s *WildcardTranslation) pattern(query string) (*regexp.Regexp, error) {
	if re, ok := s.cache.get(query); ok {
		return re, nil
	}

	tokens := s.Compiler.Grammar.Tokenize(query)
	// A single wildcard may not cross a sense delimiter.
	body := s.Compiler.RegexBody(tokens, "[^/]")

	leading := s.Template.leading
	if len(tokens) > 0 && tokens[0].Kind == TokenMultiple {
		// The explicit wildcard subsumes the qualifier guard.
		leading = s.Template.bareLeading
	}
	trailing := s.Template.trailing
	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == TokenMultiple {
		trailing = s.Template.bareTrailing
	}

	expr := leading + body + trailing
	if s.Compiler.CaseInsensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile translation pattern for %q: %w", query, err)
	}
	return s.cache.put(query, re), nil
}
