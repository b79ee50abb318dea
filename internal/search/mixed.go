package search

import (
	"strings"

	"github.com/hanzikit/cjklex/internal/reading"
)

// pairAtom is one position of a mixed search: a headword-side constraint
// zipped with a reading-side constraint. A nil side accepts any value;
// many consumes runs of positions on both sides simultaneously.
type pairAtom struct {
	headChar string // exact headword character, "" for any
	readWant string // exact reading entity, "" for any
	// readPlain accepts any tone of this bare form; overrides readWant.
	readPlain string
	many      bool
}

// MixedReading answers queries that interleave script characters with
// phonetic syllables, e.g. one position given by its glyph and its
// neighbours by pronunciation. A row matches only when its headword
// characters and reading entities agree with the query position for
// position. Queries that come out purely phonetic or purely script are
// left to the single-column strategies and contribute nothing here.
type MixedReading struct {
	Engine   ReadingEngine
	Headword Compiler // folding for headword-side characters
	Reading  Compiler // grammar and folding for the reading side

	// TonalCompletion applies tone-wildcard matching to reading entities
	// whose tone is unspecified.
	TonalCompletion bool

	cache memo[[][]pairAtom]
}

func NewMixedReading(e ReadingEngine, headword, reading Compiler, tonalCompletion bool) *MixedReading {
	return &MixedReading{Engine: e, Headword: headword, Reading: reading, TonalCompletion: tonalCompletion}
}

// pairForms compiles the query into search pair lists, one per admissible
// segmentation that holds a genuine script/phonetic mixture.
func (s *MixedReading) pairForms(query string) ([][]pairAtom, error) {
	if forms, ok := s.cache.get(query); ok {
		return forms, nil
	}

	op, err := s.Engine.targetOperator()
	if err != nil {
		return nil, err
	}

	forms := [][]pairAtom{{}}
	for _, t := range s.Reading.Grammar.Tokenize(query) {
		var options [][]pairAtom
		switch t.Kind {
		case TokenSingle:
			// One unknown position on both sides.
			options = [][]pairAtom{{{}}}
		case TokenMultiple:
			options = [][]pairAtom{{{many: true}}}
		case TokenLiteral:
			converted, err := s.Engine.convertQuery(t.Text)
			if err != nil {
				return nil, err
			}
			for _, entities := range converted {
				var chunk []pairAtom
				for _, entity := range entities {
					if op.IsEntity(entity) {
						chunk = append(chunk, s.readingPair(entity, op))
						continue
					}
					// Non-reading text pins headword characters, one
					// position per character.
					for _, r := range entity {
						chunk = append(chunk, pairAtom{headChar: s.Headword.Fold(string(r))})
					}
				}
				options = append(options, chunk)
			}
		}

		var next [][]pairAtom
		for _, head := range forms {
			for _, tail := range options {
				combined := make([]pairAtom, 0, len(head)+len(tail))
				combined = append(combined, head...)
				combined = append(combined, tail...)
				next = append(next, combined)
			}
		}
		forms = next
	}

	var mixed [][]pairAtom
	for _, form := range forms {
		if s.isMixed(form) {
			mixed = append(mixed, form)
		}
	}
	return s.cache.put(query, mixed), nil
}

func (s *MixedReading) readingPair(entity string, op reading.Operator) pairAtom {
	if s.TonalCompletion {
		plain, tone, err := op.SplitTone(entity)
		if err == nil && tone == reading.NoTone {
			return pairAtom{readPlain: plain}
		}
	}
	return pairAtom{readWant: entity}
}

// isMixed requires at least one reading-pinned and one headword-pinned
// position; anything less is covered by the single-column strategies.
func (s *MixedReading) isMixed(form []pairAtom) bool {
	var hasReading, hasHeadword bool
	for _, p := range form {
		if p.readWant != "" || p.readPlain != "" {
			hasReading = true
		}
		if p.headChar != "" {
			hasHeadword = true
		}
	}
	return hasReading && hasHeadword
}

func (s *MixedReading) CoarseFilterMixed(headwordColumn, readingColumn, query string) (Predicate, error) {
	forms, err := s.pairForms(query)
	if err != nil {
		return nil, err
	}

	var clauses []Predicate
	for _, form := range forms {
		clauses = append(clauses, And{
			Like{
				Column:          headwordColumn,
				Pattern:         s.headwordLike(form),
				Escape:          likeEscape,
				CaseInsensitive: s.Headword.CaseInsensitive,
			},
			Like{
				Column:          readingColumn,
				Pattern:         s.readingLike(form),
				Escape:          likeEscape,
				CaseInsensitive: s.Reading.CaseInsensitive,
			},
		})
	}
	return orOf(clauses), nil
}

func (s *MixedReading) headwordLike(form []pairAtom) string {
	var b strings.Builder
	for _, p := range form {
		switch {
		case p.many:
			b.WriteByte('%')
		case p.headChar != "":
			b.WriteString(escapeLike(p.headChar))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (s *MixedReading) readingLike(form []pairAtom) string {
	var b strings.Builder
	prevMultiple := false
	for i, p := range form {
		if p.many {
			b.WriteByte('%')
			prevMultiple = true
			continue
		}
		if i > 0 && !prevMultiple {
			b.WriteString(s.Engine.Delimiter)
		}
		prevMultiple = false

		switch {
		case p.readPlain != "":
			b.WriteString(escapeLike(s.Reading.Fold(p.readPlain)))
			b.WriteByte('%')
		case p.readWant != "":
			b.WriteString(escapeLike(s.Reading.Fold(p.readWant)))
		default:
			b.WriteString("_%")
		}
	}
	return b.String()
}

// position is one zipped candidate slot: a headword character paired with
// its reading entity.
type position struct {
	head string
	read string
}

func (s *MixedReading) MixedVerifier(query string) (func(headword, reading string) bool, error) {
	forms, err := s.pairForms(query)
	if err != nil {
		return nil, err
	}
	if len(forms) == 0 {
		return nil, nil
	}
	op, err := s.Engine.targetOperator()
	if err != nil {
		return nil, err
	}

	patterns := make([][]atom[position], 0, len(forms))
	for _, form := range forms {
		patterns = append(patterns, s.pattern(form, op))
	}

	return func(headword, readingValue string) bool {
		chars := []rune(headword)
		entities := s.Engine.splitColumn(readingValue)
		// A malformed row whose headword and reading disagree in length
		// cannot match; it must not fail either.
		if len(chars) != len(entities) {
			return false
		}
		zipped := make([]position, len(chars))
		for i, r := range chars {
			zipped[i] = position{head: s.Headword.Fold(string(r)), read: entities[i]}
		}
		for _, p := range patterns {
			if matchSequence(p, zipped) {
				return true
			}
		}
		return false
	}, nil
}

func (s *MixedReading) pattern(form []pairAtom, op reading.Operator) []atom[position] {
	out := make([]atom[position], 0, len(form))
	for _, p := range form {
		if p.many {
			out = append(out, atom[position]{many: true})
			continue
		}
		p := p
		out = append(out, atom[position]{match: func(pos position) bool {
			if p.headChar != "" && pos.head != p.headChar {
				return false
			}
			switch {
			case p.readPlain != "":
				plain, _, err := op.SplitTone(pos.read)
				if err != nil {
					return false
				}
				if !s.readingEqual(plain, p.readPlain) {
					return false
				}
			case p.readWant != "":
				if !s.readingEqual(pos.read, p.readWant) {
					return false
				}
			}
			return true
		}})
	}
	return out
}

func (s *MixedReading) readingEqual(got, want string) bool {
	if s.Reading.CaseInsensitive {
		return strings.EqualFold(got, want)
	}
	return got == want
}
