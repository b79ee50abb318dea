package search

import (
	"fmt"
	"strings"

	"github.com/hanzikit/cjklex/internal/domain"
	"github.com/hanzikit/cjklex/internal/reading"
)

// ReadingSpec names a reading system together with its convention options.
type ReadingSpec struct {
	Name    string
	Options reading.Options
}

// ReadingEngine binds the reading factory to the source reading queries
// are written in and the target reading the dictionary column stores.
type ReadingEngine struct {
	Factory *reading.Factory
	Source  ReadingSpec
	Target  ReadingSpec
	// Delimiter joins entities in the reading column. Empty means the
	// column writes entities contiguously, as kana columns do.
	Delimiter string
}

func (e ReadingEngine) targetOperator() (reading.Operator, error) {
	return e.Factory.Operator(e.Target.Name, e.Target.Options)
}

// convertQuery decomposes text under the source reading and re-expresses
// every admissible segmentation in the target reading. Segmentations that
// fail conversion are discarded; when none survive the whole query is
// unanswerable and domain.ErrConversion is returned.
func (e ReadingEngine) convertQuery(text string) ([][]string, error) {
	src, err := e.Factory.Operator(e.Source.Name, e.Source.Options)
	if err != nil {
		return nil, err
	}
	decompositions, err := src.Decompose(text)
	if err != nil {
		return nil, err
	}

	var converted [][]string
	seen := map[string]struct{}{}
	for _, entities := range decompositions {
		target, err := e.Factory.Convert(entities, e.Source.Name, e.Source.Options, e.Target.Name, e.Target.Options)
		if err != nil {
			continue
		}
		key := strings.Join(target, "\x00")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		converted = append(converted, target)
	}
	if len(converted) == 0 {
		return nil, fmt.Errorf("no segmentation of %q converts to %s: %w",
			text, e.Target.Name, domain.ErrConversion)
	}
	return converted, nil
}

// splitColumn breaks a stored reading column into its entity tokens. A
// delimited column splits on the delimiter; a contiguous column is
// tokenized by the target reading itself, falling back to single runes
// for text it cannot segment.
func (e ReadingEngine) splitColumn(value string) []string {
	if e.Delimiter == "" {
		if op, err := e.targetOperator(); err == nil {
			if decs, err := op.Decompose(value); err == nil && len(decs) > 0 {
				return decs[0]
			}
		}
		return strings.Split(value, "")
	}

	fields := strings.Split(value, e.Delimiter)
	tokens := fields[:0]
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// SimpleReading matches the reading column by equality with any
// admissible re-expression of the query in the dictionary's reading.
type SimpleReading struct {
	Engine          ReadingEngine
	CaseInsensitive bool

	cache memo[[]string]
}

func NewSimpleReading(e ReadingEngine) *SimpleReading {
	return &SimpleReading{Engine: e}
}

func (s *SimpleReading) candidates(query string) ([]string, error) {
	if forms, ok := s.cache.get(query); ok {
		return forms, nil
	}
	converted, err := s.Engine.convertQuery(query)
	if err != nil {
		return nil, err
	}
	forms := make([]string, 0, len(converted))
	for _, entities := range converted {
		forms = append(forms, strings.Join(entities, s.Engine.Delimiter))
	}
	return s.cache.put(query, forms), nil
}

func (s *SimpleReading) CoarseFilter(column, query string) (Predicate, error) {
	forms, err := s.candidates(query)
	if err != nil {
		return nil, err
	}
	clauses := make([]Predicate, 0, len(forms))
	for _, f := range forms {
		clauses = append(clauses, Equals{Column: column, Value: f, CaseInsensitive: s.CaseInsensitive})
	}
	return orOf(clauses), nil
}

func (s *SimpleReading) Verifier(query string) (func(string) bool, error) {
	forms, err := s.candidates(query)
	if err != nil {
		return nil, err
	}
	return func(value string) bool {
		for _, f := range forms {
			if s.equal(value, f) {
				return true
			}
		}
		return false
	}, nil
}

func (s *SimpleReading) equal(a, b string) bool {
	if s.CaseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// formAtom is one element of a compiled reading wildcard form.
type formAtom struct {
	kind formAtomKind
	text string // entity or residue text
}

type formAtomKind int

const (
	formEntity   formAtomKind = iota // one converted reading entity
	formResidue                      // text the target reading cannot classify
	formSingle                       // any one entity
	formMultiple                     // any run of entities
)

// WildcardReading matches the reading column against queries that may
// carry wildcards inside or between syllables. Wildcard markers are
// parsed out first; only the literal chunks go through segmentation and
// cross-reading conversion. The verifier works on the column's entity
// tokens, so a wildcard can never straddle a partial entity.
type WildcardReading struct {
	Engine   ReadingEngine
	Compiler Compiler

	// TonalCompletion lets entities whose tone is unspecified match any
	// tone of their bare form.
	TonalCompletion bool
	// Enumerate expands tone-unspecified entities into all tonal variants
	// instead of emitting tone wildcards, for equality-only stores.
	Enumerate bool

	cache memo[[][]formAtom]
}

func NewWildcardReading(e ReadingEngine, c Compiler) *WildcardReading {
	return &WildcardReading{Engine: e, Compiler: c}
}

// NewTonelessReading matches queries that omit tone marks. With enumerate
// set the tonal variants are spelled out for stores that only support
// equality predicates.
func NewTonelessReading(e ReadingEngine, c Compiler, enumerate bool) *WildcardReading {
	return &WildcardReading{Engine: e, Compiler: c, TonalCompletion: true, Enumerate: enumerate}
}

// forms compiles the query into candidate wildcard forms, one per
// surviving segmentation, memoized across the coarse and verify calls.
func (s *WildcardReading) forms(query string) ([][]formAtom, error) {
	if forms, ok := s.cache.get(query); ok {
		return forms, nil
	}

	op, err := s.Engine.targetOperator()
	if err != nil {
		return nil, err
	}

	forms := [][]formAtom{{}}
	for _, t := range s.Compiler.Grammar.Tokenize(query) {
		var options [][]formAtom
		switch t.Kind {
		case TokenSingle:
			options = [][]formAtom{{{kind: formSingle}}}
		case TokenMultiple:
			options = [][]formAtom{{{kind: formMultiple}}}
		case TokenLiteral:
			converted, err := s.Engine.convertQuery(t.Text)
			if err != nil {
				return nil, err
			}
			for _, entities := range converted {
				var chunk []formAtom
				for _, entity := range entities {
					kind := formResidue
					if op.IsEntity(entity) {
						kind = formEntity
					}
					chunk = append(chunk, formAtom{kind: kind, text: entity})
				}
				options = append(options, chunk)
			}
		}

		var next [][]formAtom
		for _, head := range forms {
			for _, tail := range options {
				combined := make([]formAtom, 0, len(head)+len(tail))
				combined = append(combined, head...)
				combined = append(combined, tail...)
				next = append(next, combined)
			}
		}
		forms = next
	}

	return s.cache.put(query, forms), nil
}

// tonelessPlain reports the bare form of an entity whose tone is
// unspecified, when tonal completion applies to it.
func (s *WildcardReading) tonelessPlain(entity string, op reading.Operator) (string, bool) {
	if !s.TonalCompletion {
		return "", false
	}
	plain, tone, err := op.SplitTone(entity)
	if err != nil || tone != reading.NoTone {
		return "", false
	}
	return plain, true
}

func (s *WildcardReading) CoarseFilter(column, query string) (Predicate, error) {
	forms, err := s.forms(query)
	if err != nil {
		return nil, err
	}
	op, err := s.Engine.targetOperator()
	if err != nil {
		return nil, err
	}

	var clauses []Predicate
	for _, form := range forms {
		plain, hasToneless := s.plainForm(form, op)
		switch {
		case plain && !hasToneless:
			clauses = append(clauses, Equals{
				Column:          column,
				Value:           s.joinPlain(form),
				CaseInsensitive: s.Compiler.CaseInsensitive,
			})
		case plain && hasToneless && s.Enumerate:
			for _, value := range s.enumerateForm(form, op) {
				clauses = append(clauses, Equals{
					Column:          column,
					Value:           value,
					CaseInsensitive: s.Compiler.CaseInsensitive,
				})
			}
		default:
			clauses = append(clauses, Like{
				Column:          column,
				Pattern:         s.likePattern(form, op),
				Escape:          likeEscape,
				CaseInsensitive: s.Compiler.CaseInsensitive,
			})
		}
	}
	return orOf(clauses), nil
}

func (s *WildcardReading) Verifier(query string) (func(string) bool, error) {
	forms, err := s.forms(query)
	if err != nil {
		return nil, err
	}
	op, err := s.Engine.targetOperator()
	if err != nil {
		return nil, err
	}

	patterns := make([][]atom[string], 0, len(forms))
	for _, form := range forms {
		patterns = append(patterns, s.pattern(form, op))
	}
	return func(value string) bool {
		tokens := s.Engine.splitColumn(value)
		for _, p := range patterns {
			if matchSequence(p, tokens) {
				return true
			}
		}
		return false
	}, nil
}

// plainForm reports whether the form is free of wildcards, and whether it
// holds tone-unspecified entities.
func (s *WildcardReading) plainForm(form []formAtom, op reading.Operator) (plain, hasToneless bool) {
	plain = true
	for _, a := range form {
		switch a.kind {
		case formSingle, formMultiple:
			plain = false
		case formEntity:
			if _, ok := s.tonelessPlain(a.text, op); ok {
				hasToneless = true
			}
		}
	}
	return plain, hasToneless
}

func (s *WildcardReading) joinPlain(form []formAtom) string {
	parts := make([]string, 0, len(form))
	for _, a := range form {
		parts = append(parts, a.text)
	}
	return strings.Join(parts, s.Engine.Delimiter)
}

// enumerateForm expands every tone-unspecified entity into all tonal
// variants, skipping tones the bare form does not take.
func (s *WildcardReading) enumerateForm(form []formAtom, op reading.Operator) []string {
	variants := [][]string{{}}
	for _, a := range form {
		choices := []string{a.text}
		if plain, ok := s.tonelessPlain(a.text, op); ok {
			choices = choices[:0]
			for _, tone := range op.Tones() {
				entity, err := op.TonalEntity(plain, tone)
				if err != nil {
					continue
				}
				choices = append(choices, entity)
			}
		}
		var next [][]string
		for _, head := range variants {
			for _, c := range choices {
				combined := make([]string, 0, len(head)+1)
				combined = append(combined, head...)
				combined = append(combined, c)
				next = append(next, combined)
			}
		}
		variants = next
	}

	out := make([]string, 0, len(variants))
	for _, v := range variants {
		out = append(out, strings.Join(v, s.Engine.Delimiter))
	}
	return out
}

// likePattern renders a form as a LIKE pattern over the raw column text.
// Entities are joined by the column delimiter except next to a multiple
// wildcard, whose "%" already covers the delimiter.
func (s *WildcardReading) likePattern(form []formAtom, op reading.Operator) string {
	var b strings.Builder
	prevMultiple := false
	for i, a := range form {
		if a.kind == formMultiple {
			b.WriteByte('%')
			prevMultiple = true
			continue
		}
		if i > 0 && !prevMultiple {
			b.WriteString(s.Engine.Delimiter)
		}
		prevMultiple = false

		switch a.kind {
		case formSingle:
			b.WriteString("_%")
		case formEntity:
			if plain, ok := s.tonelessPlain(a.text, op); ok {
				b.WriteString(escapeLike(s.Compiler.Fold(plain)))
				b.WriteByte('%')
			} else {
				b.WriteString(escapeLike(s.Compiler.Fold(a.text)))
			}
		case formResidue:
			b.WriteString(escapeLike(s.Compiler.Fold(a.text)))
		}
	}
	return b.String()
}

// pattern renders a form as a sequence matcher over entity tokens.
func (s *WildcardReading) pattern(form []formAtom, op reading.Operator) []atom[string] {
	out := make([]atom[string], 0, len(form))
	for _, a := range form {
		switch a.kind {
		case formMultiple:
			out = append(out, atom[string]{many: true})
		case formSingle:
			out = append(out, atom[string]{})
		case formEntity:
			if plain, ok := s.tonelessPlain(a.text, op); ok {
				out = append(out, atom[string]{match: s.matchToneless(plain, op)})
				continue
			}
			out = append(out, atom[string]{match: s.matchExact(a.text)})
		case formResidue:
			out = append(out, atom[string]{match: s.matchExact(a.text)})
		}
	}
	return out
}

func (s *WildcardReading) matchExact(want string) func(string) bool {
	if s.Compiler.CaseInsensitive {
		return func(got string) bool { return strings.EqualFold(got, want) }
	}
	return func(got string) bool { return got == want }
}

// matchToneless accepts any entity sharing the bare form, whatever its
// tone, including entities that omit the tone mark themselves.
func (s *WildcardReading) matchToneless(plain string, op reading.Operator) func(string) bool {
	return func(got string) bool {
		gotPlain, _, err := op.SplitTone(got)
		if err != nil {
			return false
		}
		if s.Compiler.CaseInsensitive {
			return strings.EqualFold(gotPlain, plain)
		}
		return gotPlain == plain
	}
}
