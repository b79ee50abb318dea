package dict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hanzikit/cjklex/internal/domain"
	"github.com/hanzikit/cjklex/internal/reading"
	"github.com/hanzikit/cjklex/internal/search"
)

// Store is the row-store collaborator. It applies the coarse filter
// during the bulk scan; the dictionary verifies the survivors.
type Store interface {
	Search(ctx context.Context, dictionary string, filter search.Predicate) ([]domain.Entry, error)
}

// Options is the recognized search configuration surface.
type Options struct {
	SingleWildcard   string // default "_"
	MultipleWildcard string // default "%"
	Escape           string // default "\"
	CaseInsensitive  bool
	FullwidthFold    bool

	// HeadwordPreference applies to two-headword schemas, PreferBoth
	// when empty.
	HeadwordPreference HeadwordPreference

	// EnumerateTones spells out tonal variants instead of emitting tone
	// wildcards, for stores that only support equality predicates.
	EnumerateTones bool
}

func (o Options) grammar() (search.Grammar, error) {
	single, multi, escape := o.SingleWildcard, o.MultipleWildcard, o.Escape
	if single == "" {
		single = "_"
	}
	if multi == "" {
		multi = "%"
	}
	if escape == "" {
		escape = `\`
	}
	return search.NewGrammar(single, multi, escape)
}

func (o Options) preference() HeadwordPreference {
	if o.HeadwordPreference == "" {
		return PreferBoth
	}
	return o.HeadwordPreference
}

// Dictionary answers lookups against one lexicon using the strategies
// assembled for its schema. Instances hold per-strategy memo state and
// are not safe for concurrent use with differing queries.
type Dictionary struct {
	schema     Schema
	store      Store
	preference HeadwordPreference
	log        *slog.Logger

	headword    search.Strategy
	readingCol  search.Strategy
	translation search.Strategy
	mixed       search.MixedStrategy
}

// New assembles a dictionary for a schema with the format's default
// strategy selection: wildcard headwords, delimiter-aware translations
// and, for tonal readings, tonal completion plus the mixed matcher.
func New(schema Schema, store Store, factory *reading.Factory, opts Options, log *slog.Logger) (*Dictionary, error) {
	grammar, err := opts.grammar()
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", schema.Name, err)
	}
	if log == nil {
		log = slog.Default()
	}

	headwordCompiler := search.Compiler{
		Grammar:         grammar,
		CaseInsensitive: opts.CaseInsensitive,
		FullwidthFold:   opts.FullwidthFold,
	}
	textCompiler := search.Compiler{
		Grammar:         grammar,
		CaseInsensitive: opts.CaseInsensitive,
	}
	engine := search.ReadingEngine{
		Factory:   factory,
		Source:    schema.Reading,
		Target:    schema.Reading,
		Delimiter: schema.Delimiter,
	}

	d := &Dictionary{
		schema:     schema,
		store:      store,
		preference: opts.preference(),
		log:        log.With("dictionary", schema.Name),
		headword:   search.NewWildcardHeadword(headwordCompiler),
	}

	tonal, err := readingHasTones(factory, schema.Reading)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", schema.Name, err)
	}
	if tonal {
		d.readingCol = search.NewTonelessReading(engine, textCompiler, opts.EnumerateTones)
		d.mixed = search.NewMixedReading(engine, headwordCompiler, textCompiler, true)
	} else {
		d.readingCol = search.NewWildcardReading(engine, textCompiler)
	}

	switch schema.Name {
	case CEDICT.Name, CFDICT.Name:
		d.translation = search.NewCEDICTTranslation(textCompiler)
	case HanDeDict.Name:
		d.translation = search.NewHanDeDictTranslation(textCompiler)
	default:
		d.translation = search.NewSimpleTranslation(textCompiler)
	}

	return d, nil
}

func readingHasTones(factory *reading.Factory, spec search.ReadingSpec) (bool, error) {
	op, err := factory.Operator(spec.Name, spec.Options)
	if err != nil {
		return false, err
	}
	return len(op.Tones()) > 0, nil
}

// Schema returns the schema the dictionary was assembled for.
func (d *Dictionary) Schema() Schema { return d.schema }

// ForHeadword returns entries whose headword matches the query.
func (d *Dictionary) ForHeadword(ctx context.Context, query string) ([]domain.Entry, error) {
	clauses, verify, err := d.headwordContribution(query)
	if err != nil {
		return nil, err
	}
	return d.run(ctx, clauses, verify)
}

// ForReading returns entries whose reading matches the query, applying
// tonal completion when the schema's reading supports it.
func (d *Dictionary) ForReading(ctx context.Context, query string) ([]domain.Entry, error) {
	clauses, verify, err := d.readingContribution(query)
	if err != nil {
		return nil, err
	}
	return d.run(ctx, clauses, verify)
}

// ForTranslation returns entries one of whose senses matches the query.
func (d *Dictionary) ForTranslation(ctx context.Context, query string) ([]domain.Entry, error) {
	filter, err := d.translation.CoarseFilter(d.schema.TranslationColumn, query)
	if err != nil {
		return nil, err
	}
	verify, err := d.translation.Verifier(query)
	if err != nil {
		return nil, err
	}
	return d.run(ctx, []search.Predicate{filter}, func(e domain.Entry) bool {
		return verify(e.Translation)
	})
}

// For matches the query against headword and reading at once, including
// mixed script/phonetic queries. Contributions of the individual
// strategies are united; a strategy whose compilation fails contributes
// nothing instead of failing the lookup.
func (d *Dictionary) For(ctx context.Context, query string) ([]domain.Entry, error) {
	var clauses []search.Predicate
	var verifiers []func(domain.Entry) bool

	add := func(kind string, c []search.Predicate, v func(domain.Entry) bool, err error) error {
		if err != nil {
			if errors.Is(err, domain.ErrConversion) || errors.Is(err, domain.ErrDecomposition) {
				d.log.Debug("strategy contributes nothing", "strategy", kind, "error", err)
				return nil
			}
			return err
		}
		if v == nil {
			return nil
		}
		clauses = append(clauses, c...)
		verifiers = append(verifiers, v)
		return nil
	}

	hc, hv, err := d.headwordContribution(query)
	if err := add("headword", hc, hv, err); err != nil {
		return nil, err
	}
	rc, rv, err := d.readingContribution(query)
	if err := add("reading", rc, rv, err); err != nil {
		return nil, err
	}
	if d.mixed != nil {
		mc, mv, err := d.mixedContribution(query)
		if err := add("mixed", mc, mv, err); err != nil {
			return nil, err
		}
	}

	return d.run(ctx, clauses, func(e domain.Entry) bool {
		for _, v := range verifiers {
			if v(e) {
				return true
			}
		}
		return false
	})
}

func (d *Dictionary) headwordContribution(query string) ([]search.Predicate, func(domain.Entry) bool, error) {
	verify, err := d.headword.Verifier(query)
	if err != nil {
		return nil, nil, err
	}

	var clauses []search.Predicate
	for _, column := range d.headwordColumns() {
		filter, err := d.headword.CoarseFilter(column, query)
		if err != nil {
			return nil, nil, err
		}
		clauses = append(clauses, filter)
	}

	columns := d.headwordColumns()
	return clauses, func(e domain.Entry) bool {
		for _, column := range columns {
			if verify(headwordValue(e, column)) {
				return true
			}
		}
		return false
	}, nil
}

func (d *Dictionary) readingContribution(query string) ([]search.Predicate, func(domain.Entry) bool, error) {
	filter, err := d.readingCol.CoarseFilter(d.schema.ReadingColumn, query)
	if err != nil {
		return nil, nil, err
	}
	verify, err := d.readingCol.Verifier(query)
	if err != nil {
		return nil, nil, err
	}
	return []search.Predicate{filter}, func(e domain.Entry) bool {
		return verify(e.Reading)
	}, nil
}

func (d *Dictionary) mixedContribution(query string) ([]search.Predicate, func(domain.Entry) bool, error) {
	verify, err := d.mixed.MixedVerifier(query)
	if err != nil {
		return nil, nil, err
	}
	if verify == nil {
		// No genuine script/phonetic mixture in this query.
		return nil, nil, nil
	}

	var clauses []search.Predicate
	for _, column := range d.headwordColumns() {
		filter, err := d.mixed.CoarseFilterMixed(column, d.schema.ReadingColumn, query)
		if err != nil {
			return nil, nil, err
		}
		if filter != nil {
			clauses = append(clauses, filter)
		}
	}

	columns := d.headwordColumns()
	return clauses, func(e domain.Entry) bool {
		for _, column := range columns {
			if verify(headwordValue(e, column), e.Reading) {
				return true
			}
		}
		return false
	}, nil
}

// headwordColumns applies the headword preference to the schema columns.
func (d *Dictionary) headwordColumns() []string {
	if len(d.schema.HeadwordColumns) < 2 {
		return d.schema.HeadwordColumns
	}
	switch d.preference {
	case PreferTraditional:
		return d.schema.HeadwordColumns[:1]
	case PreferSimplified:
		return d.schema.HeadwordColumns[1:]
	default:
		return d.schema.HeadwordColumns
	}
}

// run executes the two-phase search: coarse clauses united into one store
// scan, then the authoritative verifier over the survivors, deduplicated
// by entry identity.
func (d *Dictionary) run(ctx context.Context, clauses []search.Predicate, verify func(domain.Entry) bool) ([]domain.Entry, error) {
	var filter search.Predicate
	switch len(clauses) {
	case 0:
		return nil, nil
	case 1:
		filter = clauses[0]
	default:
		filter = search.Or(clauses)
	}

	candidates, err := d.store.Search(ctx, d.schema.Name, filter)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", d.schema.Name, err)
	}

	seen := make(map[uuid.UUID]struct{}, len(candidates))
	var matched []domain.Entry
	for _, e := range candidates {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		if verify(e) {
			seen[e.ID] = struct{}{}
			matched = append(matched, e)
		}
	}

	d.log.Debug("lookup finished", "candidates", len(candidates), "matched", len(matched))
	return matched, nil
}
