// Package reading provides the phonetic reading engine consumed by the
// search strategies: segmentation of romanized strings into syllable
// entities, tone handling and conversion between reading conventions.
package reading

import (
	"errors"
	"fmt"

	"github.com/hanzikit/cjklex/internal/domain"
)

// Tone identifies a tone of a tonal reading. NoTone marks absent tone
// information (e.g. a numbered Pinyin syllable without a tone digit).
type Tone int

// NoTone is the "tone unknown" value.
const NoTone Tone = 0

// Options select a concrete convention of a named reading. The zero value
// asks for the reading's default convention.
type Options struct {
	// ToneMarks is the tone notation: "numbers" or "diacritics" for
	// readings that distinguish them. Empty selects the reading default.
	ToneMarks string

	// YVowel is the textual representation of ü, e.g. "u:" in CEDICT
	// source data. Empty selects "ü".
	YVowel string
}

// Fingerprint returns a stable key for memoization.
func (o Options) Fingerprint() string {
	return o.ToneMarks + "|" + o.YVowel
}

// Operator is the capability contract of one (reading, options) pair.
// Implementations are stateless and safe for concurrent use.
type Operator interface {
	// Name returns the reading's name, e.g. "Pinyin".
	Name() string

	// Decompose breaks a string into all admissible entity sequences.
	// Runs the reading cannot parse are kept as residue tokens so callers
	// can treat them as non-reading content. Returns
	// domain.ErrDecomposition if nothing can be derived at all.
	Decompose(s string) ([][]string, error)

	// IsEntity reports whether the token is a well-formed reading entity.
	IsEntity(token string) bool

	// SplitTone splits an entity into its plain form and tone. A missing
	// tone mark yields NoTone. Returns domain.ErrUnsupported for readings
	// without tones and domain.ErrInvalidEntity for malformed entities.
	SplitTone(entity string) (plain string, tone Tone, err error)

	// Tones lists the tones the reading writes, including NoTone when the
	// convention permits omitting the tone mark.
	Tones() []Tone

	// TonalEntity synthesizes the entity for a plain form and tone.
	// Returns domain.ErrInvalidEntity when the combination does not occur.
	TonalEntity(plain string, tone Tone) (string, error)
}

// Factory resolves named readings and converts entities between them.
type Factory struct {
	builders map[string]func(Options) (Operator, error)
}

// NewFactory returns a Factory with all built-in readings registered.
func NewFactory() *Factory {
	f := &Factory{builders: map[string]func(Options) (Operator, error){}}
	for name, builder := range builtins {
		f.builders[name] = builder
	}
	return f
}

// Register adds a reading under the given name, replacing any previous one.
func (f *Factory) Register(name string, builder func(Options) (Operator, error)) {
	f.builders[name] = builder
}

// Operator returns the operator for a named reading and options.
func (f *Factory) Operator(name string, opts Options) (Operator, error) {
	builder, ok := f.builders[name]
	if !ok {
		return nil, fmt.Errorf("reading %q: %w", name, domain.ErrUnsupported)
	}
	return builder(opts)
}

// Convert re-expresses entities of one reading in another. Entities the
// source reading does not recognise pass through unchanged; they are
// residue the caller decides about. Conversion within the same reading
// and options is the identity. Returns domain.ErrConversion when a
// recognised entity has no representation in the target reading.
func (f *Factory) Convert(entities []string, fromName string, fromOpts Options, toName string, toOpts Options) ([]string, error) {
	from, err := f.Operator(fromName, fromOpts)
	if err != nil {
		return nil, err
	}
	if fromName == toName && fromOpts.Fingerprint() == toOpts.Fingerprint() {
		converted := make([]string, len(entities))
		copy(converted, entities)
		return converted, nil
	}
	to, err := f.Operator(toName, toOpts)
	if err != nil {
		return nil, err
	}

	converted := make([]string, 0, len(entities))
	for _, entity := range entities {
		if !from.IsEntity(entity) {
			converted = append(converted, entity)
			continue
		}

		plain, tone, err := from.SplitTone(entity)
		if errors.Is(err, domain.ErrUnsupported) {
			// A toneless reading has no tone to re-express.
			converted = append(converted, entity)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("convert %q from %s to %s: %w", entity, fromName, toName, domain.ErrConversion)
		}
		target, err := to.TonalEntity(plain, tone)
		if err != nil {
			return nil, fmt.Errorf("convert %q from %s to %s: %w", entity, fromName, toName, domain.ErrConversion)
		}
		converted = append(converted, target)
	}

	return converted, nil
}

// builtins maps reading names to operator constructors. Populated by the
// init functions of the concrete operators.
var builtins = map[string]func(Options) (Operator, error){}

func registerBuiltin(name string, builder func(Options) (Operator, error)) {
	builtins[name] = builder
}
