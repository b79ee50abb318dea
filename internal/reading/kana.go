package reading

import (
	"fmt"

	"github.com/hanzikit/cjklex/internal/domain"
)

func init() {
	registerBuiltin("Kana", func(opts Options) (Operator, error) {
		return kana{}, nil
	})
}

// kana implements Operator for Japanese kana readings. An entity is one
// kana character with any attached small kana or prolonged sound mark, so
// きょう decomposes to き+ょ and う. Kana carries no tones.
type kana struct{}

func (kana) Name() string { return "Kana" }

func isKana(r rune) bool {
	switch {
	case r >= 0x3041 && r <= 0x3096: // hiragana
		return true
	case r >= 0x30A1 && r <= 0x30FA: // katakana
		return true
	case r == 0x30FC: // prolonged sound mark
		return true
	}
	return false
}

// isSmallKana reports whether the rune attaches to the preceding entity.
func isSmallKana(r rune) bool {
	switch r {
	case 'ぁ', 'ぃ', 'ぅ', 'ぇ', 'ぉ', 'ゃ', 'ゅ', 'ょ', 'ゎ',
		'ァ', 'ィ', 'ゥ', 'ェ', 'ォ', 'ャ', 'ュ', 'ョ', 'ヮ',
		0x30FC:
		return true
	}
	return false
}

func (kana) IsEntity(token string) bool {
	runes := []rune(token)
	if len(runes) == 0 {
		return false
	}
	if !isKana(runes[0]) || isSmallKana(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !isSmallKana(r) {
			return false
		}
	}
	return true
}

func (k kana) Decompose(s string) ([][]string, error) {
	parts := splitRuns(s, isKana)

	var tokens []string
	for _, part := range parts {
		if !part.reading {
			tokens = append(tokens, part.text)
			continue
		}
		var current []rune
		for _, r := range part.text {
			if len(current) > 0 && !isSmallKana(r) {
				tokens = append(tokens, string(current))
				current = current[:0]
			}
			current = append(current, r)
		}
		if len(current) > 0 {
			tokens = append(tokens, string(current))
		}
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("decompose %q: %w", s, domain.ErrDecomposition)
	}
	return [][]string{tokens}, nil
}

func (kana) SplitTone(entity string) (string, Tone, error) {
	return "", NoTone, fmt.Errorf("kana has no tones: %w", domain.ErrUnsupported)
}

func (kana) Tones() []Tone { return nil }

func (kana) TonalEntity(plain string, tone Tone) (string, error) {
	return "", fmt.Errorf("kana has no tones: %w", domain.ErrUnsupported)
}
