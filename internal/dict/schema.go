// Package dict assembles the per-column search strategies appropriate to
// a dictionary schema and exposes lookup operations over a row store.
package dict

import (
	"github.com/hanzikit/cjklex/internal/domain"
	"github.com/hanzikit/cjklex/internal/reading"
	"github.com/hanzikit/cjklex/internal/search"
)

// HeadwordPreference selects which headword variant column lookups use
// for schemas that store both a traditional and a simplified form.
type HeadwordPreference string

const (
	PreferTraditional HeadwordPreference = "t"
	PreferSimplified  HeadwordPreference = "s"
	PreferBoth        HeadwordPreference = "b"
)

// Schema describes a dictionary's column layout and stored reading.
type Schema struct {
	Name string

	// HeadwordColumns holds one column, or two with the traditional form
	// first.
	HeadwordColumns   []string
	ReadingColumn     string
	TranslationColumn string

	// Reading is the system the reading column is written in.
	Reading search.ReadingSpec
	// Delimiter joins reading entities in the column. Empty means the
	// column writes entities contiguously.
	Delimiter string
}

// Built-in schemas, matching the file formats the seeders understand.
var (
	// EDICT is the Japanese-English dictionary format: kana readings,
	// slash-delimited English senses.
	EDICT = Schema{
		Name:              "EDICT",
		HeadwordColumns:   []string{domain.ColHeadword},
		ReadingColumn:     domain.ColReading,
		TranslationColumn: domain.ColTranslation,
		Reading:           search.ReadingSpec{Name: "Kana"},
	}

	// CEDICT is the Chinese-English format: traditional and simplified
	// headwords, numbered Pinyin with "u:" for ü.
	CEDICT = Schema{
		Name:              "CEDICT",
		HeadwordColumns:   []string{domain.ColHeadwordTraditional, domain.ColHeadwordSimplified},
		ReadingColumn:     domain.ColReading,
		TranslationColumn: domain.ColTranslation,
		Reading: search.ReadingSpec{
			Name:    "Pinyin",
			Options: reading.Options{ToneMarks: "numbers", YVowel: "u:"},
		},
		Delimiter: " ",
	}

	// HanDeDict is the Chinese-German CEDICT derivative with loosely
	// packed senses.
	HanDeDict = Schema{
		Name:              "HanDeDict",
		HeadwordColumns:   []string{domain.ColHeadwordTraditional, domain.ColHeadwordSimplified},
		ReadingColumn:     domain.ColReading,
		TranslationColumn: domain.ColTranslation,
		Reading: search.ReadingSpec{
			Name:    "Pinyin",
			Options: reading.Options{ToneMarks: "numbers", YVowel: "u:"},
		},
		Delimiter: " ",
	}

	// CFDICT is the Chinese-French CEDICT derivative.
	CFDICT = Schema{
		Name:              "CFDICT",
		HeadwordColumns:   []string{domain.ColHeadwordTraditional, domain.ColHeadwordSimplified},
		ReadingColumn:     domain.ColReading,
		TranslationColumn: domain.ColTranslation,
		Reading: search.ReadingSpec{
			Name:    "Pinyin",
			Options: reading.Options{ToneMarks: "numbers", YVowel: "u:"},
		},
		Delimiter: " ",
	}
)

// SchemaByName resolves a schema from its format name.
func SchemaByName(name string) (Schema, bool) {
	for _, s := range []Schema{EDICT, CEDICT, HanDeDict, CFDICT} {
		if s.Name == name {
			return s, true
		}
	}
	return Schema{}, false
}

// headwordValue picks the entry column a headword column name refers to.
func headwordValue(e domain.Entry, column string) string {
	if column == domain.ColHeadwordSimplified {
		return e.HeadwordSimplified
	}
	return e.Headword
}
