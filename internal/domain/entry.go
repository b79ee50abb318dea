package domain

import "github.com/google/uuid"

// Column names of a lexicon table. A schema always has exactly one Reading
// and one Translation column and one or two headword columns.
const (
	ColHeadword            = "headword"
	ColHeadwordTraditional = "headword_traditional"
	ColHeadwordSimplified  = "headword_simplified"
	ColReading             = "reading"
	ColTranslation         = "translation"
)

// Entry is one immutable lexicon row. HeadwordSimplified is empty for
// schemas with a single headword form.
type Entry struct {
	ID                 uuid.UUID
	Dictionary         string
	Headword           string // traditional form for two-headword schemas
	HeadwordSimplified string
	Reading            string
	Translation        string
}

// Column returns the value of the named column. For single-headword schemas
// ColHeadword and ColHeadwordTraditional both address the Headword field.
func (e Entry) Column(name string) string {
	switch name {
	case ColHeadword, ColHeadwordTraditional:
		return e.Headword
	case ColHeadwordSimplified:
		return e.HeadwordSimplified
	case ColReading:
		return e.Reading
	case ColTranslation:
		return e.Translation
	default:
		return ""
	}
}
