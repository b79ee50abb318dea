package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanzikit/cjklex/internal/domain"
)

func TestSchemaByName(t *testing.T) {
	for _, name := range []string{"EDICT", "CEDICT", "HanDeDict", "CFDICT"} {
		s, ok := SchemaByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, s.Name)
	}

	_, ok := SchemaByName("WADOKU")
	assert.False(t, ok)
}

func TestSchemaShapes(t *testing.T) {
	assert.Len(t, EDICT.HeadwordColumns, 1)
	assert.Empty(t, EDICT.Delimiter, "kana entities are written contiguously")

	for _, s := range []Schema{CEDICT, HanDeDict, CFDICT} {
		assert.Equal(t, []string{domain.ColHeadwordTraditional, domain.ColHeadwordSimplified}, s.HeadwordColumns, s.Name)
		assert.Equal(t, " ", s.Delimiter, s.Name)
		assert.Equal(t, "Pinyin", s.Reading.Name, s.Name)
	}
}

func TestHeadwordValue(t *testing.T) {
	e := domain.Entry{Headword: "東京", HeadwordSimplified: "东京"}

	assert.Equal(t, "東京", headwordValue(e, domain.ColHeadwordTraditional))
	assert.Equal(t, "东京", headwordValue(e, domain.ColHeadwordSimplified))
	assert.Equal(t, "東京", headwordValue(e, domain.ColHeadword))
}
