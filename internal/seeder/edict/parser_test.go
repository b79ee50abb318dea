package edict

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestParse(t *testing.T) {
	result, err := Parse(testdataPath(t, "edict_sample"), "EDICT")
	require.NoError(t, err)

	assert.Equal(t, 6, result.Stats.TotalLines)
	assert.Equal(t, 4, result.Stats.Parsed)
	assert.Equal(t, 2, result.Stats.Skipped) // header and broken line
	require.Len(t, result.Entries, 4)

	first := result.Entries[0]
	assert.Equal(t, "EDICT", first.Dictionary)
	assert.Equal(t, "頭", first.Headword)
	assert.Empty(t, first.HeadwordSimplified)
	assert.Equal(t, "あたま", first.Reading)
	assert.Equal(t, "/(n) head/(P)/", first.Translation)
}

func TestParse_KanaOnlyHeadword(t *testing.T) {
	result, err := Parse(testdataPath(t, "edict_sample"), "EDICT")
	require.NoError(t, err)

	var found bool
	for _, e := range result.Entries {
		if e.Headword == "ああ" {
			found = true
			assert.Equal(t, "ああ", e.Reading, "kana headword should double as the reading")
		}
	}
	assert.True(t, found)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(testdataPath(t, "no_such_file"), "EDICT")
	require.Error(t, err)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		skip bool
	}{
		{"blank", "", true},
		{"no senses", "頭 [あたま]", true},
		{"unterminated senses", "頭 [あたま] /(n) head", true},
		{"header entry", "　？？？ /EDICT Japanese-English Dictionary File/", true},
		{"leading slash only", "/orphan/", true},
		{"regular entry", "頭 [あたま] /(n) head/", false},
		{"kana only", "ああ /(int) like that/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLine(tt.line, "EDICT")
			if tt.skip {
				assert.ErrorIs(t, err, errSkipLine)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
