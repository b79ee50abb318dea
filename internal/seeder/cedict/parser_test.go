package cedict

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
	result, err := Parse(testdataPath(t, "cedict_sample.u8"), "CEDICT")
	require.NoError(t, err)

	assert.Equal(t, 8, result.Stats.TotalLines)
	assert.Equal(t, 5, result.Stats.Parsed)
	assert.Equal(t, 3, result.Stats.Skipped) // two comments, one orphan line
	assert.Equal(t, 1, result.Stats.Synthetic)
	require.Len(t, result.Entries, 5)

	first := result.Entries[0]
	assert.Equal(t, "CEDICT", first.Dictionary)
	assert.Equal(t, "傳統", first.Headword)
	assert.Equal(t, "传统", first.HeadwordSimplified)
	assert.Equal(t, "chuan2 tong3", first.Reading)
	assert.Equal(t, "/tradition/convention/", first.Translation)
}

func TestParse_SyntheticReading(t *testing.T) {
	result, err := Parse(testdataPath(t, "cedict_sample.u8"), "CEDICT")
	require.NoError(t, err)

	var found bool
	for _, e := range result.Entries {
		if e.Headword == "知道" {
			found = true
			assert.Equal(t, "zhi1 dao4", e.Reading)
		}
	}
	assert.True(t, found, "entry with empty reading field should survive via synthesis")
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(testdataPath(t, "no_such_file.u8"), "CEDICT")
	require.Error(t, err)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		skip bool
	}{
		{"comment", "# CC-CEDICT", true},
		{"blank", "   ", true},
		{"no senses", "傳統 传统 [chuan2 tong3]", true},
		{"single headword", "傳統 [chuan2 tong3] /tradition/", true},
		{"unterminated senses", "傳統 传统 [chuan2 tong3] /tradition", true},
		{"unterminated reading", "傳統 传统 [chuan2 tong3 /tradition/", true},
		{"regular entry", "傳統 传统 [chuan2 tong3] /tradition/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseLine(tt.line, "CEDICT")
			if tt.skip {
				assert.ErrorIs(t, err, errSkipLine)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLine_UmlautReading(t *testing.T) {
	entry, synthetic, err := parseLine("女 女 [nu:3] /female/woman/", "CEDICT")
	require.NoError(t, err)
	assert.False(t, synthetic)
	assert.Equal(t, "nu:3", entry.Reading)
}
