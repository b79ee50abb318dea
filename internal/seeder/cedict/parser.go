// Package cedict parses CEDICT-family dictionary files (CEDICT, HanDeDict,
// CFDICT) into lexicon entries. Pure function: file path in, domain structs
// out. No database dependencies.
package cedict

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mozillazg/go-pinyin"

	"github.com/hanzikit/cjklex/internal/domain"
)

// errSkipLine marks lines that carry no entry (comments, blanks, malformed
// rows). The parser counts them and moves on.
var errSkipLine = errors.New("skip line")

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines int
	Skipped    int
	Parsed     int
	Synthetic  int // readings recovered from the headword
}

// ParseResult holds the parsed entries of one file.
type ParseResult struct {
	Entries []domain.Entry
	Stats   Stats
}

// Parse reads a CEDICT-format file and returns its entries tagged with the
// given dictionary name. Line format:
//
//	傳統 传统 [chuan2 tong3] /tradition/convention/
//
// Lines starting with '#' are comments. A missing or empty reading field is
// synthesized from the simplified headword where possible.
func Parse(filePath, dictionary string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var result ParseResult

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		result.Stats.TotalLines++

		entry, synthetic, err := parseLine(scanner.Text(), dictionary)
		if errors.Is(err, errSkipLine) {
			result.Stats.Skipped++
			continue
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("line %d: %w", result.Stats.TotalLines, err)
		}

		if synthetic {
			result.Stats.Synthetic++
		}
		result.Stats.Parsed++
		result.Entries = append(result.Entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scanner error: %w", err)
	}

	return result, nil
}

// parseLine splits one row into traditional headword, simplified headword,
// bracketed reading, and the slash-delimited translation block. The
// translation keeps its delimiters so sense-aware matching can anchor on
// them later.
func parseLine(line, dictionary string) (domain.Entry, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return domain.Entry{}, false, errSkipLine
	}

	open := strings.Index(line, "[")
	slash := strings.Index(line, "/")
	if slash < 0 {
		return domain.Entry{}, false, errSkipLine
	}

	var headPart, readingPart string
	if open >= 0 && open < slash {
		close := strings.Index(line[open:], "]")
		if close < 0 {
			return domain.Entry{}, false, errSkipLine
		}
		headPart = line[:open]
		readingPart = strings.TrimSpace(line[open+1 : open+close])
	} else {
		headPart = line[:slash]
	}

	heads := strings.Fields(headPart)
	if len(heads) != 2 {
		return domain.Entry{}, false, errSkipLine
	}

	translation := strings.TrimSpace(line[slash:])
	if !strings.HasSuffix(translation, "/") {
		return domain.Entry{}, false, errSkipLine
	}

	synthetic := false
	if readingPart == "" {
		var err error
		readingPart, err = synthesizeReading(heads[1])
		if err != nil {
			return domain.Entry{}, false, errSkipLine
		}
		synthetic = true
	}

	return domain.Entry{
		Dictionary:         dictionary,
		Headword:           heads[0],
		HeadwordSimplified: heads[1],
		Reading:            readingPart,
		Translation:        translation,
	}, synthetic, nil
}

// synthesizeReading derives a numbered Pinyin reading from a simplified
// headword. Fails when any character has no Pinyin reading, such as Latin
// letters in brand names.
func synthesizeReading(headword string) (string, error) {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone3

	syllables := pinyin.Pinyin(headword, args)
	if len(syllables) != len([]rune(headword)) {
		return "", fmt.Errorf("no reading for %q", headword)
	}

	parts := make([]string, 0, len(syllables))
	for _, s := range syllables {
		if len(s) == 0 || s[0] == "" {
			return "", fmt.Errorf("no reading for %q", headword)
		}
		parts = append(parts, s[0])
	}
	return strings.Join(parts, " "), nil
}
