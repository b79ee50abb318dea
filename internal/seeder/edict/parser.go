// Package edict parses EDICT-format Japanese dictionary files into lexicon
// entries. Pure function: file path in, domain structs out. No database
// dependencies.
package edict

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hanzikit/cjklex/internal/domain"
)

var errSkipLine = errors.New("skip line")

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines int
	Skipped    int
	Parsed     int
}

// ParseResult holds the parsed entries of one file.
type ParseResult struct {
	Entries []domain.Entry
	Stats   Stats
}

// Parse reads an EDICT file and returns its entries tagged with the given
// dictionary name. Line format:
//
//	頭 [あたま] /(n) head/brain/
//	ああ /(int) like that/that way/
//
// Kana-only entries omit the bracketed reading; the headword then doubles
// as the reading. The self-describing header entry on the first line is
// skipped.
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

		entry, err := parseLine(scanner.Text(), dictionary)
		if errors.Is(err, errSkipLine) {
			result.Stats.Skipped++
			continue
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("line %d: %w", result.Stats.TotalLines, err)
		}

		result.Stats.Parsed++
		result.Entries = append(result.Entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scanner error: %w", err)
	}

	return result, nil
}

func parseLine(line, dictionary string) (domain.Entry, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.Entry{}, errSkipLine
	}

	slash := strings.Index(line, "/")
	if slash <= 0 {
		return domain.Entry{}, errSkipLine
	}

	translation := strings.TrimSpace(line[slash:])
	if !strings.HasSuffix(translation, "/") {
		return domain.Entry{}, errSkipLine
	}
	// The first line of an EDICT file describes the file itself.
	if strings.Contains(translation, "/EDICT") {
		return domain.Entry{}, errSkipLine
	}

	headPart := strings.TrimSpace(line[:slash])
	headword := headPart
	reading := ""

	if open := strings.Index(headPart, "["); open >= 0 {
		close := strings.Index(headPart, "]")
		if close < open {
			return domain.Entry{}, errSkipLine
		}
		headword = strings.TrimSpace(headPart[:open])
		reading = strings.TrimSpace(headPart[open+1 : close])
	}
	if headword == "" {
		return domain.Entry{}, errSkipLine
	}
	if reading == "" {
		// Kana-only headword, readable as written.
		reading = headword
	}

	return domain.Entry{
		Dictionary:  dictionary,
		Headword:    headword,
		Reading:     reading,
		Translation: translation,
	}, nil
}
