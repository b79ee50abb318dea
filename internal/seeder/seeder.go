// Package seeder loads dictionary files into the lexicon store. Parsing is
// delegated to the per-format packages; this package owns the replace
// transaction and progress logging.
package seeder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hanzikit/cjklex/internal/dict"
	"github.com/hanzikit/cjklex/internal/domain"
	"github.com/hanzikit/cjklex/internal/seeder/cedict"
	"github.com/hanzikit/cjklex/internal/seeder/edict"
)

// Repo is the store surface the importer needs.
type Repo interface {
	Replace(ctx context.Context, dictionary string, entries []domain.Entry, batchSize int) error
	Count(ctx context.Context, dictionary string) (int64, error)
}

// Importer replaces one dictionary's rows with the content of a source file.
type Importer struct {
	log       *slog.Logger
	repo      Repo
	batchSize int

	// DryRun parses and logs without touching the store.
	DryRun bool
}

func NewImporter(log *slog.Logger, repo Repo, batchSize int) *Importer {
	return &Importer{log: log, repo: repo, batchSize: batchSize}
}

// Run imports the file at path into the named dictionary. The dictionary
// name selects both the target rows and the file format parser.
func (i *Importer) Run(ctx context.Context, dictionary, path string) error {
	schema, ok := dict.SchemaByName(dictionary)
	if !ok {
		return fmt.Errorf("unknown dictionary %q", dictionary)
	}

	log := i.log.With(slog.String("dictionary", schema.Name), slog.String("file", path))

	entries, err := i.parse(schema, path, log)
	if err != nil {
		return fmt.Errorf("parse %s: %w", schema.Name, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("parse %s: no entries in %s", schema.Name, path)
	}

	if i.DryRun {
		log.Info("dry run, store untouched", slog.Int("entries", len(entries)))
		return nil
	}

	if err := i.repo.Replace(ctx, schema.Name, entries, i.batchSize); err != nil {
		return fmt.Errorf("replace %s: %w", schema.Name, err)
	}

	count, err := i.repo.Count(ctx, schema.Name)
	if err != nil {
		return fmt.Errorf("count %s: %w", schema.Name, err)
	}
	log.Info("import finished", slog.Int64("rows", count))

	return nil
}

// parse dispatches to the format parser matching the schema. All
// CEDICT-derived formats share one wire format.
func (i *Importer) parse(schema dict.Schema, path string, log *slog.Logger) ([]domain.Entry, error) {
	if schema.Name == dict.EDICT.Name {
		result, err := edict.Parse(path, schema.Name)
		if err != nil {
			return nil, err
		}
		log.Info("parsed",
			slog.Int("lines", result.Stats.TotalLines),
			slog.Int("entries", result.Stats.Parsed),
			slog.Int("skipped", result.Stats.Skipped),
		)
		return result.Entries, nil
	}

	result, err := cedict.Parse(path, schema.Name)
	if err != nil {
		return nil, err
	}
	log.Info("parsed",
		slog.Int("lines", result.Stats.TotalLines),
		slog.Int("entries", result.Stats.Parsed),
		slog.Int("skipped", result.Stats.Skipped),
		slog.Int("synthetic_readings", result.Stats.Synthetic),
	)
	return result.Entries, nil
}
