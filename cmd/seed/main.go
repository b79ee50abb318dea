// Command seed replaces the rows of one dictionary with the content of a
// source file. It is intended to be run offline, not as part of a serving
// process.
//
// Flags:
//
//	--dict     dictionary name (EDICT, CEDICT, HanDeDict, CFDICT)
//	--file     path to the dictionary source file
//	--dry-run  parse the file without writing to the database
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hanzikit/cjklex/internal/app"
	"github.com/hanzikit/cjklex/internal/seeder"
)

func main() {
	dictFlag := flag.String("dict", "", "dictionary name (EDICT, CEDICT, HanDeDict, CFDICT)")
	fileFlag := flag.String("file", "", "path to the dictionary source file")
	dryRunFlag := flag.Bool("dry-run", false, "parse the file without writing to the database")
	flag.Parse()

	if *dictFlag == "" || *fileFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	a, err := app.Init(ctx)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer a.Close()

	imp := seeder.NewImporter(a.Log, a.Lexicon, a.Cfg.Seed.BatchSize)
	imp.DryRun = *dryRunFlag

	if err := imp.Run(ctx, *dictFlag, *fileFlag); err != nil {
		a.Log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
