// Command lookup searches one dictionary and prints the matching entries,
// tab separated, one per line.
//
// Flags:
//
//	--dict   dictionary name (EDICT, CEDICT, HanDeDict, CFDICT)
//	--mode   headword | reading | translation | any (default any)
//
// The query is the remaining argument. Wildcards follow the configured
// grammar, "_" and "%" by default:
//
//	lookup --dict CEDICT "東%"
//	lookup --dict CEDICT --mode reading "zhi dao"
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hanzikit/cjklex/internal/app"
	"github.com/hanzikit/cjklex/internal/domain"
)

func main() {
	dictFlag := flag.String("dict", "", "dictionary name (EDICT, CEDICT, HanDeDict, CFDICT)")
	modeFlag := flag.String("mode", "any", "headword | reading | translation | any")
	flag.Parse()

	if *dictFlag == "" || flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	query := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	a, err := app.Init(ctx)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer a.Close()

	d, err := a.Dictionary(*dictFlag)
	if err != nil {
		a.Log.Error("assemble dictionary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var entries []domain.Entry
	switch *modeFlag {
	case "headword":
		entries, err = d.ForHeadword(ctx, query)
	case "reading":
		entries, err = d.ForReading(ctx, query)
	case "translation":
		entries, err = d.ForTranslation(ctx, query)
	case "any":
		entries, err = d.For(ctx, query)
	default:
		a.Log.Error("unknown mode", slog.String("mode", *modeFlag))
		os.Exit(1)
	}
	if err != nil {
		a.Log.Error("lookup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, e := range entries {
		headword := e.Headword
		if e.HeadwordSimplified != "" && e.HeadwordSimplified != e.Headword {
			headword = fmt.Sprintf("%s(%s)", e.Headword, e.HeadwordSimplified)
		}
		fmt.Printf("%s\t%s\t%s\n", headword, e.Reading, e.Translation)
	}
}
