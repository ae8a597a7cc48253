// Command repair rewrites the canonical CSV store in place: every row is
// loaded through the repair pass and the surviving observations are
// written back in canonical form.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"eua-price-lab/internal/storage/csvstore"
)

func main() {
	csvPath := flag.String("csv", "data/eua2_prices.csv", "Path to the canonical CSV store")
	dryRun := flag.Bool("dry-run", false, "Report what would change without rewriting")
	flag.Parse()

	logger := log.New(os.Stdout, "[repair] ", log.LstdFlags|log.Lshortfile)
	ctx := context.Background()

	store := csvstore.New(*csvPath, logger)
	series, err := store.Load(ctx)
	if err != nil {
		logger.Fatalf("Load %s: %v", *csvPath, err)
	}
	repaired, discarded := store.LastRepairStats()
	logger.Printf("Loaded %d observations (repaired=%d discarded=%d)", len(series), repaired, discarded)

	if *dryRun {
		logger.Println("Dry run, store left as is")
		return
	}

	written, err := store.Save(ctx, series)
	if err != nil {
		logger.Fatalf("Rewrite %s: %v", *csvPath, err)
	}
	logger.Printf("Rewrote %s with %d rows", *csvPath, written)
}
