// Command report renders series statistics from the canonical CSV store
// as markdown, with an optional CSV of monthly averages.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"eua-price-lab/internal/reporting"
	"eua-price-lab/internal/storage/csvstore"
)

func main() {
	csvPath := flag.String("csv", "data/eua2_prices.csv", "Path to the canonical CSV store")
	output := flag.String("output", "", "Write markdown to this file instead of stdout")
	monthlyCSV := flag.String("monthly-csv", "", "Also write monthly averages as CSV to this file")
	flag.Parse()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags|log.Lshortfile)
	ctx := context.Background()

	store := csvstore.New(*csvPath, logger)
	gen := reporting.NewGenerator(store)

	report, err := gen.Generate(ctx)
	if err != nil {
		logger.Fatalf("Generate report: %v", err)
	}

	md := reporting.RenderMarkdown(report)
	if *output == "" {
		fmt.Print(md)
	} else if err := os.WriteFile(*output, []byte(md), 0o644); err != nil {
		logger.Fatalf("Write %s: %v", *output, err)
	} else {
		logger.Printf("Wrote report to %s", *output)
	}

	if *monthlyCSV != "" {
		csv := reporting.RenderCSV(report.Monthly)
		if err := os.WriteFile(*monthlyCSV, []byte(csv), 0o644); err != nil {
			logger.Fatalf("Write %s: %v", *monthlyCSV, err)
		}
		logger.Printf("Wrote monthly averages to %s", *monthlyCSV)
	}
}
