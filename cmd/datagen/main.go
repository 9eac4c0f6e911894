package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"logistics-insights/cmd/datagen/engine"
)

func main() {
	scenario := flag.String("scenario", "steady", "Scenario to generate: steady, spike")
	days := flag.Int("days", 30, "Number of calendar days to cover")
	perDay := flag.Int("per-day", 40, "Average deliveries per day")
	seed := flag.Int64("seed", 42, "Random seed for reproducible datasets")
	outDir := flag.String("out", ".", "Output directory for the JSONL files")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Days:     *days,
		PerDay:   *perDay,
		Seed:     *seed,
		Now:      time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (%d days, ~%d deliveries/day) to %s...\n",
		cfg.Scenario, cfg.Days, cfg.PerDay, *outDir)

	ds := engine.Generate(cfg)

	if err := engine.Save(*outDir, ds); err != nil {
		fmt.Printf("Failed to save dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
