package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"prodstats/internal/sample"
)

func main() {
	days := flag.Int("days", 60, "Calendar days to generate (weekends are skipped)")
	ops := flag.Int("ops", 50, "Average operations per business day")
	seed := flag.Uint64("seed", 0, "Random seed (0 seeds from the clock)")
	start := flag.String("start", sample.DefaultStart.Format("2006-01-02"), "First calendar day (YYYY-MM-DD)")
	out := flag.String("out", "./ExportedProcessing.xlsx", "Output workbook path")
	flag.Parse()

	cfg := sample.DefaultConfig()
	cfg.Days, cfg.OperationsPerDay, cfg.Seed = *days, *ops, *seed
	if err := setStart(&cfg, *start); err != nil {
		fmt.Printf("Invalid start date: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %d days of sample data (~%d operations/day) to %s...\n", cfg.Days, cfg.OperationsPerDay, *out)

	if err := write(*out, cfg); err != nil {
		fmt.Printf("Failed to save sample data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}

func write(path string, cfg sample.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sample.WriteWorkbook(f, sample.Generate(cfg)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
