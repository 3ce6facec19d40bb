package main

import (
	"fmt"

	"prodstats/internal/sample"
	"prodstats/internal/stats"
)

func setStart(cfg *sample.Config, key string) error {
	t, ok := stats.ParseKey(key)
	if !ok {
		return fmt.Errorf("%q is not a YYYY-MM-DD date", key)
	}
	cfg.Start = t
	return nil
}
