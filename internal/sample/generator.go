// Package sample generates synthetic production log rows for demos and tests.
package sample

import (
	"fmt"
	"math/rand/v2"
	"time"

	"prodstats/internal/stats"
)

// Config controls the generated data set.
type Config struct {
	Days             int // calendar days covered, weekends are skipped
	OperationsPerDay int // average operations per business day
	Start            time.Time
	Seed             uint64 // zero seeds from the clock
}

var (
	Operators     = []string{"Alice", "Bob", "Charlie", "David", "Emma", "Frank"}
	Operations    = []string{"CUT", "SEW", "DISPATCH"}
	Trims         = []string{"LEATHER", "FABRIC", "VINYL", "SUEDE"}
	CarpetTypes   = []string{"Type A", "Type B", "Type C", "Type D"}
	CarpetColours = []string{"BLACK", "GREY", "BLUE", "RED", "BROWN", "BEIGE"}
	Sources       = []string{"DEALER ORDER", "SHOWROOM", "ONLINE SALE", "WHOLESALE"}
)

// DefaultStart is the first calendar day of generated data.
var DefaultStart = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// DefaultConfig mirrors the dashboard's "Generate Sample" button.
func DefaultConfig() Config {
	return Config{Days: 60, OperationsPerDay: 50, Start: DefaultStart}
}

// Columns is the header row of generated workbooks.
var Columns = []string{
	stats.ColOperatorName,
	stats.ColOperationName,
	stats.ColLastOperation,
	stats.ColTrim,
	stats.ColCarpetType,
	stats.ColCarpetColour,
	stats.ColSource,
}

// Generate produces rows for every weekday in the configured span. Each day gets
// between OperationsPerDay-10 and OperationsPerDay+9 operations.
func Generate(cfg Config) []stats.RawRow {
	if cfg.Start.IsZero() {
		cfg.Start = DefaultStart
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	pick := func(values []string) string { return values[rng.IntN(len(values))] }

	var rows []stats.RawRow
	for day := 0; day < cfg.Days; day++ {
		current := cfg.Start.AddDate(0, 0, day)
		if wd := current.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		lastOp := fmt.Sprintf("Completed %s", current.Format("02/01/2006"))
		daily := rng.IntN(20) + cfg.OperationsPerDay - 10
		for op := 0; op < daily; op++ {
			rows = append(rows, stats.RawRow{
				stats.ColOperatorName:  pick(Operators),
				stats.ColOperationName: pick(Operations),
				stats.ColLastOperation: lastOp,
				stats.ColTrim:          pick(Trims),
				stats.ColCarpetType:    pick(CarpetTypes),
				stats.ColCarpetColour:  pick(CarpetColours),
				stats.ColSource:        pick(Sources),
			})
		}
	}
	return rows
}
