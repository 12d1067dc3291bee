// Command gendata generates a synthetic wildfire incident CSV for local
// development and benchmarking. Output is deterministic for a given seed and
// includes a small share of malformed rows and missing weather measurements
// so the validator and the per-view completeness filters have something to
// chew on.
//
// Usage:
//
//	go run ./cmd/gendata -out data/incidents.csv -rows 50000 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/wildfire-insights/internal/domain"
)

var causes = []string{
	"Lightning", "Arson", "Campfire", "Debris Burning", "Equipment Use",
	"Children", "Smoking", "Railroad", "Powerline", "Fireworks",
	"Structure", "Miscellaneous", "",
}

var states = []string{
	"CA", "TX", "GA", "FL", "OR", "WA", "AZ", "NM", "CO", "MT",
	"ID", "NV", "NC", "SC", "AL", "MS", "OK", "MN", "WI", "NY",
}

func main() {
	out := flag.String("out", "data/incidents.csv", "output CSV path")
	rows := flag.Int("rows", 50000, "number of rows to generate")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	if err := run(*out, *rows, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "gendata: %v\n", err)
		os.Exit(1)
	}
}

func run(out string, rows int, seed int64) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(seed))
	w := csv.NewWriter(f)

	header := []string{
		"STATE", "FIRE_YEAR", "DISC_MONTH", "STAT_CAUSE_DESCR",
		"FIRE_SIZE", "FIRE_SIZE_CLASS",
		"TEMP_PRE_30", "TEMP_PRE_15", "TEMP_PRE_7", "TEMP_CONT",
		"WIND_PRE_30", "WIND_PRE_15", "WIND_PRE_7", "WIND_CONT",
		"HUM_PRE_30", "HUM_PRE_15", "HUM_PRE_7", "HUM_CONT",
		"PREC_PRE_30", "PREC_PRE_15", "PREC_PRE_7", "PREC_CONT",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	m := domain.DefaultMappings()
	for i := 0; i < rows; i++ {
		if err := w.Write(generateRow(rng, m)); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	fmt.Printf("wrote %d rows to %s\n", rows, out)
	return nil
}

func generateRow(rng *rand.Rand, m domain.Mappings) []string {
	state := states[rng.Intn(len(states))]
	year := m.YearMin + rng.Intn(m.YearMax-m.YearMin+1)
	month := domain.Months[rng.Intn(len(domain.Months))]
	cause := causes[rng.Intn(len(causes))]

	// Log-uniform acreage so every size class appears.
	acres := math.Pow(10, rng.Float64()*6-2)
	sizeClass := classForAcres(acres)

	// Roughly 1% malformed size classes to exercise validation.
	if rng.Float64() < 0.01 {
		sizeClass = "Z"
	}

	row := []string{
		state,
		strconv.Itoa(year),
		month,
		cause,
		strconv.FormatFloat(acres, 'f', 2, 64),
		sizeClass,
	}

	// Four variables, four windows each. Each sample independently has a
	// 15% chance of being the missing sentinel.
	base := [4]float64{
		55 + rng.Float64()*40, // temp, F
		2 + rng.Float64()*18,  // wind, mph
		15 + rng.Float64()*70, // humidity, %
		rng.Float64() * 4,     // precipitation, in
	}
	for _, b := range base {
		for w := 0; w < 4; w++ {
			if rng.Float64() < 0.15 {
				row = append(row, "-1")
			} else {
				row = append(row, strconv.FormatFloat(b+rng.Float64()*4-2, 'f', 2, 64))
			}
		}
	}
	return row
}

// classForAcres maps acreage to the NWCG size class breakpoints.
func classForAcres(acres float64) string {
	switch {
	case acres < 0.26:
		return "A"
	case acres < 10:
		return "B"
	case acres < 100:
		return "C"
	case acres < 300:
		return "D"
	case acres < 1000:
		return "E"
	case acres < 5000:
		return "F"
	default:
		return "G"
	}
}
