// Package csvsource reads the wildfire incident CSV into raw rows for the
// domain validator. It is the external record source of the engine: the
// engine itself never touches files or parsing.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/wildfire-insights/internal/domain"
)

// Column names expected in the CSV header. Matching is case-insensitive.
var requiredColumns = []string{
	"state", "fire_year", "disc_month", "stat_cause_descr",
	"fire_size", "fire_size_class",
	"temp_pre_30", "temp_pre_15", "temp_pre_7", "temp_cont",
	"wind_pre_30", "wind_pre_15", "wind_pre_7", "wind_cont",
	"hum_pre_30", "hum_pre_15", "hum_pre_7", "hum_cont",
	"prec_pre_30", "prec_pre_15", "prec_pre_7", "prec_cont",
}

// ReadFile reads an incident CSV from disk. See Read.
func ReadFile(path string) ([]domain.RawIncidentRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return rows, nil
}

// Read parses an incident CSV. The first record must be a header containing
// every required column; extra columns are ignored. A missing column is the
// one fatal condition of ingestion (the input is not row-shaped); individual
// malformed rows are passed through untouched for the validator to judge.
func Read(r io.Reader) ([]domain.RawIncidentRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows reach the validator as-is

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q in header", col)
		}
	}

	var rows []domain.RawIncidentRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}

		cell := func(col string) string {
			i := idx[col]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}

		rows = append(rows, domain.RawIncidentRow{
			State:     cell("state"),
			FireYear:  cell("fire_year"),
			DiscMonth: cell("disc_month"),
			Cause:     cell("stat_cause_descr"),
			SizeClass: cell("fire_size_class"),
			SizeAcres: cell("fire_size"),
			Temp:      windowCells(cell, "temp"),
			Wind:      windowCells(cell, "wind"),
			Hum:       windowCells(cell, "hum"),
			Prec:      windowCells(cell, "prec"),
		})
	}
	return rows, nil
}

func windowCells(cell func(string) string, prefix string) domain.RawWindowValues {
	return domain.RawWindowValues{
		Pre30: cell(prefix + "_pre_30"),
		Pre15: cell(prefix + "_pre_15"),
		Pre7:  cell(prefix + "_pre_7"),
		Cont:  cell(prefix + "_cont"),
	}
}
