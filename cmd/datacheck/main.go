// Command datacheck loads an incident CSV through the same adapter and
// validator the explorer service uses and reports acceptance statistics,
// rejection reasons, and classification coverage. Run it against a new
// dataset drop before pointing the service at it.
//
// Usage:
//
//	go run ./cmd/datacheck -dataset data/incidents.csv [-mappings configs/classification.yaml]
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/couchcryptid/wildfire-insights/internal/adapter/csvsource"
	"github.com/couchcryptid/wildfire-insights/internal/domain"
)

func main() {
	dataset := flag.String("dataset", "", "path to the incident CSV")
	mappingsPath := flag.String("mappings", "", "optional classification mappings YAML")
	flag.Parse()

	if *dataset == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataset, *mappingsPath); code != 0 {
		os.Exit(code)
	}
}

func run(dataset, mappingsPath string) int {
	mappings, err := domain.LoadMappings(mappingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load mappings: %v\n", err)
		return 1
	}

	rows, err := csvsource.ReadFile(dataset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}

	incidents, stats := domain.BuildIncidents(rows, mappings)

	fmt.Println("=== Wildfire Dataset Check ===")
	fmt.Println()
	fmt.Printf("Rows read:     %d\n", len(rows))
	fmt.Printf("Accepted:      %d\n", stats.Accepted)
	fmt.Printf("Rejected:      %d\n", stats.RejectedTotal())
	for _, reason := range sortedKeys(stats.Rejected) {
		fmt.Printf("  %-20s %d\n", reason, stats.Rejected[reason])
	}

	printCoverage(incidents)

	if stats.Accepted == 0 {
		fmt.Println("\nNo usable rows. Check FAILED.")
		return 1
	}
	fmt.Println("\nCheck passed.")
	return 0
}

func printCoverage(incidents []domain.Incident) {
	regions := make(map[string]int)
	seasons := make(map[string]int)
	var human, withAcres, tempComplete int

	for i := range incidents {
		inc := &incidents[i]
		regions[inc.Region]++
		seasons[inc.Season]++
		if inc.HumanCaused {
			human++
		}
		if inc.SizeAcres != nil {
			withAcres++
		}
		if inc.Temp.Complete() {
			tempComplete++
		}
	}

	fmt.Println("\n--- Classification coverage ---")
	for _, r := range sortedKeys(regions) {
		fmt.Printf("  region %-10s %d\n", r, regions[r])
	}
	for _, s := range sortedKeys(seasons) {
		fmt.Printf("  season %-10s %d\n", s, seasons[s])
	}
	fmt.Printf("  human-caused:        %d\n", human)
	fmt.Printf("  with acreage:        %d\n", withAcres)
	fmt.Printf("  temp fully sampled:  %d\n", tempComplete)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
