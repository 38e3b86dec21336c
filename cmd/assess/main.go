// Command assess runs the assessment engine over a JSON file of observation
// records and prints a per-sample report plus a risk tier summary. It uses the
// actual domain package so output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/assess -input data/scenarios.json
//	go run ./cmd/assess -input data/scenarios.json -json > assessments.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ShianMike/TwistedTornadoProbabilityCalculator-sub001/internal/domain"
	"github.com/jonboulle/clockwork"
)

func main() {
	input := flag.String("input", "", "path to JSON array of observation records")
	asJSON := flag.Bool("json", false, "emit assessments as a JSON array instead of a report")
	fixedTime := flag.String("at", "", "fixed RFC3339 timestamp for computed_at (default: now)")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, *asJSON, *fixedTime); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath string, asJSON bool, fixedTime string) int {
	if fixedTime != "" {
		at, err := time.Parse(time.RFC3339, fixedTime)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: invalid -at timestamp: %v\n", err)
			return 1
		}
		domain.SetClock(clockwork.NewFakeClockAt(at))
		defer domain.SetClock(nil)
	}

	records, err := loadRecords(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load records: %v\n", err)
		return 1
	}

	assessments := make([]domain.Assessment, len(records))
	for i, rec := range records {
		assessments[i] = domain.Assess(domain.SampleFromRecord(rec))
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(assessments); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: encode output: %v\n", err)
			return 1
		}
		return 0
	}

	printReport(assessments)
	return 0
}

func loadRecords(path string) ([]domain.ObservationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []domain.ObservationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func printReport(assessments []domain.Assessment) {
	fmt.Println("=== Tornado Probability Assessment ===")
	fmt.Println()

	tierCounts := map[domain.RiskTier]int{}
	for i := range assessments {
		a := &assessments[i]
		tierCounts[a.Risk.Tier]++

		fmt.Printf("[%d] %-4s  STP=%-6.2f VTP=%-6.2f", i+1, a.Risk.Tier, a.Risk.STP, a.Risk.VTP)
		if a.Wind.EFScale < 0 {
			fmt.Printf("  wind: none")
		} else {
			fmt.Printf("  wind: %d-%d mph (%s)", a.Wind.EstMin, a.Wind.EstMax, a.Wind.EFLabel)
			if a.Wind.Theoretical != nil {
				fmt.Printf(" theo %d-%d", a.Wind.Theoretical.TheoMin, a.Wind.Theoretical.TheoMax)
			}
		}
		fmt.Printf("  top: %s %d%%", topType(a.Types).Type, topType(a.Types).Probability)
		if len(a.Factors) > 0 {
			fmt.Printf("  hazards: %d", len(a.Factors))
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Println("--- Tier summary ---")
	for _, tier := range []domain.RiskTier{
		domain.TierHIGH, domain.TierMDT, domain.TierENH,
		domain.TierSLGT, domain.TierMRGL, domain.TierTSTM,
	} {
		if n := tierCounts[tier]; n > 0 {
			fmt.Printf("  %-4s %d\n", tier, n)
		}
	}
	fmt.Printf("Total: %d samples\n", len(assessments))
}

func topType(types []domain.MorphologyProbability) domain.MorphologyProbability {
	top := types[0]
	for _, t := range types[1:] {
		if t.Probability > top.Probability {
			top = t
		}
	}
	return top
}
