// Command genscenarios generates a deterministic JSON fixture of observation
// records spanning calm through violent atmospheric regimes. The output feeds
// cmd/assess and the Kafka integration tests.
//
// Usage:
//
//	go run ./cmd/genscenarios -out data/scenarios.json -per-regime 10 -seed 42
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

// regime is a band of parameter ranges producing a coherent atmospheric setup.
type regime struct {
	name       string
	cape       [2]float64
	srh        [2]float64
	pwat       [2]float64
	lapse03    [2]float64
	lapse36    [2]float64
	temp       [2]float64
	dewpoint   [2]float64
	surfaceRH  [2]float64
	midRH      [2]float64
	stormSpeed [2]float64
	cape3km    [2]float64
}

var regimes = []regime{
	{
		name: "calm",
		cape: [2]float64{0, 250}, srh: [2]float64{0, 50}, pwat: [2]float64{0.3, 0.8},
		lapse03: [2]float64{4, 5.5}, lapse36: [2]float64{4.5, 6}, temp: [2]float64{60, 75},
		dewpoint: [2]float64{40, 55}, surfaceRH: [2]float64{30, 55}, midRH: [2]float64{20, 45},
		stormSpeed: [2]float64{5, 15}, cape3km: [2]float64{0, 25},
	},
	{
		name: "marginal",
		cape: [2]float64{500, 1200}, srh: [2]float64{80, 180}, pwat: [2]float64{0.9, 1.3},
		lapse03: [2]float64{5.5, 7}, lapse36: [2]float64{5.5, 6.8}, temp: [2]float64{70, 82},
		dewpoint: [2]float64{55, 64}, surfaceRH: [2]float64{45, 65}, midRH: [2]float64{35, 55},
		stormSpeed: [2]float64{15, 30}, cape3km: [2]float64{20, 60},
	},
	{
		name: "enhanced",
		cape: [2]float64{1500, 2800}, srh: [2]float64{180, 320}, pwat: [2]float64{1.2, 1.7},
		lapse03: [2]float64{6.5, 8}, lapse36: [2]float64{6, 7.2}, temp: [2]float64{76, 88},
		dewpoint: [2]float64{62, 70}, surfaceRH: [2]float64{55, 75}, midRH: [2]float64{45, 65},
		stormSpeed: [2]float64{25, 45}, cape3km: [2]float64{50, 110},
	},
	{
		name: "significant",
		cape: [2]float64{2800, 4500}, srh: [2]float64{300, 500}, pwat: [2]float64{1.4, 2.0},
		lapse03: [2]float64{7.5, 9}, lapse36: [2]float64{6.5, 8}, temp: [2]float64{80, 92},
		dewpoint: [2]float64{66, 75}, surfaceRH: [2]float64{60, 85}, midRH: [2]float64{55, 75},
		stormSpeed: [2]float64{35, 55}, cape3km: [2]float64{90, 160},
	},
	{
		name: "violent",
		cape: [2]float64{4500, 7000}, srh: [2]float64{500, 800}, pwat: [2]float64{0.8, 2.3},
		lapse03: [2]float64{8.5, 10.5}, lapse36: [2]float64{7, 9}, temp: [2]float64{84, 98},
		dewpoint: [2]float64{70, 80}, surfaceRH: [2]float64{50, 90}, midRH: [2]float64{55, 85},
		stormSpeed: [2]float64{45, 70}, cape3km: [2]float64{130, 250},
	},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the scenarios JSON fixture")
	perRegime := flag.Int("per-regime", 10, "number of samples per regime")
	seed := flag.Int64("seed", 42, "PRNG seed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))

	// The fixture uses a plain map so the STP/VTP override fields can be
	// omitted entirely rather than serialized as empty strings.
	records := make([]map[string]string, 0, len(regimes)*(*perRegime))
	for _, reg := range regimes {
		for i := 0; i < *perRegime; i++ {
			records = append(records, generate(rng, reg))
		}
		log.Printf("%s: %d records", reg.name, *perRegime)
	}

	if err := writeJSON(*out, records); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d records: %s", len(records), *out)
	return nil
}

func generate(rng *rand.Rand, reg regime) map[string]string {
	return map[string]string{
		"CAPE":           draw(rng, reg.cape, 0),
		"SRH":            draw(rng, reg.srh, 0),
		"PWAT":           draw(rng, reg.pwat, 2),
		"LAPSE_RATE_0_3": draw(rng, reg.lapse03, 1),
		"LAPSE_RATE_3_6": draw(rng, reg.lapse36, 1),
		"TEMP":           draw(rng, reg.temp, 0),
		"DEWPOINT":       draw(rng, reg.dewpoint, 0),
		"SURFACE_RH":     draw(rng, reg.surfaceRH, 0),
		"RH_MID":         draw(rng, reg.midRH, 0),
		"STORM_SPEED":    draw(rng, reg.stormSpeed, 0),
		"CAPE_3KM":       draw(rng, reg.cape3km, 0),
	}
}

// draw samples uniformly from a range and formats with the given precision,
// matching the string-typed fields the collector produces.
func draw(rng *rand.Rand, bounds [2]float64, decimals int) string {
	v := bounds[0] + rng.Float64()*(bounds[1]-bounds[0])
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
