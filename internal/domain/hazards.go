package domain

import "math"

// HazardFactor is an auxiliary hazard with a likelihood percentage.
type HazardFactor struct {
	Name   string `json:"name"`
	Chance int    `json:"chance"`
}

// hazardCheck couples a trigger condition with a chance formula. Checks are
// independent; any subset may fire for a given sample. Order is fixed for
// display only.
type hazardCheck struct {
	name   string
	when   func(s AtmosphericSample, d DerivedIndices) bool
	chance func(s AtmosphericSample, d DerivedIndices) int
}

var hazardChecks = []hazardCheck{
	{
		name: "Rain-Wrap",
		when: func(s AtmosphericSample, _ DerivedIndices) bool { return s.PWAT >= 1.5 },
		chance: func(s AtmosphericSample, _ DerivedIndices) int {
			return chanceCap(s.PWAT*38, 95)
		},
	},
	{
		name: "Large Hail",
		when: func(s AtmosphericSample, _ DerivedIndices) bool {
			return s.CAPE >= 2500 && s.LapseRate36 >= 6.5
		},
		chance: func(s AtmosphericSample, _ DerivedIndices) int {
			return chanceCap(s.CAPE/60, 95)
		},
	},
	{
		name: "Multiple Vortices",
		when: func(s AtmosphericSample, d DerivedIndices) bool {
			return d.VTP >= 6 || (s.SRH >= 500 && d.VTP >= 3)
		},
		chance: func(_ AtmosphericSample, d DerivedIndices) int {
			return chanceCap(d.VTP*9, 90)
		},
	},
	{
		name: "Long-Track Potential",
		when: func(s AtmosphericSample, d DerivedIndices) bool {
			return d.STP >= 8 || (s.SRH >= 400 && s.StormSpeed >= 45 && s.CAPE >= 3000)
		},
		chance: func(s AtmosphericSample, d DerivedIndices) int {
			base := d.STP * 7
			// The compound shear/speed/instability trigger carries a floor
			// even when STP itself is modest.
			if s.SRH >= 400 && s.StormSpeed >= 45 && s.CAPE >= 3000 {
				base = math.Max(base, 55)
			}
			return chanceCap(base, 90)
		},
	},
	{
		name: "Frequent Lightning",
		when: func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE >= 2000 },
		chance: func(s AtmosphericSample, _ DerivedIndices) int {
			return chanceCap(s.CAPE/45, 95)
		},
	},
	{
		name: "Low Visibility",
		when: func(s AtmosphericSample, _ DerivedIndices) bool {
			return s.PWAT >= 1.8 && s.SurfaceRH >= 70
		},
		chance: func(s AtmosphericSample, _ DerivedIndices) int {
			return chanceCap(s.SurfaceRH*0.7+s.PWAT*10, 90)
		},
	},
}

// detectHazards runs every hazard check; only triggered hazards appear.
func detectHazards(s AtmosphericSample, d DerivedIndices) []HazardFactor {
	factors := make([]HazardFactor, 0, len(hazardChecks))
	for _, h := range hazardChecks {
		if h.when(s, d) {
			factors = append(factors, HazardFactor{Name: h.name, Chance: h.chance(s, d)})
		}
	}
	return factors
}

// chanceCap rounds a raw chance value and clamps it into [0, cap].
func chanceCap(raw float64, capPct int) int {
	c := int(math.Round(raw))
	if c < 0 {
		return 0
	}
	if c > capPct {
		return capPct
	}
	return c
}
