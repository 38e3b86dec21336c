package domain

import "math"

// Wind estimation constants, tuned so typical outputs land in the 120–373 mph
// band observed in recorded gameplay.
const (
	// Below both minimums there is no tornado potential at all.
	minPotentialCAPE = 300
	minPotentialSTP  = 0.5

	windFloor   = 95  // additive floor of the composite band map
	windScale   = 215 // linear scale of the composite band map
	windHardMin = 60  // estimate minimum never drops below this
	windCeiling = 373 // global cap for both ends of the range

	uncertainty = 0.12 // half-width fraction around the base wind

	minSpread = 20 // range may not collapse tighter than this
	maxSpread = 80 // nor balloon wider; re-centered at a 40 mph half-width

	theoreticalGate       = 250  // est_max must exceed this for a theoretical range
	theoreticalMultiplier = 1.15 // theo_max = est_max * multiplier
	theoreticalCeiling    = 430
)

// Observed-range ceilings for normalizing each composite component.
const (
	capeCeil  = 6000
	srhCeil   = 600
	lapseCeil = 9
	speedCeil = 70
	stpCeil   = 24
	vtpCeil   = 10
)

// Composite weights. CAPE carries the most signal, storm speed the least.
const (
	weightCAPE  = 0.30
	weightSRH   = 0.22
	weightSTP   = 0.18
	weightVTP   = 0.15
	weightLapse = 0.10
	weightSpeed = 0.05
)

// TheoreticalRange is the optional "could spike to" band for extreme setups.
// Its minimum is anchored at the estimate's maximum.
type TheoreticalRange struct {
	TheoMin int `json:"theo_min"`
	TheoMax int `json:"theo_max"`
}

// WindEstimate is the estimated peak wind range with its EF classification.
// EstMin <= EstMax always holds; EFScale is -1 when there is no potential.
type WindEstimate struct {
	EstMin      int               `json:"est_min"`
	EstMax      int               `json:"est_max"`
	EFLabel     string            `json:"ef_label"`
	EFScale     int               `json:"ef_scale"`
	Theoretical *TheoreticalRange `json:"theoretical,omitempty"`
}

// windBonus is a flat addition applied when a compound extreme condition holds.
type windBonus struct {
	amount float64
	when   func(s AtmosphericSample, d DerivedIndices) bool
}

var windBonuses = []windBonus{
	{25, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE >= 5000 && s.SRH >= 500 }},
	{20, func(_ AtmosphericSample, d DerivedIndices) bool { return d.VTP >= 12 }},
	{15, func(s AtmosphericSample, d DerivedIndices) bool { return d.STP >= 20 && s.LapseRate03 >= 9 }},
}

func estimateWind(s AtmosphericSample, d DerivedIndices) WindEstimate {
	if s.CAPE < minPotentialCAPE && d.STP < minPotentialSTP {
		return WindEstimate{EFLabel: "NONE", EFScale: -1}
	}

	composite := weightCAPE*ratio(s.CAPE, capeCeil) +
		weightSRH*ratio(s.SRH, srhCeil) +
		weightSTP*ratio(d.STP, stpCeil) +
		weightVTP*ratio(d.VTP, vtpCeil) +
		weightLapse*ratio(s.LapseRate03, lapseCeil) +
		weightSpeed*ratio(s.StormSpeed, speedCeil)

	base := windFloor + composite*windScale
	for _, b := range windBonuses {
		if b.when(s, d) {
			base += b.amount
		}
	}

	estMin := int(math.Max(windHardMin, math.Round(base*(1-uncertainty))))
	estMax := int(math.Round(base * (1 + uncertainty)))
	estMin = min(estMin, windCeiling)
	estMax = min(estMax, windCeiling)

	if estMax-estMin < minSpread {
		estMax = min(windCeiling, estMin+minSpread)
	}
	if estMax-estMin > maxSpread {
		mid := math.Round(float64(estMin+estMax) / 2)
		estMin = int(mid) - maxSpread/2
		estMax = int(mid) + maxSpread/2
	}

	label, scale := classifyEF(estMin, estMax)

	est := WindEstimate{
		EstMin:  estMin,
		EstMax:  estMax,
		EFLabel: label,
		EFScale: scale,
	}

	if estMax >= theoreticalGate && extremePotential(s, d) {
		est.Theoretical = &TheoreticalRange{
			TheoMin: estMax,
			TheoMax: min(theoreticalCeiling, int(math.Round(float64(estMax)*theoreticalMultiplier))),
		}
	}
	return est
}

// classifyEF walks the Enhanced Fujita ladder from the top down and returns
// the first tier whose combined (min, max) test passes. Considering both ends
// means a wide range whose floor cannot support the top tier is downgraded
// rather than classified off its ceiling alone.
func classifyEF(estMin, estMax int) (string, int) {
	switch {
	case estMin >= 180 && estMax > 220:
		return "EF5", 5
	case estMin >= 150 && estMax > 185:
		return "EF4", 4
	case estMin >= 120 && estMax > 150:
		return "EF3", 3
	case estMin >= 95 && estMax > 120:
		return "EF2", 2
	case estMax > 95:
		return "EF1", 1
	default:
		return "EF0", 0
	}
}

// extremePotential gates the theoretical range: either composite index deep in
// violent territory, or raw instability and shear both maxed out.
func extremePotential(s AtmosphericSample, d DerivedIndices) bool {
	return d.VTP >= 12 || d.STP >= 20 || (s.CAPE >= 6500 && s.SRH >= 600)
}

// ratio normalizes v against an observed-range ceiling, clamped into [0,1]
// so negative inputs cannot drag the composite below the band floor.
func ratio(v, ceil float64) float64 {
	return clamp(v/ceil, 0, 1)
}
