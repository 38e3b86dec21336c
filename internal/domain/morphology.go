package domain

import "math"

// Morphology is a tornado shape archetype.
type Morphology string

const (
	Sidewinder Morphology = "SIDEWINDER"
	Stovepipe  Morphology = "STOVEPIPE"
	Wedge      Morphology = "WEDGE"
	Drillbit   Morphology = "DRILLBIT"
	Cone       Morphology = "CONE"
	Rope       Morphology = "ROPE"
	Funnel     Morphology = "FUNNEL"
)

// Morphologies lists every category in display order. The probability
// distribution always covers exactly this set.
var Morphologies = []Morphology{Sidewinder, Stovepipe, Wedge, Drillbit, Cone, Rope, Funnel}

// MorphologyProbability is one slice of the distribution, an integer
// percentage in [0,100].
type MorphologyProbability struct {
	Type        Morphology `json:"type"`
	Probability int        `json:"probability"`
}

// rule adds weight to a category's accumulator when its predicate holds.
// Rules within a category are independent and non-exclusive: overlapping
// thresholds (SRH > 250 and SRH > 450) compound as a parameter moves deeper
// into the category's favorable zone.
type rule struct {
	weight float64
	match  func(s AtmosphericSample, d DerivedIndices) bool
}

var morphologyRules = map[Morphology][]rule{
	Sidewinder: {
		{14, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SRH > 250 }},
		{10, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SRH > 450 }},
		{12, func(s AtmosphericSample, _ DerivedIndices) bool { return s.StormSpeed > 40 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.StormSpeed > 55 }},
		{6, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE > 2500 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.PWAT > 0 && s.PWAT < 1.1 }},
		{5, func(_ AtmosphericSample, d DerivedIndices) bool { return d.DewSpread > 15 }},
	},
	Stovepipe: {
		{12, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE > 3000 }},
		{10, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE > 4500 }},
		{10, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SRH > 300 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SRH > 500 }},
		{10, func(s AtmosphericSample, _ DerivedIndices) bool { return s.LapseRate03 > 8 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.LapseRate03 > 9.5 }},
		{10, func(_ AtmosphericSample, d DerivedIndices) bool { return d.VTP >= 8 }},
		{5, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE3KM > 100 }},
	},
	Wedge: {
		{14, func(s AtmosphericSample, _ DerivedIndices) bool { return s.PWAT > 1.6 }},
		{12, func(s AtmosphericSample, _ DerivedIndices) bool { return s.PWAT > 2.0 }},
		{10, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SurfaceRH > 75 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.MidRH > 70 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE > 3500 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.StormSpeed > 0 && s.StormSpeed < 35 }},
		{6, func(_ AtmosphericSample, d DerivedIndices) bool { return d.STP >= 6 }},
	},
	Drillbit: {
		{12, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SRH > 400 }},
		{10, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SRH > 600 }},
		{12, func(s AtmosphericSample, _ DerivedIndices) bool { return s.LapseRate03 > 8.5 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.LapseRate03 > 9.5 }},
		{10, func(s AtmosphericSample, _ DerivedIndices) bool { return s.PWAT > 0 && s.PWAT < 1.0 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.StormSpeed > 50 }},
		{6, func(_ AtmosphericSample, d DerivedIndices) bool { return d.DewSpread > 20 }},
		{8, func(_ AtmosphericSample, d DerivedIndices) bool { return d.VTP >= 10 }},
	},
	Cone: {
		{10, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE > 1500 }},
		{6, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE > 2500 }},
		{10, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SRH > 150 }},
		{6, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SRH > 250 }},
		{6, func(s AtmosphericSample, _ DerivedIndices) bool { return s.LapseRate03 > 7 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.PWAT > 1.0 && s.PWAT < 1.8 }},
		{6, func(_ AtmosphericSample, d DerivedIndices) bool { return d.STP >= 3 }},
	},
	Rope: {
		{14, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE > 0 && s.CAPE < 1200 }},
		{12, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SRH > 0 && s.SRH < 150 }},
		{10, func(_ AtmosphericSample, d DerivedIndices) bool { return d.STP > 0 && d.STP < 2 }},
		{6, func(s AtmosphericSample, _ DerivedIndices) bool { return s.StormSpeed > 0 && s.StormSpeed < 25 }},
		{6, func(s AtmosphericSample, _ DerivedIndices) bool { return s.LapseRate03 > 0 && s.LapseRate03 < 6.5 }},
	},
	Funnel: {
		{10, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE3KM > 0 && s.CAPE3KM < 75 }},
		{8, func(s AtmosphericSample, _ DerivedIndices) bool { return s.CAPE > 500 && s.CAPE < 2000 }},
		{6, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SRH > 100 && s.SRH < 250 }},
		{6, func(s AtmosphericSample, _ DerivedIndices) bool { return s.SurfaceRH > 0 && s.SurfaceRH < 45 }},
		{8, func(s AtmosphericSample, d DerivedIndices) bool { return d.VTP < 1 && s.CAPE > 800 }},
	},
}

// adjustment is a cross-category correction: a compound condition that boosts
// one archetype and penalizes physically conflicting ones. These break
// near-ties that the independent tables cannot resolve on their own.
type adjustment struct {
	when   func(s AtmosphericSample, d DerivedIndices) bool
	deltas map[Morphology]float64
}

var morphologyAdjustments = []adjustment{
	{
		// Saturated airmass: rain-fed wedges thrive, dry archetypes choke.
		when: func(s AtmosphericSample, _ DerivedIndices) bool {
			return s.PWAT >= 2.0 && s.SurfaceRH >= 80
		},
		deltas: map[Morphology]float64{Wedge: 12, Drillbit: -15, Sidewinder: -10},
	},
	{
		// Dry and fast: drillbit territory, no moisture to feed a wedge.
		when: func(s AtmosphericSample, _ DerivedIndices) bool {
			return s.PWAT > 0 && s.PWAT < 1.0 && s.StormSpeed > 50
		},
		deltas: map[Morphology]float64{Drillbit: 10, Sidewinder: 6, Wedge: -15},
	},
	{
		// Violent composite indices favor the organized intense shapes.
		when: func(s AtmosphericSample, d DerivedIndices) bool {
			return d.VTP >= 12 && s.CAPE >= 4000
		},
		deltas: map[Morphology]float64{Stovepipe: 10, Wedge: 6, Rope: -10},
	},
	{
		// Marginal airmass: ropes and funnels, not organized supercells.
		when: func(s AtmosphericSample, _ DerivedIndices) bool {
			return s.CAPE > 0 && s.CAPE < 1500 && s.SRH > 0 && s.SRH < 200
		},
		deltas: map[Morphology]float64{Rope: 10, Funnel: 6, Stovepipe: -10, Wedge: -6},
	},
}

// fallbackDistribution models "insufficient energy for organized rotation":
// when no rule fires the answer is a weak rope with an outside chance of a
// balanced cone, never an all-zero chart.
var fallbackDistribution = map[Morphology]int{Rope: 75, Cone: 25}

// ScoreMorphologies computes the probability distribution over the seven
// categories. Negative accumulators are floored to zero before normalization,
// so a heavily penalized category contributes nothing rather than a negative
// percentage. Rounding may make the column sum 99–101; that drift is accepted.
func ScoreMorphologies(s AtmosphericSample, d DerivedIndices) []MorphologyProbability {
	scores := make(map[Morphology]float64, len(Morphologies))

	for _, m := range Morphologies {
		for _, r := range morphologyRules[m] {
			if r.match(s, d) {
				scores[m] += r.weight
			}
		}
	}

	for _, adj := range morphologyAdjustments {
		if adj.when(s, d) {
			for m, delta := range adj.deltas {
				scores[m] += delta
			}
		}
	}

	var total float64
	for _, m := range Morphologies {
		total += math.Max(0, scores[m])
	}

	dist := make([]MorphologyProbability, 0, len(Morphologies))
	for _, m := range Morphologies {
		var pct int
		if total > 0 {
			pct = int(math.Round(math.Max(0, scores[m]) / total * 100))
		} else {
			pct = fallbackDistribution[m]
		}
		dist = append(dist, MorphologyProbability{Type: m, Probability: pct})
	}
	return dist
}
