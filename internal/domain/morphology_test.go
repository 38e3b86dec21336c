package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// distAsMap flattens a distribution for lookup by category.
func distAsMap(dist []MorphologyProbability) map[Morphology]int {
	m := make(map[Morphology]int, len(dist))
	for _, p := range dist {
		m[p.Type] = p.Probability
	}
	return m
}

func scoreSample(s AtmosphericSample) []MorphologyProbability {
	return ScoreMorphologies(s, DeriveIndices(s))
}

func TestScoreMorphologies_ZeroInputFallback(t *testing.T) {
	dist := scoreSample(AtmosphericSample{})

	require.Len(t, dist, len(Morphologies))
	m := distAsMap(dist)
	assert.Equal(t, 75, m[Rope])
	assert.Equal(t, 25, m[Cone])
	for _, cat := range []Morphology{Sidewinder, Stovepipe, Wedge, Drillbit, Funnel} {
		assert.Zero(t, m[cat], "category %s should be zero in fallback", cat)
	}
}

func TestScoreMorphologies_CategorySetAndOrder(t *testing.T) {
	dist := scoreSample(AtmosphericSample{CAPE: 3000, SRH: 350, PWAT: 1.4})

	require.Len(t, dist, 7)
	for i, p := range dist {
		assert.Equal(t, Morphologies[i], p.Type)
	}
}

func TestScoreMorphologies_ExtremeDrySheared(t *testing.T) {
	// Rotation plus instability with low moisture and fast storm motion:
	// the narrow violent archetypes win, the rain-fed wedge collapses.
	s := AtmosphericSample{
		CAPE:        9000,
		SRH:         800,
		LapseRate03: 10.5,
		StormSpeed:  90,
		PWAT:        0.8,
	}
	m := distAsMap(scoreSample(s))

	assert.Equal(t, 29, m[Drillbit])
	assert.Equal(t, 29, m[Stovepipe])
	assert.Equal(t, 24, m[Sidewinder])
	assert.Equal(t, 16, m[Cone])
	assert.LessOrEqual(t, m[Wedge], 3, "wedge should be at or near zero")
	assert.Zero(t, m[Rope])
	assert.Zero(t, m[Funnel])
}

func TestScoreMorphologies_HighMoistureWedge(t *testing.T) {
	s := AtmosphericSample{
		PWAT:       2.2,
		SurfaceRH:  90,
		MidRH:      90,
		StormSpeed: 30,
	}
	m := distAsMap(scoreSample(s))

	for _, cat := range Morphologies {
		if cat == Wedge {
			continue
		}
		assert.Less(t, m[cat], m[Wedge], "wedge should dominate %s", cat)
	}
}

func TestScoreMorphologies_MarginalAirmassFavorsRope(t *testing.T) {
	s := AtmosphericSample{CAPE: 800, SRH: 120}
	m := distAsMap(scoreSample(s))

	assert.Equal(t, 64, m[Rope])
	assert.Equal(t, 36, m[Funnel])
}

func TestScoreMorphologies_DistributionInvariants(t *testing.T) {
	samples := []AtmosphericSample{
		{},
		{CAPE: 800, SRH: 120},
		{CAPE: 2200, SRH: 280, PWAT: 1.3, LapseRate03: 7.5, StormSpeed: 38},
		{CAPE: 9000, SRH: 800, LapseRate03: 10.5, StormSpeed: 90, PWAT: 0.8},
		{PWAT: 2.2, SurfaceRH: 90, MidRH: 90, StormSpeed: 30},
		{CAPE: 4200, SRH: 520, PWAT: 1.9, SurfaceRH: 82, LapseRate03: 8.8, StormSpeed: 28, Temp: 80, Dewpoint: 72},
		{CAPE: -500, SRH: -100, PWAT: -1}, // hostile input still yields a valid distribution
	}

	for _, s := range samples {
		dist := scoreSample(s)
		require.Len(t, dist, len(Morphologies))

		sum := 0
		for _, p := range dist {
			assert.GreaterOrEqual(t, p.Probability, 0)
			assert.LessOrEqual(t, p.Probability, 100)
			sum += p.Probability
		}
		// Independent rounding can drift the column total by one point.
		assert.InDelta(t, 100, sum, 1, "distribution for %+v sums to %d", s, sum)
	}
}

func TestScoreMorphologies_OverlappingThresholdsCompound(t *testing.T) {
	d := DerivedIndices{}
	low := AtmosphericSample{SRH: 300}
	high := AtmosphericSample{SRH: 500}

	var lowScore, highScore float64
	for _, r := range morphologyRules[Sidewinder] {
		if r.match(low, d) {
			lowScore += r.weight
		}
		if r.match(high, d) {
			highScore += r.weight
		}
	}
	assert.Greater(t, highScore, lowScore, "deeper SRH should fire both threshold rules")
}
