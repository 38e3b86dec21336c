package domain

import "time"

// ProbabilityResult is the morphology distribution together with the hazard
// factors and the indices that drove it.
type ProbabilityResult struct {
	Types   []MorphologyProbability `json:"types"`
	Factors []HazardFactor          `json:"factors"`
	Indices DerivedIndices          `json:"indices"`
}

// Assessment is the complete output for one sample: distribution, hazards,
// wind estimate, and risk tier, all computed from the same derived indices.
type Assessment struct {
	Types      []MorphologyProbability `json:"types"`
	Factors    []HazardFactor          `json:"factors"`
	Indices    DerivedIndices          `json:"indices"`
	Wind       WindEstimate            `json:"wind"`
	Risk       RiskLevel               `json:"risk"`
	ComputedAt time.Time               `json:"computed_at"`
}

// CalculateProbabilities returns the morphology distribution, hazard factors,
// and derived indices for a sample.
func CalculateProbabilities(s AtmosphericSample) ProbabilityResult {
	d := DeriveIndices(s)
	return ProbabilityResult{
		Types:   ScoreMorphologies(s, d),
		Factors: detectHazards(s, d),
		Indices: d,
	}
}

// EstimateWind returns the wind-speed range and EF classification for a sample.
func EstimateWind(s AtmosphericSample) WindEstimate {
	return estimateWind(s, DeriveIndices(s))
}

// CalculateRiskLevel returns the convective risk tier for a sample.
func CalculateRiskLevel(s AtmosphericSample) RiskLevel {
	return classifyRisk(DeriveIndices(s))
}

// Assess runs the full engine against one sample. The four computations are
// independent; only the derived indices are shared.
func Assess(s AtmosphericSample) Assessment {
	d := DeriveIndices(s)
	return Assessment{
		Types:      ScoreMorphologies(s, d),
		Factors:    detectHazards(s, d),
		Indices:    d,
		Wind:       estimateWind(s, d),
		Risk:       classifyRisk(d),
		ComputedAt: clock.Now(),
	}
}
