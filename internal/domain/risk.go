package domain

import "math"

// RiskTier is an SPC-style convective outlook tier.
type RiskTier string

const (
	TierTSTM RiskTier = "TSTM"
	TierMRGL RiskTier = "MRGL"
	TierSLGT RiskTier = "SLGT"
	TierENH  RiskTier = "ENH"
	TierMDT  RiskTier = "MDT"
	TierHIGH RiskTier = "HIGH"
)

// tierColors are the outlook display colors the chart layer expects.
var tierColors = map[RiskTier]string{
	TierTSTM: "#C1E9C1",
	TierMRGL: "#66A366",
	TierSLGT: "#FFE066",
	TierENH:  "#FFA366",
	TierMDT:  "#E06666",
	TierHIGH: "#EE99EE",
}

var tierRanks = map[RiskTier]int{
	TierTSTM: 0, TierMRGL: 1, TierSLGT: 2, TierENH: 3, TierMDT: 4, TierHIGH: 5,
}

// RiskLevel is a classified tier plus the rounded indices that produced it.
type RiskLevel struct {
	Tier  RiskTier `json:"tier"`
	Color string   `json:"color"`
	STP   float64  `json:"stp"`
	VTP   float64  `json:"vtp"`
}

// SeverityRank orders tiers from TSTM (0) to HIGH (5).
func (r RiskLevel) SeverityRank() int { return tierRanks[r.Tier] }

// classifyRisk maps the derived indices onto the tier ladder. Evaluation is
// first-match-wins from HIGH downward, each tier an OR of an STP test and a
// VTP test. The SLGT arm repeats ENH's VTP >= 1 test; because ENH is checked
// first it always absorbs that overlap, leaving STP as the only road into
// SLGT. Kept as-is to match the shipped calculator.
func classifyRisk(d DerivedIndices) RiskLevel {
	var tier RiskTier
	switch {
	case d.STP >= 11 || d.VTP >= 3:
		tier = TierHIGH
	case d.STP >= 7 || d.VTP >= 2:
		tier = TierMDT
	case d.STP >= 5 || d.VTP >= 1:
		tier = TierENH
	case d.STP >= 3 || d.VTP >= 1:
		tier = TierSLGT
	case d.STP > 0 || d.VTP > 0:
		tier = TierMRGL
	default:
		tier = TierTSTM
	}

	return RiskLevel{
		Tier:  tier,
		Color: tierColors[tier],
		STP:   roundTo2(d.STP),
		VTP:   roundTo2(d.VTP),
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
