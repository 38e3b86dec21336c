package domain

import (
	"math"
	"strconv"
)

// STP and VTP are clamped into the ranges the game UI displays.
const (
	stpMax = 64
	vtpMax = 16
)

// DerivedIndices holds the secondary indices computed from a sample. They are
// recomputed on every call; there is no caching or lifecycle.
type DerivedIndices struct {
	STP       float64 `json:"stp"`
	VTP       float64 `json:"vtp"`
	DewSpread float64 `json:"dew_spread"`
}

// DeriveIndices resolves STP, VTP, and the dewpoint spread for a sample.
// A supplied STP/VTP string wins if it parses to a finite number; otherwise
// the index is derived from the raw fields. Both paths clamp into the fixed
// display ranges.
func DeriveIndices(s AtmosphericSample) DerivedIndices {
	stp, ok := parseFinite(s.STP)
	if !ok {
		stp = (s.CAPE / 1500) * (s.SRH / 150) * (s.PWAT / 1.5) * 10
	}

	vtp, ok := parseFinite(s.VTP)
	if !ok {
		vtp = (s.CAPE / 2000) * (s.SRH / 200) * (s.LapseRate03 / 9) * 5
	}

	return DerivedIndices{
		STP:       clamp(stp, 0, stpMax),
		VTP:       clamp(vtp, 0, vtpMax),
		DewSpread: math.Max(0, s.Temp-s.Dewpoint),
	}
}

// parseFinite reports whether s holds a finite float, returning it if so.
func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
