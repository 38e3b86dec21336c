package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ObservationRecord is the flat JSON structure produced by the in-game
// observation collector. All fields arrive as strings because they originate
// from free-text entry; blank and unparseable values are treated as zero.
type ObservationRecord struct {
	CAPE        string `json:"CAPE"`
	SRH         string `json:"SRH"`
	PWAT        string `json:"PWAT"`
	LapseRate03 string `json:"LAPSE_RATE_0_3"`
	LapseRate36 string `json:"LAPSE_RATE_3_6"`
	Temp        string `json:"TEMP"`
	Dewpoint    string `json:"DEWPOINT"`
	SurfaceRH   string `json:"SURFACE_RH"`
	MidRH       string `json:"RH_MID"`
	StormSpeed  string `json:"STORM_SPEED"`
	CAPE3KM     string `json:"CAPE_3KM"`
	STP         string `json:"STP,omitempty"` // optional, overrides the derived value
	VTP         string `json:"VTP,omitempty"` // optional, overrides the derived value
}

// AtmosphericSample is the parsed parameter set the engine operates on.
// Absent fields are zero; STP and VTP stay in raw string form until
// [DeriveIndices] decides between parsing and deriving them.
type AtmosphericSample struct {
	CAPE        float64
	SRH         float64
	PWAT        float64
	LapseRate03 float64
	LapseRate36 float64
	Temp        float64
	Dewpoint    float64
	SurfaceRH   float64
	MidRH       float64
	StormSpeed  float64
	CAPE3KM     float64
	STP         string
	VTP         string
}

// ParseObservation deserializes a RawEvent's value into an AtmosphericSample.
// Only structurally invalid JSON is an error; bad field values coerce to zero.
func ParseObservation(raw RawEvent) (AtmosphericSample, error) {
	var rec ObservationRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return AtmosphericSample{}, fmt.Errorf("parse observation: %w", err)
	}
	return SampleFromRecord(rec), nil
}

// SampleFromRecord applies the permissive numeric coercion to a record.
func SampleFromRecord(rec ObservationRecord) AtmosphericSample {
	return AtmosphericSample{
		CAPE:        floatOrZero(rec.CAPE),
		SRH:         floatOrZero(rec.SRH),
		PWAT:        floatOrZero(rec.PWAT),
		LapseRate03: floatOrZero(rec.LapseRate03),
		LapseRate36: floatOrZero(rec.LapseRate36),
		Temp:        floatOrZero(rec.Temp),
		Dewpoint:    floatOrZero(rec.Dewpoint),
		SurfaceRH:   floatOrZero(rec.SurfaceRH),
		MidRH:       floatOrZero(rec.MidRH),
		StormSpeed:  floatOrZero(rec.StormSpeed),
		CAPE3KM:     floatOrZero(rec.CAPE3KM),
		STP:         strings.TrimSpace(rec.STP),
		VTP:         strings.TrimSpace(rec.VTP),
	}
}

// floatOrZero parses a string as float64, returning 0 on failure.
// NaN and infinities also collapse to 0 so they cannot leak into the scoring
// arithmetic.
func floatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
