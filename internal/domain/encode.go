package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// EncodeAssessment serializes an assessment into an OutputEvent for the sink
// topic. The source message key is reused when present; otherwise a
// deterministic key is derived from the raw payload so replaying the same
// observation produces the same key.
func EncodeAssessment(raw RawEvent, a Assessment) (OutputEvent, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize assessment: %w", err)
	}

	key := raw.Key
	if len(key) == 0 {
		key = []byte(deriveKey(raw.Value))
	}

	return OutputEvent{
		Key:   key,
		Value: data,
		Headers: map[string]string{
			"risk_tier":   string(a.Risk.Tier),
			"computed_at": a.ComputedAt.Format(time.RFC3339),
		},
	}, nil
}

// deriveKey hashes the raw observation payload into a short stable key.
func deriveKey(payload []byte) string {
	hash := sha256.Sum256(payload)
	return "obs-" + hex.EncodeToString(hash[:8])
}
