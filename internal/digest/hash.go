package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash domains. The version suffix leaves room for algorithm changes.
const (
	DomainSummary    = "hiot/summary/v1"
	DomainTranscript = "hiot/transcript/v1"
	DomainProfile    = "hiot/profile/v1"
)

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Summary hashes a workload's integer counters. Counter order does not
// matter.
func Summary(workload string, counters map[string]int64) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"workload": workload,
		"counters": counters,
	})
	if err != nil {
		return "", fmt.Errorf("summary digest: %w", err)
	}
	return hashWithDomain(DomainSummary, canonical), nil
}

// Transcript hashes raw console output.
func Transcript(out []byte) string {
	return hashWithDomain(DomainTranscript, out)
}

// Profile hashes a canonicalizable parameter set, typically the decoded
// profile map.
func Profile(params map[string]any) (string, error) {
	canonical, err := MarshalCanonical(params)
	if err != nil {
		return "", fmt.Errorf("profile digest: %w", err)
	}
	return hashWithDomain(DomainProfile, canonical), nil
}
