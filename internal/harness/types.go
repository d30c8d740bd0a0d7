package harness

import "github.com/roach88/hiot/internal/workload"

// Result is the outcome of a scenario execution.
type Result struct {
	Scenario string `json:"scenario"`

	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	Summary *workload.Summary `json:"summary"`

	// Transcript is the console output of the workload.
	Transcript string `json:"-"`

	// ProfileDigest fingerprints the scenario's overrides, empty when none.
	ProfileDigest string `json:"profile_digest,omitempty"`

	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result for the named scenario.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Errors:   []string{},
	}
}

// AddError records a failed assertion and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
