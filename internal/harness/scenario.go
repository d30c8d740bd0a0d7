package harness

import (
	"bytes"
	"fmt"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/roach88/hiot/internal/workload"
)

// Scenario runs one workload under a profile and checks its outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Workload is a registered workload name such as "burst".
	Workload string `yaml:"workload"`

	// Profile holds parameter overrides in the same shape as a profile file.
	Profile map[string]any `yaml:"profile,omitempty"`

	// Assertions validate the summary and transcript.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks a single property of a workload run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Counter names the summary counter (counter_* assertions).
	Counter string `yaml:"counter,omitempty"`

	// Value is the bound or expected counter value.
	Value int64 `yaml:"value,omitempty"`

	// Text must appear in the transcript (output_contains).
	Text string `yaml:"text,omitempty"`

	// Digest is the expected summary digest (digest_equals).
	Digest string `yaml:"digest,omitempty"`
}

// Assertion type constants.
const (
	AssertCounterEquals  = "counter_equals"
	AssertCounterAtLeast = "counter_at_least"
	AssertCounterAtMost  = "counter_at_most"
	AssertOutputContains = "output_contains"
	AssertDigestEquals   = "digest_equals"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos like "assertion:" fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Workload == "" {
		return fmt.Errorf("workload is required")
	}
	if !lo.Contains(workload.Names(), s.Workload) {
		return fmt.Errorf("workload %q: %w", s.Workload, workload.ErrUnknownWorkload)
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertCounterEquals, AssertCounterAtLeast, AssertCounterAtMost:
		if a.Counter == "" {
			return fmt.Errorf("assertion[%d]: %s requires 'counter' field", index, a.Type)
		}
	case AssertOutputContains:
		if a.Text == "" {
			return fmt.Errorf("assertion[%d]: output_contains requires 'text' field", index)
		}
	case AssertDigestEquals:
		if a.Digest == "" {
			return fmt.Errorf("assertion[%d]: digest_equals requires 'digest' field", index)
		}
	case "":
		return fmt.Errorf("assertion[%d]: type is required", index)
	default:
		return fmt.Errorf("assertion[%d]: unknown type %q", index, a.Type)
	}
	return nil
}
