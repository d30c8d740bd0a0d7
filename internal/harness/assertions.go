package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/hiot/internal/workload"
)

// AssertionError is returned when an assertion fails.
// It includes the run's counters to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Counters []workload.Counter
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Counters) > 0 {
		fmt.Fprintf(&buf, "\nCounters:\n")
		for _, c := range e.Counters {
			fmt.Fprintf(&buf, "  %s = %d\n", c.Name, c.Value)
		}
	}
	return buf.String()
}

// assertCounter compares a summary counter against the assertion bound.
func assertCounter(s *workload.Summary, a Assertion) error {
	got, ok := s.Counter(a.Counter)
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("counter %s", a.Counter),
			Actual:   "no such counter",
			Counters: s.Counters,
		}
	}

	var held bool
	var relation string
	switch a.Type {
	case AssertCounterEquals:
		held, relation = got == a.Value, "=="
	case AssertCounterAtLeast:
		held, relation = got >= a.Value, ">="
	case AssertCounterAtMost:
		held, relation = got <= a.Value, "<="
	}
	if held {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%s %s %d", a.Counter, relation, a.Value),
		Actual:   fmt.Sprintf("%s = %d", a.Counter, got),
		Counters: s.Counters,
	}
}

// assertOutputContains checks the transcript for a substring.
func assertOutputContains(transcript string, a Assertion) error {
	if strings.Contains(transcript, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("output containing %q", a.Text),
		Actual:   fmt.Sprintf("%d bytes of output without it", len(transcript)),
	}
}

// assertDigestEquals compares the sealed summary digest.
func assertDigestEquals(s *workload.Summary, a Assertion) error {
	if s.Digest == a.Digest {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: a.Digest,
		Actual:   s.Digest,
		Counters: s.Counters,
	}
}

// EvaluateAssertions runs all assertions against a result.
// Returns a list of error messages (empty if all pass).
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertCounterEquals, AssertCounterAtLeast, AssertCounterAtMost:
			err = assertCounter(result.Summary, assertion)
		case AssertOutputContains:
			err = assertOutputContains(result.Transcript, assertion)
		case AssertDigestEquals:
			err = assertDigestEquals(result.Summary, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
