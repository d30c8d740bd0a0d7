// Package harness runs workload scenarios and checks their outcome.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: stress_small
//	description: "Three short stress iterations"
//	workload: stress
//	profile:
//	  stress:
//	    iterations: 3
//	    matrix_size: 4
//	assertions:
//	  - type: counter_equals
//	    counter: matrix_multiplications
//	    value: 3
//	  - type: output_contains
//	    text: "=== Stress Test Complete ==="
//
// The profile block accepts the same fields as a profile file and is
// validated against the same schema.
//
// # Assertion Types
//
//   - counter_equals, counter_at_least, counter_at_most: compare a summary counter
//   - output_contains: the transcript contains text
//   - digest_equals: the summary digest matches exactly
//
// # Golden Files
//
// RunWithGolden compares a scenario's transcript against
// testdata/golden/{name}.golden using goldie. Run the tests with -update to
// regenerate them.
package harness
