// Package workload implements the six synthetic healthcare IoT programs:
// burst transmission, ECG processing, idle states, a mixed activity profile,
// patient monitoring and a stress test.
//
// Each workload is single-threaded and deterministic for a given Config.
// Run streams a console transcript to the supplied writer, checks the context
// between cycles, and returns a Summary of integer counters and derived
// ratios. The transcript is program output, not logging; phase transitions
// are logged separately at debug level.
package workload
