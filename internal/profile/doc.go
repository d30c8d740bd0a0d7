// Package profile loads workload parameter overrides from YAML or CUE files.
//
// Both formats are unified against the embedded #Profile definition, so
// misspelled fields and out-of-range values are rejected before any
// workload runs. The result is applied on top of workload.DefaultConfig.
package profile
