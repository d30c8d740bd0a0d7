// Package vitals synthesizes the patient telemetry consumed by the
// workloads: fixed-layout sensor packets for burst transmission, randomized
// vital-sign samples for the monitor, and the five-sensor readings with alert
// bands used by the mixed workload.
package vitals
