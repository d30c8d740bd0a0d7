// Package kernels holds the compute and memory kernels driven by the stress
// workload. Every kernel works on caller-owned buffers (see Buffers) and
// returns a value derived from its work so callers can fold it into a
// checksum.
package kernels
