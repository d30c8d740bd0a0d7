// Package signal holds the ECG signal chain: a synthetic waveform source,
// moving-average and derivative filters, a derivative-threshold QRS detector
// and the heart-rate and variability metrics derived from its RR intervals.
//
// Amplitudes are unsigned samples around a 1024 baseline; timestamps are
// milliseconds derived from the sample index and sampling rate.
package signal
