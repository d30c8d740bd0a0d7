package signal

import "math"

// Synthetic waveform shape.
const (
	Baseline    = 1024
	SineAmp     = 100.0
	SineHz      = 1.2
	SpikePeriod = 300
	SpikeWidth  = 10
	SpikeHeight = 200.0
	NoisePeriod = 7
	DefaultRate = 360
	msPerSecond = 1000
)

// Sample is one ECG reading.
type Sample struct {
	Amplitude uint16
	Timestamp uint32 // ms
	QRS       bool
}

// GenerateECG returns the synthetic amplitude at a global sample index: a
// 1.2 Hz sine, a rectangular QRS spike every SpikePeriod samples and a small
// sawtooth noise term, offset into the positive range.
func GenerateECG(index uint64, rate int) uint16 {
	t := float64(index) / float64(rate)
	v := SineAmp * math.Sin(2*math.Pi*SineHz*t)
	if index%SpikePeriod < SpikeWidth {
		v += SpikeHeight
	}
	v += float64(int(index%NoisePeriod) - 3)
	return uint16(v + Baseline)
}

// Timestamp converts a global sample index into milliseconds.
func Timestamp(index uint64, rate int) uint32 {
	return uint32(index * msPerSecond / uint64(rate))
}

// Fill regenerates samples for the batch that starts at global index start.
func Fill(samples []Sample, start uint64, rate int) {
	for i := range samples {
		idx := start + uint64(i)
		samples[i] = Sample{
			Amplitude: GenerateECG(idx, rate),
			Timestamp: Timestamp(idx, rate),
		}
	}
}

// SyntheticSegment writes a one-lead segment with a triangular complex every
// 60 samples peaking 200 above baseline at offset 5, shifted by iteration%10.
// The mixed workload analyses it with AnalyzeSegment.
func SyntheticSegment(dst []uint16, iteration uint64) {
	offset := uint16(iteration % 10)
	for i := range dst {
		v := uint16(Baseline) + offset
		if p := i % 60; p < 10 {
			d := p - 5
			if d < 0 {
				d = -d
			}
			v += uint16(200 - 40*d)
		}
		dst[i] = v
	}
}
