package vitals

import "math/rand/v2"

// Normal resting heart-rate band used by IsAnomalous.
const (
	HeartRateLow  = 40
	HeartRateHigh = 120
)

// PatientSample is one acquisition of the monitor's vital signs.
type PatientSample struct {
	HeartRate uint16 // BPM
	Systolic  uint16 // mmHg
	Diastolic uint16 // mmHg
	SpO2      uint16 // %
	Timestamp uint32 // ms
}

// Acquirer draws PatientSamples from a seeded generator so runs repeat exactly.
type Acquirer struct {
	rng *rand.Rand
}

// NewAcquirer returns an Acquirer seeded with seed.
func NewAcquirer(seed uint64) *Acquirer {
	return &Acquirer{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

// Fill overwrites samples with the acquisition for iteration iter.
func (a *Acquirer) Fill(samples []PatientSample, iter int) {
	for i := range samples {
		samples[i] = PatientSample{
			HeartRate: 70 + uint16(a.rng.IntN(20)),
			Systolic:  110 + uint16(a.rng.IntN(20)),
			Diastolic: 70 + uint16(a.rng.IntN(15)),
			SpO2:      95 + uint16(a.rng.IntN(5)),
			Timestamp: uint32(iter*1000 + i),
		}
	}
}

// IsAnomalous reports a heart rate outside the resting band.
func IsAnomalous(hr uint16) bool {
	return hr < HeartRateLow || hr > HeartRateHigh
}
