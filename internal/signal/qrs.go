package signal

// DetectorConfig tunes the QRS detector.
type DetectorConfig struct {
	// Threshold is compared against the squared first derivative: a sample is a
	// QRS candidate when derivative² > Threshold².
	Threshold int

	// RefractoryMS suppresses candidates this close to the previous complex.
	RefractoryMS uint32

	// MaxRRMS drops RR intervals longer than this (missed beats).
	MaxRRMS uint32

	// MaxBeats caps the stored QRS timestamps and RR intervals per batch.
	MaxBeats int

	// Warmup is the number of leading samples used only to fill history.
	Warmup int
}

// DefaultDetectorConfig returns the detector settings for 360 Hz ECG.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Threshold:    150,
		RefractoryMS: 240,
		MaxRRMS:      2000,
		MaxBeats:     100,
		Warmup:       10,
	}
}

// HeartMetrics summarises one analysed batch.
type HeartMetrics struct {
	HeartRate   uint16  `json:"heart_rate"`
	RRInterval  uint16  `json:"rr_interval"`
	HRV         uint32  `json:"hrv"`
	SDNN        float64 `json:"sdnn"`
	Arrhythmia  bool    `json:"arrhythmia"`
	QRSDetected int     `json:"qrs_detected"`
}

// Detector is a derivative-and-threshold QRS detector. Its working buffers
// are allocated once and reused; Process resets all per-batch state.
type Detector struct {
	cfg   DetectorConfig
	ring  []uint16
	beats []uint32
	rr    []uint16
}

// NewDetector returns a detector whose history ring holds ringSize samples.
func NewDetector(cfg DetectorConfig, ringSize int) *Detector {
	return &Detector{
		cfg:   cfg,
		ring:  make([]uint16, ringSize),
		beats: make([]uint32, 0, cfg.MaxBeats),
		rr:    make([]uint16, 0, cfg.MaxBeats),
	}
}

// Process runs detection over a batch, setting the QRS flag on detected
// samples. ok is false when the batch produced no RR interval, in which case
// the returned metrics only carry QRSDetected.
func (d *Detector) Process(samples []Sample) (m HeartMetrics, ok bool) {
	d.beats = d.beats[:0]
	d.rr = d.rr[:0]

	limit := int64(d.cfg.Threshold) * int64(d.cfg.Threshold)
	var last uint32
	haveLast := false

	for i := range samples {
		samples[i].QRS = false
		d.ring[i%len(d.ring)] = samples[i].Amplitude
		if i < d.cfg.Warmup || i == 0 {
			continue
		}

		deriv := int64(Derivative(d.ring, i))
		if deriv*deriv <= limit {
			continue
		}
		ts := samples[i].Timestamp
		if haveLast && ts-last < d.cfg.RefractoryMS {
			continue
		}

		samples[i].QRS = true
		m.QRSDetected++
		if haveLast && len(d.beats) < d.cfg.MaxBeats {
			if interval := ts - last; interval <= d.cfg.MaxRRMS && len(d.rr) < d.cfg.MaxBeats {
				d.rr = append(d.rr, uint16(interval))
			}
		}
		if len(d.beats) < d.cfg.MaxBeats {
			d.beats = append(d.beats, ts)
		}
		last, haveLast = ts, true
	}

	if len(d.rr) == 0 {
		return m, false
	}
	m.RRInterval = d.rr[len(d.rr)-1]
	m.HeartRate = HeartRate(m.RRInterval)
	m.HRV = VarianceProxy(d.rr)
	m.SDNN = SDNN(d.rr)
	m.Arrhythmia = Arrhythmic(d.rr)
	return m, true
}

// Beats returns the QRS timestamps stored by the last Process call.
func (d *Detector) Beats() []uint32 { return d.beats }

// Intervals returns the RR intervals stored by the last Process call.
func (d *Detector) Intervals() []uint16 { return d.rr }
