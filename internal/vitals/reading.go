package vitals

// SensorType enumerates the mixed workload's sensors.
type SensorType uint8

const (
	SensorHeartRate SensorType = iota
	SensorSpO2
	SensorTemperature
	SensorBloodPressure
	SensorActivity

	// SensorCount is the number of sensor types.
	SensorCount = 5
)

var sensorNames = [SensorCount]string{"heart_rate", "spo2", "temperature", "blood_pressure", "activity"}

func (s SensorType) String() string {
	if int(s) < len(sensorNames) {
		return sensorNames[s]
	}
	return "unknown"
}

// Reading is one sensor sample with its alert flag.
type Reading struct {
	Type      SensorType
	Value     uint16
	Timestamp uint32
	Alert     bool
}

// ReadSensor synthesizes the reading of sensor s at time t and applies its alert band.
func ReadSensor(s SensorType, t uint32) Reading {
	r := Reading{Type: s, Timestamp: t}
	switch s {
	case SensorHeartRate:
		r.Value = uint16(65 + t%30)
		r.Alert = r.Value > 90 || r.Value < 50
	case SensorSpO2:
		r.Value = uint16(94 + t%6)
		r.Alert = r.Value < 95
	case SensorTemperature:
		r.Value = uint16(365 + t%15)
		r.Alert = r.Value > 375 || r.Value < 360
	case SensorBloodPressure:
		r.Value = uint16(120 + t%20)
		r.Alert = r.Value > 140 || r.Value < 90
	case SensorActivity:
		r.Value = uint16(t % 100)
	}
	return r
}

// ReadAll fills dst (which must hold SensorCount readings) and returns the
// number of readings in alert.
func ReadAll(dst []Reading, t uint32) int {
	alerts := 0
	for s := SensorType(0); s < SensorCount; s++ {
		dst[s] = ReadSensor(s, t)
		if dst[s].Alert {
			alerts++
		}
	}
	return alerts
}

// Frame sizing for EncodeReadings.
const (
	ReadingSize    = 4
	FrameCapacity  = 128
	FrameThreshold = 120
)

// EncodeReadings packs readings into frame (type, value hi, value lo, alert) and
// hands it to flush whenever FrameThreshold bytes accumulate, then once more
// for any remainder. It returns the total bytes transmitted. frame must hold
// at least FrameThreshold+ReadingSize bytes.
func EncodeReadings(readings []Reading, frame []byte, flush func([]byte)) int {
	sent, n := 0, 0
	for _, r := range readings {
		frame[n] = byte(r.Type)
		frame[n+1] = byte(r.Value >> 8)
		frame[n+2] = byte(r.Value)
		frame[n+3] = 0
		if r.Alert {
			frame[n+3] = 1
		}
		n += ReadingSize
		if n >= FrameThreshold {
			flush(frame[:n])
			sent += n
			n = 0
		}
	}
	if n > 0 {
		flush(frame[:n])
		sent += n
	}
	return sent
}
