package signal

import "gonum.org/v1/gonum/stat"

// HeartRate converts an RR interval in ms to beats per minute.
func HeartRate(rr uint16) uint16 {
	if rr == 0 {
		return 0
	}
	return uint16(60000 / uint32(rr))
}

// VarianceProxy is the integer population variance of the intervals, the
// coarse HRV figure reported on the console. Fewer than two intervals yield 0.
func VarianceProxy(rr []uint16) uint32 {
	if len(rr) < 2 {
		return 0
	}
	var sum int64
	for _, v := range rr {
		sum += int64(v)
	}
	mean := sum / int64(len(rr))

	var acc int64
	for _, v := range rr {
		d := int64(v) - mean
		acc += d * d
	}
	return uint32(acc / int64(len(rr)))
}

// SDNN is the sample standard deviation of the intervals in ms.
func SDNN(rr []uint16) float64 {
	if len(rr) < 2 {
		return 0
	}
	x := make([]float64, len(rr))
	for i, v := range rr {
		x[i] = float64(v)
	}
	_, std := stat.MeanStdDev(x, nil)
	return std
}

// Arrhythmic reports an irregular rhythm: with at least three intervals, any
// consecutive change larger than a fifth of the earlier interval.
func Arrhythmic(rr []uint16) bool {
	if len(rr) < 3 {
		return false
	}
	for i := 1; i < len(rr); i++ {
		diff := int(rr[i]) - int(rr[i-1])
		if diff < 0 {
			diff = -diff
		}
		if diff > int(rr[i-1])/5 {
			return true
		}
	}
	return false
}
