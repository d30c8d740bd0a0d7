package signal

// MovingAverage returns the integer mean of window. An empty window yields 0.
func MovingAverage(window []uint16) uint16 {
	if len(window) == 0 {
		return 0
	}
	var sum uint64
	for _, v := range window {
		sum += uint64(v)
	}
	return uint16(sum / uint64(len(window)))
}

// Derivative returns ring[i] - ring[i-1], treating ring as circular.
func Derivative(ring []uint16, i int) int16 {
	n := len(ring)
	cur := ring[i%n]
	prev := ring[(i-1+n)%n]
	return int16(cur - prev)
}
