// Package busywait provides the spin loops that stand in for sleep states.
// The loops never block or yield; each returns its accumulator so the work
// stays observable.
package busywait

// Monitor spins for duration iterations with a 16-bit counter, flipping
// alternate bits every 1000 iterations as a watchdog touch.
func Monitor(duration int) uint32 {
	var work uint32
	for i := 0; i < duration; i++ {
		work = (work + 1) & 0xFFFF
		if i%1000 == 0 {
			work ^= 0xAAAA
		}
	}
	return work
}

// Watchdog is the minimal status probe run during short and medium sleeps.
func Watchdog(iteration int) uint8 {
	return uint8(iteration & 0x01)
}

// Sleep spins for duration iterations and probes the watchdog every interval
// iterations. It returns the counter and the number of probes made. A
// non-positive interval disables the probe.
func Sleep(duration, interval int) (uint32, int) {
	var counter uint32
	checks := 0
	for i := 0; i < duration; i++ {
		counter++
		if interval > 0 && i%interval == 0 {
			counter += uint32(Watchdog(i))
			checks++
		}
	}
	return counter, checks
}

// DeepSleep spins for duration iterations with an 8-bit counter and no probes.
func DeepSleep(duration int) uint32 {
	var counter uint32
	for i := 0; i < duration; i++ {
		counter = (counter + 1) & 0xFF
	}
	return counter
}

// Gate spins for duration iterations with a counter that wraps at 100.
func Gate(duration int) uint32 {
	var counter uint32
	for i := 0; i < duration; i++ {
		counter++
		if counter%100 == 0 {
			counter = 0
		}
	}
	return counter
}

// WakeUpIterations is the length of the state-restore loop in WakeUp.
const WakeUpIterations = 50

// WakeUp simulates restoring state after a sleep. It returns the latency
// figure, the sum 0..49 = 1225.
func WakeUp() uint16 {
	var latency uint16
	for i := 0; i < WakeUpIterations; i++ {
		latency += uint16(i)
	}
	return latency
}

// Delay spins n iterations summing the index.
func Delay(n int) uint32 {
	var acc uint32
	for i := 0; i < n; i++ {
		acc += uint32(i)
	}
	return acc
}
