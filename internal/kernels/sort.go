package kernels

// BubbleSort orders a in place, non-decreasing. It returns the number of
// comparisons made.
func BubbleSort(a []uint16) int {
	cmps := 0
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(a)-i-1; j++ {
			cmps++
			if a[j] > a[j+1] {
				a[j], a[j+1] = a[j+1], a[j]
			}
		}
	}
	return cmps
}
