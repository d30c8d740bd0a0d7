package signal

// SegmentResult is the outcome of AnalyzeSegment.
type SegmentResult struct {
	Peaks     int
	HeartRate uint16
	Anomaly   bool
}

// Heart-rate band outside which a segment is flagged.
const (
	SegmentHRLow  = 50
	SegmentHRHigh = 100
)

// AnalyzeSegment counts strict local maxima rising more than threshold above
// baseline and scales the count to beats per minute.
func AnalyzeSegment(seg []uint16, baseline, threshold uint16, bpmScale int) SegmentResult {
	var r SegmentResult
	for i := 1; i < len(seg)-1; i++ {
		v := seg[i]
		if v > seg[i-1] && v > seg[i+1] && int(v)-int(baseline) > int(threshold) {
			r.Peaks++
		}
	}
	r.HeartRate = uint16(r.Peaks * bpmScale)
	r.Anomaly = r.HeartRate > SegmentHRHigh || r.HeartRate < SegmentHRLow
	return r
}
