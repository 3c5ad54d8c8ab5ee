package strategy

// ema computes an exponential moving average over closes given oldest-first,
// seeded with the first value. Smoothing factor is 2/(span+1).
//
// Recomputed from scratch every cycle: the window is 60-odd values, and
// avoiding incremental state rules out drift between restarts and refetches.
func ema(closes []float64, span int) float64 {
	if len(closes) == 0 {
		return 0
	}
	alpha := 2.0 / float64(span+1)
	v := closes[0]
	for _, c := range closes[1:] {
		v = c*alpha + v*(1-alpha)
	}
	return v
}
