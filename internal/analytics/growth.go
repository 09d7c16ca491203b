package analytics

// Growth computes the percentage change between two adjacent period values.
// A zero previous value cannot be divided by: a metric that appeared from
// nothing reads as +100%, one that stayed at nothing reads as 0%.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / abs(previous) * 100
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
