package analytics

import "math"

// DefaultZScoreThreshold is the z-score above which a value counts as an outlier
const DefaultZScoreThreshold = 2.0

// Anomaly directions
const (
	DirectionSpike = "spike"
	DirectionDip   = "dip"
)

// Anomaly marks one outlier in a numeric series
type Anomaly struct {
	Index     int     `json:"index"`
	Value     float64 `json:"value"`
	ZScore    float64 `json:"z_score"`
	Direction string  `json:"direction"`
}

// DetectAnomalies flags the indices of series whose z-score against the
// population mean exceeds threshold. Series shorter than 3 points carry too
// little signal and produce no anomalies. A zero standard deviation is
// floored to 1 so constant series never divide by zero.
func DetectAnomalies(series []float64, threshold float64) []Anomaly {
	if len(series) < 3 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultZScoreThreshold
	}

	mean := Mean(series)
	stdDev := StdDev(series, mean)
	if stdDev == 0 {
		stdDev = 1
	}

	var anomalies []Anomaly
	for i, v := range series {
		z := math.Abs(v-mean) / stdDev
		if z <= threshold {
			continue
		}
		direction := DirectionSpike
		if v < mean {
			direction = DirectionDip
		}
		anomalies = append(anomalies, Anomaly{Index: i, Value: v, ZScore: z, Direction: direction})
	}
	return anomalies
}

// Mean returns the arithmetic mean of series, 0 for an empty series.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// StdDev returns the population standard deviation of series around mean.
func StdDev(series []float64, mean float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range series {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(series)))
}
