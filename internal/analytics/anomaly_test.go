package analytics

import "testing"

func TestDetectAnomaliesSpike(t *testing.T) {
	series := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 11}

	anomalies := DetectAnomalies(series, DefaultZScoreThreshold)
	if len(anomalies) != 1 {
		t.Fatalf("Expected 1 anomaly, got %d", len(anomalies))
	}
	if anomalies[0].Index != 9 {
		t.Errorf("Anomaly index should be 9, got %d", anomalies[0].Index)
	}
	if anomalies[0].Direction != DirectionSpike {
		t.Errorf("Value above mean should be a spike, got %s", anomalies[0].Direction)
	}
	if anomalies[0].ZScore != 3 {
		t.Errorf("Z-score should be 3, got %.4f", anomalies[0].ZScore)
	}
}

func TestDetectAnomaliesDip(t *testing.T) {
	series := []float64{2, 12, 12, 12, 12, 12, 12, 12, 12, 12}

	anomalies := DetectAnomalies(series, DefaultZScoreThreshold)
	if len(anomalies) != 1 {
		t.Fatalf("Expected 1 anomaly, got %d", len(anomalies))
	}
	if anomalies[0].Direction != DirectionDip {
		t.Errorf("Value below mean should be a dip, got %s", anomalies[0].Direction)
	}
}

// TestDetectAnomaliesConstantSeries checks the guarded stdDev: zero variance
// means no outliers, never NaN.
func TestDetectAnomaliesConstantSeries(t *testing.T) {
	series := []float64{500, 500, 500, 500, 500}

	anomalies := DetectAnomalies(series, DefaultZScoreThreshold)
	if len(anomalies) != 0 {
		t.Errorf("Constant series should yield no anomalies, got %d", len(anomalies))
	}
}

func TestDetectAnomaliesShortSeries(t *testing.T) {
	for _, series := range [][]float64{nil, {100}, {100, 5000}} {
		if anomalies := DetectAnomalies(series, DefaultZScoreThreshold); len(anomalies) != 0 {
			t.Errorf("Series of length %d should yield no anomalies, got %d", len(series), len(anomalies))
		}
	}
}

func TestMeanAndStdDev(t *testing.T) {
	series := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := Mean(series)
	if mean != 5 {
		t.Errorf("Mean should be 5, got %.4f", mean)
	}
	if std := StdDev(series, mean); std != 2 {
		t.Errorf("Population std dev should be 2, got %.4f", std)
	}
	if Mean(nil) != 0 {
		t.Error("Mean of empty series should be 0")
	}
	if StdDev(nil, 0) != 0 {
		t.Error("StdDev of empty series should be 0")
	}
}
