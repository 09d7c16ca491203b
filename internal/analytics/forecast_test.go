package analytics

import "testing"

// TestForecastLinearContinuation checks that a perfectly linear series
// forecasts its exact continuation.
func TestForecastLinearContinuation(t *testing.T) {
	series := []float64{10, 20, 30}

	forecast := ForecastLinear(series, 3)
	want := []float64{40, 50, 60}
	if len(forecast) != len(want) {
		t.Fatalf("Expected %d forecast values, got %d", len(want), len(forecast))
	}
	for i, v := range want {
		if forecast[i] != v {
			t.Errorf("Forecast[%d] should be %.2f, got %.2f", i, v, forecast[i])
		}
	}
}

func TestForecastZeroPeriods(t *testing.T) {
	if forecast := ForecastLinear([]float64{10, 20, 30}, 0); len(forecast) != 0 {
		t.Errorf("Forecasting 0 periods should return nothing, got %d values", len(forecast))
	}
}

func TestForecastClampedAtZero(t *testing.T) {
	series := []float64{30, 20, 10}

	forecast := ForecastLinear(series, 3)
	if forecast[0] != 0 {
		t.Errorf("Downward trend should clamp at 0, got %.2f", forecast[0])
	}
	for i, v := range forecast {
		if v < 0 {
			t.Errorf("Forecast[%d] is negative: %.2f", i, v)
		}
	}
}

func TestForecastDegenerateInput(t *testing.T) {
	forecast := ForecastLinear([]float64{42}, 2)
	if len(forecast) != 2 || forecast[0] != 42 || forecast[1] != 42 {
		t.Errorf("Single-point series should repeat the last value, got %v", forecast)
	}

	forecast = ForecastLinear(nil, 2)
	if len(forecast) != 2 || forecast[0] != 0 || forecast[1] != 0 {
		t.Errorf("Empty series should forecast zeros, got %v", forecast)
	}
}

func TestLinearRegression(t *testing.T) {
	slope, intercept := LinearRegression([]float64{10, 20, 30})
	if slope != 10 || intercept != 10 {
		t.Errorf("Expected slope 10 intercept 10, got %.4f and %.4f", slope, intercept)
	}

	slope, intercept = LinearRegression([]float64{7})
	if slope != 0 || intercept != 7 {
		t.Errorf("Single point should degrade to slope 0 at the mean, got %.4f and %.4f", slope, intercept)
	}
}
