package analytics

// LinearRegression fits an ordinary least-squares line through
// (index, value) pairs. When the denominator degenerates (all x equal,
// possible only for a single point here) the slope is 0 and the intercept
// is the mean.
func LinearRegression(series []float64) (slope, intercept float64) {
	n := float64(len(series))
	if n == 0 {
		return 0, 0
	}

	meanX := (n - 1) / 2
	meanY := Mean(series)

	var num, den float64
	for i, y := range series {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0, meanY
	}
	slope = num / den
	intercept = meanY - slope*meanX
	return slope, intercept
}

// ForecastLinear extrapolates the fitted trend n periods past the end of the
// series. Forecasts are clamped at 0: a financial flow cannot forecast a
// negative magnitude in this model. With fewer than 2 historical points the
// last known value (or 0 with no history) is repeated for all n periods.
func ForecastLinear(series []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	forecast := make([]float64, n)
	if len(series) < 2 {
		var last float64
		if len(series) == 1 {
			last = series[0]
		}
		if last < 0 {
			last = 0
		}
		for i := range forecast {
			forecast[i] = last
		}
		return forecast
	}

	slope, intercept := LinearRegression(series)
	for i := range forecast {
		x := float64(len(series) + i)
		v := slope*x + intercept
		if v < 0 {
			v = 0
		}
		forecast[i] = v
	}
	return forecast
}
