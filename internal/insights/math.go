package insights

import "math"

// Mean returns the arithmetic mean of values, or NaN for an empty slice.
// The NaN is the engine's "no data" marker and must be checked by anything
// that formats or serializes the result.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationStdDev returns the population standard deviation of values
// (NaN for an empty slice). Population rather than sample variance matches
// the z-score convention used by the anomaly detector.
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// Round1 rounds to one decimal place, used at presentation time only.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
