package analytics

import "math"

// tradingDaysPerYear annualises the daily Sharpe and per-trade Sortino ratios.
const tradingDaysPerYear = 252

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

// stddev is the population standard deviation.
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// downsideStddev is the population standard deviation of the negative values only.
func downsideStddev(values []float64) float64 {
	negatives := make([]float64, 0, len(values))
	for _, v := range values {
		if v < 0 {
			negatives = append(negatives, v)
		}
	}
	return stddev(negatives)
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
