// Package trend extracts the linear trend from a series of uncertainty
// values. Diagnostic only; nothing here feeds back into aggregation.
package trend

// #region slope
// Slope returns the ordinary least-squares slope of values against their
// index 0..n-1. Returns 0 for fewer than 3 points.
func Slope(values []float64) float64 {
	n := len(values)
	if n < 3 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// #endregion slope
