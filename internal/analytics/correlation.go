package analytics

import "math"

// PearsonCorrelation 두 수열의 피어슨 상관계수.
// 길이가 다르거나 2 미만이거나 분산이 0이면 null이다.
func PearsonCorrelation(xs, ys []float64) *float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return nil
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return nil
	}

	r := cov / math.Sqrt(varX*varY)
	return &r
}
