package pairs

import (
	"fmt"
	"math"
)

// spread is the pair's portfolio value: normalized first leg minus
// normalized second leg, elementwise over the panel's time axis.
func spread(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// dispersion is the sample standard deviation (n-1 divisor) of the
// formation-period spread. It is the basis for the trading threshold.
func dispersion(series []float64) (float64, error) {
	if len(series) < 2 {
		return 0, fmt.Errorf("%w: got %d observations", ErrInsufficientHistory, len(series))
	}
	var mean float64
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	var sumSq float64
	for _, v := range series {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(series)-1)), nil
}
