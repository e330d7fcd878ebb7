package pairs

import (
	"fmt"
	"math"
	"sort"
)

// Measure selects the dissimilarity used to rank candidate pairs. All
// measures produce ascending-is-closer scores so ranking and the skip/top
// selection window behave identically across them.
type Measure string

const (
	// MeasureDistance ranks by the sum of squared differences between the
	// normalized series (the default).
	MeasureDistance Measure = "distance"
	// MeasureCorrelation ranks by 1 minus the Pearson correlation of the
	// normalized series, so the most correlated pair scores lowest.
	MeasureCorrelation Measure = "correlation"
	// MeasureDiagonal ranks by the summed Euclidean distance of each
	// (a, b) observation to the 45-degree diagonal.
	MeasureDiagonal Measure = "diagonal"
)

// candidate is one unordered asset pair with its formation dissimilarity.
// Symbols are kept lexicographically ordered so the tie-break is stable.
type candidate struct {
	a, b     string
	distance float64
}

// rankPairs enumerates every unordered pair of distinct columns, scores it
// with the requested measure, and returns candidates sorted by ascending
// dissimilarity with lexicographic tie-break.
func rankPairs(normalized map[string][]float64, symbols []string, measure Measure) ([]candidate, error) {
	if len(symbols) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientAssets, len(symbols))
	}
	score, err := measure.scorer()
	if err != nil {
		return nil, err
	}

	ranked := make([]candidate, 0, len(symbols)*(len(symbols)-1)/2)
	for i := 0; i < len(symbols); i++ {
		for j := i + 1; j < len(symbols); j++ {
			ranked = append(ranked, candidate{
				a:        symbols[i],
				b:        symbols[j],
				distance: score(normalized[symbols[i]], normalized[symbols[j]]),
			})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		if ranked[i].a != ranked[j].a {
			return ranked[i].a < ranked[j].a
		}
		return ranked[i].b < ranked[j].b
	})
	return ranked, nil
}

// selectPairs drops the skipTop best candidates and keeps the next numTop.
func selectPairs(ranked []candidate, skipTop, numTop int) ([]candidate, error) {
	if numTop <= 0 {
		return nil, fmt.Errorf("%w: num_top must be positive, got %d", ErrInvalidSelection, numTop)
	}
	if skipTop < 0 {
		return nil, fmt.Errorf("%w: skip_top must be non-negative, got %d", ErrInvalidSelection, skipTop)
	}
	if skipTop+numTop > len(ranked) {
		return nil, fmt.Errorf("%w: skip_top(%d)+num_top(%d) exceeds %d available pairs",
			ErrInvalidSelection, skipTop, numTop, len(ranked))
	}
	out := make([]candidate, numTop)
	copy(out, ranked[skipTop:skipTop+numTop])
	return out, nil
}

func (m Measure) scorer() (func(a, b []float64) float64, error) {
	switch m {
	case MeasureDistance, "":
		return sumSquaredDiff, nil
	case MeasureCorrelation:
		return correlationDissimilarity, nil
	case MeasureDiagonal:
		return diagonalDistance, nil
	}
	return nil, fmt.Errorf("%w: unknown ranking measure %q", ErrInvalidSelection, string(m))
}

func sumSquaredDiff(a, b []float64) float64 {
	var total float64
	for i := range a {
		d := a[i] - b[i]
		total += d * d
	}
	return total
}

// correlationDissimilarity is 1 - Pearson correlation, in [0, 2]. Normalized
// series are never constant (a zero range is rejected during scaling), so
// the denominator is always positive.
func correlationDissimilarity(a, b []float64) float64 {
	n := float64(len(a))
	var meanA, meanB float64
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= n
	meanB /= n

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	return 1 - cov/math.Sqrt(varA*varB)
}

// diagonalDistance sums, over the time axis, the Euclidean distance of the
// point (a_i, b_i) to the diagonal line a = b, which in two dimensions is
// |a_i - b_i| / sqrt(2).
func diagonalDistance(a, b []float64) float64 {
	var total float64
	for i := range a {
		total += math.Abs(a[i] - b[i])
	}
	return total / math.Sqrt2
}
