package pairs

// positionState enumerates the per-pair trading state machine.
type positionState int

const (
	stateFlat positionState = iota
	stateShortSpread
	stateLongSpread
)

// Target positions emitted per timestamp.
const (
	SignalShort = -1
	SignalFlat  = 0
	SignalLong  = 1
)

// runSignals scans a portfolio series left to right and emits the target
// position at each timestamp. threshold is divergence × dispersion.
//
// From flat, a spread above the threshold opens a short (sell the spread,
// expect convergence down) and below the negative threshold opens a long.
// An open position is held until the spread touches or crosses zero, at
// which point the emission for that timestamp is already flat; re-entry is
// evaluated fresh from the next timestamp. A position still open at the
// final timestamp is left open unless closeAtEnd forces it flat.
func runSignals(portfolio []float64, threshold float64, closeAtEnd bool) []int {
	out := make([]int, len(portfolio))
	state := stateFlat
	for i, v := range portfolio {
		switch state {
		case stateFlat:
			switch {
			case v > threshold:
				out[i] = SignalShort
				state = stateShortSpread
			case v < -threshold:
				out[i] = SignalLong
				state = stateLongSpread
			default:
				out[i] = SignalFlat
			}
		case stateShortSpread:
			if v <= 0 {
				out[i] = SignalFlat
				state = stateFlat
			} else {
				out[i] = SignalShort
			}
		case stateLongSpread:
			if v >= 0 {
				out[i] = SignalFlat
				state = stateFlat
			} else {
				out[i] = SignalLong
			}
		}
	}
	if closeAtEnd && state != stateFlat && len(out) > 0 {
		out[len(out)-1] = SignalFlat
	}
	return out
}
