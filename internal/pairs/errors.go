package pairs

import "errors"

// Failure kinds surfaced by formation and trading. Detection sites wrap these
// with the offending asset or pair identifier; match with errors.Is.
var (
	ErrDegenerateSeries    = errors.New("degenerate series: zero price range")
	ErrInsufficientAssets  = errors.New("insufficient assets: need at least two columns")
	ErrInsufficientHistory = errors.New("insufficient history: need at least two rows")
	ErrInvalidSelection    = errors.New("invalid pair selection window")
	ErrUnknownPair         = errors.New("unknown pair")
	ErrNotFitted           = errors.New("model not fitted")
	ErrNotTraded           = errors.New("no trading results yet")
)
