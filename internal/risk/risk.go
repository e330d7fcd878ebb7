package risk

// Limits caps how many pair positions the order layer may hold at once.
// A zero or negative cap disables the check.
type Limits struct {
	MaxOpenPairs int
}

// Allow reports whether a new pair position may be opened given the number
// currently open.
func (l Limits) Allow(open int) bool {
	return l.MaxOpenPairs <= 0 || open < l.MaxOpenPairs
}
