package coins

// Symbol names a coin denomination, e.g. "ucore". Fee configuration and
// balances are keyed by Symbol.
type Symbol string

// Validate reports whether s is a well-formed symbol: 1-16 lowercase
// alphanumeric characters, matching the denom conventions the fee plugin
// expects in a signed call's Paid context.
func (s Symbol) Validate() error {
	if len(s) == 0 || len(s) > 16 {
		return ErrInvalidSymbol
	}
	for _, r := range s {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		if !isLower && !isDigit {
			return ErrInvalidSymbol
		}
	}
	return nil
}
