package coins

import "math"

// Amount is an overflow-checked unsigned integer quantity of a coin. All
// arithmetic returns an error rather than wrapping, matching the CoinsError
// "arithmetic overflow" and "divide-by-zero" kinds.
type Amount uint64

// NewAmount constructs an Amount from a plain integer.
func NewAmount(n uint64) Amount { return Amount(n) }

// Add returns a+b, or ErrOverflow if the sum exceeds the representable range.
func (a Amount) Add(b Amount) (Amount, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Sub returns a-b, or ErrInsufficientFunds if b > a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, ErrInsufficientFunds
	}
	return a - b, nil
}

// Mul returns a*b, or ErrOverflow on overflow.
func (a Amount) Mul(b Amount) (Amount, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/b != a {
		return 0, ErrOverflow
	}
	return product, nil
}

// Div returns a/b, or ErrDivideByZero if b is zero. Division truncates.
func (a Amount) Div(b Amount) (Amount, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

// GreaterThanOrEqual reports whether a >= b.
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a >= b }

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool { return a == 0 }

// Coin pairs an Amount with the Symbol it denominates.
type Coin struct {
	Symbol Symbol
	Amount Amount
}
