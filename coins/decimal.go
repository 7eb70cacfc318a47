package coins

import (
	"github.com/shopspring/decimal"
)

// Decimal is a fixed-point value used for exchange-rate and pool-share
// arithmetic where integer Amount truncation would be unacceptable.
type Decimal struct {
	d decimal.Decimal
}

// ZeroDecimal is the additive identity.
func ZeroDecimal() Decimal { return Decimal{d: decimal.Zero} }

// OneDecimal is the multiplicative identity.
func OneDecimal() Decimal { return Decimal{d: decimal.NewFromInt(1)} }

// DecimalFromAmount lifts an integer Amount into a Decimal.
func DecimalFromAmount(a Amount) Decimal {
	return Decimal{d: decimal.NewFromUint64(uint64(a))}
}

// DecimalFromString parses a decimal literal such as "1.25".
func DecimalFromString(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, ErrInvalidSymbol
	}
	return Decimal{d: d}, nil
}

func (d Decimal) String() string { return d.d.String() }

// Add returns d+other.
func (d Decimal) Add(other Decimal) Decimal { return Decimal{d: d.d.Add(other.d)} }

// Sub returns d-other.
func (d Decimal) Sub(other Decimal) Decimal { return Decimal{d: d.d.Sub(other.d)} }

// Mul returns d*other.
func (d Decimal) Mul(other Decimal) Decimal { return Decimal{d: d.d.Mul(other.d)} }

// Div returns d/other, or ErrDivideByZero if other is zero.
func (d Decimal) Div(other Decimal) (Decimal, error) {
	if other.d.IsZero() {
		return Decimal{}, ErrDivideByZero
	}
	return Decimal{d: d.d.Div(other.d)}, nil
}

// Amount rounds d to the nearest integer Amount. Negative values are
// rejected per the "amounts may not be negative" rule.
func (d Decimal) Amount() (Amount, error) {
	if d.d.IsNegative() {
		return 0, ErrNegative
	}
	rounded := d.d.Round(0)
	if !rounded.BigInt().IsUint64() {
		return 0, ErrOverflow
	}
	return Amount(rounded.BigInt().Uint64()), nil
}

// MarshalBinary implements a fixed-width 16-byte encoding matching the
// source framework's on-disk Decimal representation (the value scaled by
// 10^18 to an integer, packed into a wide fixed field with the sign in the
// top bit, so two decimals with equal value compare byte-equal).
func (d Decimal) MarshalBinary() ([]byte, error) {
	coeff := d.d.Shift(18).BigInt()
	out := make([]byte, 16)
	coeffBytes := coeff.Bytes()
	copy(out[16-len(coeffBytes):], coeffBytes)
	if coeff.Sign() < 0 {
		out[0] |= 0x80
	}
	return out, nil
}
