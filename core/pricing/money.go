package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount kept at two fractional digits.
type Money struct {
	decimal.Decimal
}

var Zero = Money{decimal.Zero}

// Max is the largest amount a NUMERIC(10,2) column holds.
var Max = MustParse("99999999.99")

var (
	ErrPrecision  = errors.New("amount must have at most 2 decimal places")
	ErrOutOfRange = errors.New("amount exceeds the maximum of 99999999.99")
)

func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

func MustParse(s string) Money {
	return NewMoney(decimal.RequireFromString(s))
}

func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parsing money %q: %w", s, err)
	}
	return NewMoney(d), nil
}

func (m Money) Plus(o Money) Money {
	return NewMoney(m.Decimal.Add(o.Decimal))
}

func (m Money) Times(n int) Money {
	return NewMoney(m.Decimal.Mul(decimal.NewFromInt(int64(n))))
}

// Fits reports whether m can be stored.
func (m Money) Fits() bool {
	return m.Abs().LessThanOrEqual(Max.Decimal)
}

func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

// UnmarshalJSON rejects amounts with sub-cent digits instead of rounding
// them away.
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("%s: %w", d, ErrPrecision)
	}
	*m = NewMoney(d)
	return nil
}
