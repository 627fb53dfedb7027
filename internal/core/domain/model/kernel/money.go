package kernel

import (
	"fmt"

	"fleetdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in the branch's currency, kept as a decimal
// so cash-on-delivery sums never drift through float rounding.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns an amount of 0.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal literal such as "125000.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("amount %q", s), err)
	}
	return NewMoney(amount)
}

// MoneyFromFloat converts a JSON number. Use MoneyFromString where the
// exact literal is available.
func MoneyFromFloat(f float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(f))
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) IsPositive() bool { return m.amount.IsPositive() }

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Float64 is used by read models that serialize amounts as JSON numbers.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String formats the amount with two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
