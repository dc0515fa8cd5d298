// Package bonus computes salary totals through replaceable bonus policies.
//
//	fixed, _ := bonus.NewFixed(5000)
//	emp, err := bonus.NewEmployee("Rahim", 40000, fixed)
//	emp.ComputeTotal() // 45000
//
//	pct, _ := bonus.NewPercentage(0.10)
//	_ = emp.SetPolicy(pct)
//	emp.ComputeTotal() // 44000
//
// Totals are plain float64 values; nothing here rounds them. Use
// RoundCurrency when a presentation layer needs currency precision.
package bonus

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidValue is returned for negative, non-finite or missing inputs.
var ErrInvalidValue = errors.New("bonus: invalid value")

// Policy derives a total from a base salary. Implementations must be pure.
type Policy interface {
	Apply(base float64) float64
}

// PolicyFunc adapts an ordinary function to Policy.
type PolicyFunc func(base float64) float64

func (f PolicyFunc) Apply(base float64) float64 { return f(base) }

// Fixed adds a constant amount.
type Fixed struct {
	amount float64
}

// NewFixed returns a policy adding amount, which must be finite and >= 0.
func NewFixed(amount float64) (Fixed, error) {
	if !nonNegative(amount) {
		return Fixed{}, fmt.Errorf("%w: fixed amount %v", ErrInvalidValue, amount)
	}
	return Fixed{amount: amount}, nil
}

// Amount returns the constant added by the policy.
func (f Fixed) Amount() float64 { return f.amount }

func (f Fixed) Apply(base float64) float64 { return base + f.amount }

func (f Fixed) String() string { return "fixed(+" + formatFloat(f.amount) + ")" }

// Percentage adds a fraction of the base.
type Percentage struct {
	rate float64
}

// NewPercentage returns a policy adding base*rate; rate must lie in [0, 1].
func NewPercentage(rate float64) (Percentage, error) {
	if !nonNegative(rate) || rate > 1 {
		return Percentage{}, fmt.Errorf("%w: percentage rate %v", ErrInvalidValue, rate)
	}
	return Percentage{rate: rate}, nil
}

// Rate returns the fraction added by the policy.
func (p Percentage) Rate() float64 { return p.rate }

// The conversion keeps the product rounded on its own, so results do not
// depend on whether the platform fuses multiply-add.
func (p Percentage) Apply(base float64) float64 { return base + float64(base*p.rate) }

func (p Percentage) String() string { return "percentage(" + formatFloat(p.rate*100) + "%)" }

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
