package bonus

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Employee holds a fixed base salary and the bonus policy currently applied
// to it. The policy may be swapped at any time; the salary never changes.
type Employee struct {
	ID     uuid.UUID
	Name   string
	salary float64

	// Boxed so every Store publishes a complete interface value.
	policy atomic.Pointer[boundPolicy]
}

type boundPolicy struct{ Policy }

// NewEmployee validates salary and policy and returns the bound employee.
func NewEmployee(name string, salary float64, policy Policy) (*Employee, error) {
	if !nonNegative(salary) {
		return nil, fmt.Errorf("%w: salary %v", ErrInvalidValue, salary)
	}
	if policy == nil {
		return nil, fmt.Errorf("%w: nil policy", ErrInvalidValue)
	}

	e := &Employee{
		ID:     uuid.New(),
		Name:   name,
		salary: salary,
	}
	e.policy.Store(&boundPolicy{policy})
	return e, nil
}

// Salary returns the base salary.
func (e *Employee) Salary() float64 { return e.salary }

// Policy returns the currently bound policy.
func (e *Employee) Policy() Policy { return e.policy.Load().Policy }

// SetPolicy replaces the bound policy. Totals already returned are unaffected.
func (e *Employee) SetPolicy(p Policy) error {
	if p == nil {
		return fmt.Errorf("%w: nil policy", ErrInvalidValue)
	}
	e.policy.Store(&boundPolicy{p})
	return nil
}

// ComputeTotal applies the bound policy to the base salary.
func (e *Employee) ComputeTotal() float64 {
	return e.Policy().Apply(e.salary)
}
