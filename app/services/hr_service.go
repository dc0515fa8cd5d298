// Package services composes the HR core packages for the HTTP API and CLI.
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/km-arc/go-hr/framework/metrics"
	"github.com/km-arc/go-hr/hr/bonus"
	"github.com/km-arc/go-hr/hr/role"
	"github.com/km-arc/go-hr/hr/system"
)

// SalaryQuote is a computed total for one employee.
type SalaryQuote struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Salary       float64   `json:"salary"`
	Policy       string    `json:"policy"`
	Total        float64   `json:"total"`
	TotalRounded float64   `json:"total_rounded"`
}

// HRService is the single entry point the delivery layers use.
type HRService struct {
	roles   *role.Registry
	catalog *bonus.Catalog
	logger  *zap.Logger
	metrics *metrics.Metrics
	places  int32
}

// NewHRService wires the service. places is the currency rounding precision
// used for presentation only.
func NewHRService(roles *role.Registry, catalog *bonus.Catalog, logger *zap.Logger, m *metrics.Metrics, places int) *HRService {
	return &HRService{
		roles:   roles,
		catalog: catalog,
		logger:  logger.Named("hr"),
		metrics: m,
		places:  int32(places),
	}
}

// ── Roles ────────────────────────────────────────────────────────────────────

// CreateRole produces a role from discriminator.
func (s *HRService) CreateRole(discriminator string) (role.Role, error) {
	r, err := s.roles.Create(discriminator)
	if err != nil {
		if errors.Is(err, role.ErrUnknownVariant) {
			s.metrics.UnknownVariant()
		}
		s.logger.Warn("role lookup failed", zap.String("discriminator", discriminator), zap.Error(err))
		return nil, err
	}
	s.metrics.RoleCreated(r.Label())
	s.logger.Debug("role created", zap.String("discriminator", discriminator), zap.String("role", r.Label()))
	return r, nil
}

// Roles lists the registered discriminators.
func (s *HRService) Roles() []string {
	return s.roles.Discriminators()
}

// ── Shared system ─────────────────────────────────────────────────────────────

// System returns the shared HR system.
func (s *HRService) System() (*system.HRSystem, error) {
	sys, err := system.Instance()
	if err != nil {
		s.logger.Error("shared system unavailable", zap.Error(err))
		return nil, err
	}
	s.metrics.ObserveConstructions(system.Constructions())
	return sys, nil
}

// SameSystem obtains the shared system twice and reports whether both
// handles are the same instance.
func (s *HRService) SameSystem() (bool, error) {
	first, err := s.System()
	if err != nil {
		return false, err
	}
	second, err := s.System()
	if err != nil {
		return false, err
	}
	return first == second, nil
}

// ── Salaries ─────────────────────────────────────────────────────────────────

// Policies lists the catalogue's policy names.
func (s *HRService) Policies() []string {
	return s.catalog.Names()
}

// Hire creates an employee bound to the named policy.
func (s *HRService) Hire(name string, salary float64, policy string) (*bonus.Employee, error) {
	p, err := s.catalog.Lookup(policy)
	if err != nil {
		s.logger.Warn("unknown policy", zap.String("policy", policy))
		return nil, err
	}
	e, err := bonus.NewEmployee(name, salary, p)
	if err != nil {
		s.metrics.InvalidValue()
		s.logger.Warn("employee rejected", zap.String("name", name), zap.Float64("salary", salary), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("employee hired", zap.Stringer("id", e.ID), zap.String("name", name), zap.String("policy", describe(p)))
	return e, nil
}

// Reassign swaps the employee onto the named policy.
func (s *HRService) Reassign(e *bonus.Employee, policy string) error {
	p, err := s.catalog.Lookup(policy)
	if err != nil {
		return err
	}
	if err := e.SetPolicy(p); err != nil {
		return err
	}
	s.logger.Debug("policy reassigned", zap.Stringer("id", e.ID), zap.String("policy", describe(p)))
	return nil
}

// Quote computes the employee's total under the bound policy.
func (s *HRService) Quote(e *bonus.Employee) SalaryQuote {
	p := e.Policy()
	total := p.Apply(e.Salary())
	s.metrics.TotalComputed(kind(p))

	return SalaryQuote{
		ID:           e.ID,
		Name:         e.Name,
		Salary:       e.Salary(),
		Policy:       describe(p),
		Total:        total,
		TotalRounded: s.Round(total),
	}
}

// ComputeSalary hires an employee on policy and quotes the total.
func (s *HRService) ComputeSalary(name string, salary float64, policy string) (SalaryQuote, error) {
	e, err := s.Hire(name, salary, policy)
	if err != nil {
		return SalaryQuote{}, err
	}
	return s.Quote(e), nil
}

// Round applies the configured currency rounding.
func (s *HRService) Round(v float64) float64 {
	return bonus.RoundCurrency(v, s.places)
}

// kind is a bounded label for metrics.
func kind(p bonus.Policy) string {
	switch p.(type) {
	case bonus.Fixed:
		return bonus.KindFixed
	case bonus.Percentage:
		return bonus.KindPercentage
	default:
		return "custom"
	}
}

func describe(p bonus.Policy) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return kind(p)
}
