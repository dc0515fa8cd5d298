package services_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-hr/app/services"
	"github.com/km-arc/go-hr/framework/metrics"
	"github.com/km-arc/go-hr/hr/bonus"
	"github.com/km-arc/go-hr/hr/role"
	"github.com/km-arc/go-hr/hr/system"
)

type fixture struct {
	svc     *services.HRService
	metrics *metrics.Metrics
	logs    *observer.ObservedLogs
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	m := metrics.New(prometheus.NewRegistry())
	svc := services.NewHRService(role.NewDefaultRegistry(), bonus.DefaultCatalog(), zap.New(core), m, 2)
	return fixture{svc: svc, metrics: m, logs: logs}
}

func TestCreateRole(t *testing.T) {
	f := newFixture(t)

	r, err := f.svc.CreateRole("Manager")
	require.NoError(t, err)
	assert.Equal(t, "Manager", r.Label())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RolesCreated.WithLabelValues("Manager")))
}

func TestCreateRole_UnknownVariant(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateRole("ceo")
	require.ErrorIs(t, err, role.ErrUnknownVariant)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.UnknownVariants))
	assert.Equal(t, 1, f.logs.FilterMessage("role lookup failed").Len())
}

func TestRoles(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"developer", "intern", "manager"}, f.svc.Roles())
}

func TestSameSystem(t *testing.T) {
	f := newFixture(t)

	same, err := f.svc.SameSystem()
	require.NoError(t, err)
	assert.True(t, same)

	sys, err := f.svc.System()
	require.NoError(t, err)
	assert.Equal(t, system.DefaultName, sys.Name())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SharedInstances))
}

func TestPolicies(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"fixed", "percentage"}, f.svc.Policies())
}

func TestComputeSalary(t *testing.T) {
	tests := []struct {
		policy string
		want   float64
		desc   string
	}{
		{"fixed", 45000, "fixed(+5000)"},
		{"percentage", 44000, "percentage(10%)"},
		{"Fixed", 45000, "fixed(+5000)"},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			f := newFixture(t)

			q, err := f.svc.ComputeSalary("Rahim", 40000, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, "Rahim", q.Name)
			assert.Equal(t, 40000.0, q.Salary)
			assert.InDelta(t, tt.want, q.Total, 1e-9)
			assert.Equal(t, tt.want, q.TotalRounded)
			assert.Equal(t, tt.desc, q.Policy)
			assert.NotEqual(t, [16]byte{}, [16]byte(q.ID))
		})
	}
}

func TestComputeSalary_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ComputeSalary("Rahim", 40000, "festival")
	assert.ErrorIs(t, err, bonus.ErrUnknownPolicy)

	_, err = f.svc.ComputeSalary("Rahim", -1, "fixed")
	assert.ErrorIs(t, err, bonus.ErrInvalidValue)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.InvalidValues))
}

func TestReassign_SwapsTotals(t *testing.T) {
	f := newFixture(t)

	e, err := f.svc.Hire("Rahim", 40000, "fixed")
	require.NoError(t, err)
	assert.InDelta(t, 45000, f.svc.Quote(e).Total, 1e-9)

	require.NoError(t, f.svc.Reassign(e, "percentage"))
	assert.InDelta(t, 44000, f.svc.Quote(e).Total, 1e-9)
	assert.Equal(t, 40000.0, e.Salary())

	assert.ErrorIs(t, f.svc.Reassign(e, "festival"), bonus.ErrUnknownPolicy)
	assert.InDelta(t, 44000, f.svc.Quote(e).Total, 1e-9)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TotalsComputed.WithLabelValues("fixed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.TotalsComputed.WithLabelValues("percentage")))
}

func TestQuote_RoundsOnlyForPresentation(t *testing.T) {
	f := newFixture(t)

	e, err := f.svc.Hire("Karim", 100.125, "fixed")
	require.NoError(t, err)

	q := f.svc.Quote(e)
	assert.Equal(t, 5100.125, q.Total)
	assert.Equal(t, 5100.13, q.TotalRounded)
}

func TestQuote_CustomPolicyLabel(t *testing.T) {
	f := newFixture(t)

	e, err := f.svc.Hire("Rahim", 40000, "fixed")
	require.NoError(t, err)
	require.NoError(t, e.SetPolicy(bonus.PolicyFunc(func(b float64) float64 { return b * 2 })))

	q := f.svc.Quote(e)
	assert.Equal(t, "custom", q.Policy)
	assert.InDelta(t, 80000, q.Total, 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TotalsComputed.WithLabelValues("custom")))
}
