package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-hr/hr/bonus"
	"github.com/km-arc/go-hr/hr/role"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "testing")

	var out bytes.Buffer
	cmd := newRootCmd(zap.NewNop())
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemo(t *testing.T) {
	out, err := run(t, "demo")
	require.NoError(t, err)

	want := "Factory Example: Employee 1 Role: Manager\n" +
		"Factory Example: Employee 2 Role: Developer\n" +
		"Singleton Example: Company HR System\n" +
		"Singleton Example: Both instances are same\n" +
		"Strategy Example (Fixed): Rahim's total salary: 45000 BDT\n" +
		"Strategy Example (Percentage): Rahim's total salary: 44000 BDT\n"
	assert.Equal(t, want, out)
}

func TestRoleCommand(t *testing.T) {
	out, err := run(t, "role", "INTERN")
	require.NoError(t, err)
	assert.Equal(t, "Intern\n", out)

	_, err = run(t, "role", "ceo")
	assert.ErrorIs(t, err, role.ErrUnknownVariant)
}

func TestSystemCommand(t *testing.T) {
	out, err := run(t, "system")
	require.NoError(t, err)
	assert.Equal(t, "Company HR System (same instance: true)\n", out)
}

func TestSalaryCommand(t *testing.T) {
	out, err := run(t, "salary", "--name", "Rahim", "--salary", "40000", "--policy", "fixed", "--swap", "percentage")
	require.NoError(t, err)
	assert.Equal(t, "Rahim: 45000 BDT (fixed(+5000))\nRahim: 44000 BDT (percentage(10%))\n", out)
}

func TestSalaryCommand_Errors(t *testing.T) {
	_, err := run(t, "salary", "--name", "Rahim", "--salary=-5")
	assert.ErrorIs(t, err, bonus.ErrInvalidValue)

	_, err = run(t, "salary", "--name", "Rahim", "--salary", "40000", "--policy", "festival")
	assert.ErrorIs(t, err, bonus.ErrUnknownPolicy)

	_, err = run(t, "salary", "--salary", "40000")
	assert.Error(t, err)
}
