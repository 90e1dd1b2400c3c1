package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-hrm/internal/state"
)

func TestEnforce_EmployeeBaseline(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	cases := []struct {
		resource, action string
		allowed          bool
	}{
		{"timelog", "write", true},
		{"task", "create", true},
		{"leave", "request", true},
		{"payroll", "read", true},
		{"payroll", "process", false},
		{"leave", "decide", false},
		{"employee", "manage", false},
		{"audit", "read", false},
	}
	for _, tc := range cases {
		ok, err := svc.Enforce(state.RoleEmployee, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, ok, "employee %s:%s", tc.resource, tc.action)
	}
}

func TestEnforce_ManagerInheritsEmployee(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	// Own grants.
	for _, pair := range [][2]string{
		{"payroll", "process"}, {"leave", "decide"}, {"leave", "grant"},
		{"task", "review"}, {"timelog", "read_all"}, {"employee", "read"},
	} {
		ok, err := svc.Enforce(state.RoleManager, pair[0], pair[1])
		assert.NoError(t, err)
		assert.True(t, ok, "manager %s:%s", pair[0], pair[1])
	}

	// Inherited from employee.
	ok, err := svc.Enforce(state.RoleManager, "timelog", "write")
	assert.NoError(t, err)
	assert.True(t, ok)

	// Still not admin.
	ok, err = svc.Enforce(state.RoleManager, "employee", "manage")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEnforce_AdminInheritsEverything(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	for _, pair := range [][2]string{
		{"employee", "manage"}, {"audit", "read"},
		{"payroll", "process"}, {"timelog", "write"},
	} {
		ok, err := svc.Enforce(state.RoleAdmin, pair[0], pair[1])
		assert.NoError(t, err)
		assert.True(t, ok, "admin %s:%s", pair[0], pair[1])
	}
}

func TestEnforce_UnknownRoleDeniedEverything(t *testing.T) {
	svc, err := NewService()
	assert.NoError(t, err)

	ok, err := svc.Enforce("contractor", "timelog", "write")
	assert.NoError(t, err)
	assert.False(t, ok)
}
