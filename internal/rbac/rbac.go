package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"go-hrm/internal/state"
)

// Role-based model kept in memory: the role set is fixed (employee,
// manager, admin) so policies ship with the binary instead of a store.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policies are granted to the lowest role that may perform the action;
// managers inherit employee grants, admins inherit manager grants.
var policies = [][]string{
	{state.RoleEmployee, "timelog", "write"},
	{state.RoleEmployee, "timelog", "read"},
	{state.RoleEmployee, "task", "create"},
	{state.RoleEmployee, "task", "delete"},
	{state.RoleEmployee, "task", "read"},
	{state.RoleEmployee, "leave", "request"},
	{state.RoleEmployee, "leave", "read"},
	{state.RoleEmployee, "payroll", "read"},
	{state.RoleManager, "timelog", "read_all"},
	{state.RoleManager, "task", "review"},
	{state.RoleManager, "leave", "decide"},
	{state.RoleManager, "leave", "grant"},
	{state.RoleManager, "payroll", "process"},
	{state.RoleManager, "payroll", "update"},
	{state.RoleManager, "payroll", "export"},
	{state.RoleManager, "employee", "read"},
	{state.RoleAdmin, "employee", "manage"},
	{state.RoleAdmin, "audit", "read"},
}

//go:generate mockgen -source=rbac.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := e.AddGroupingPolicy(state.RoleManager, state.RoleEmployee); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicy(state.RoleAdmin, state.RoleManager); err != nil {
		return nil, err
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	return &service{enforcer: e}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
