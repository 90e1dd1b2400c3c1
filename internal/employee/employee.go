package employee

import (
	"slices"
	"time"

	"github.com/google/uuid"

	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/state"
)

// Pure employee-record transitions. Each employee carries an overtime
// settings row from creation; the top target tier defaults to a higher
// multiplier.

const topTierMultiplier = 1.25

type NewEmployee struct {
	FullName          string
	Email             string
	PasswordHash      string
	Role              string
	ManagerID         *uuid.UUID
	MonthlyHourTarget int
	HourlyRate        int64
}

func ApplyCreate(st *state.HRMState, in NewEmployee, now time.Time) (*state.Employee, error) {
	switch in.Role {
	case state.RoleEmployee, state.RoleManager, state.RoleAdmin:
	default:
		return nil, employeeerrors.ErrInvalidRole
	}
	if !slices.Contains(state.MonthlyTargets, in.MonthlyHourTarget) {
		return nil, employeeerrors.ErrInvalidTarget
	}
	if in.HourlyRate < 0 {
		return nil, employeeerrors.ErrInvalidRate
	}
	if st.EmployeeByEmail(in.Email) != nil {
		return nil, employeeerrors.ErrEmailTaken
	}
	if in.ManagerID != nil && st.EmployeeByID(*in.ManagerID) == nil {
		return nil, employeeerrors.ErrInvalidManager
	}

	emp := state.Employee{
		ID:                uuid.New(),
		FullName:          in.FullName,
		Email:             in.Email,
		Password:          in.PasswordHash,
		Role:              in.Role,
		ManagerID:         in.ManagerID,
		MonthlyHourTarget: in.MonthlyHourTarget,
		HourlyRate:        in.HourlyRate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	st.Employees = append(st.Employees, emp)

	multiplier := payrollMultiplierFor(in.MonthlyHourTarget)
	st.OvertimeSettings = append(st.OvertimeSettings, state.OvertimeSettings{
		EmployeeID:         emp.ID,
		OvertimeMultiplier: multiplier,
		UpdatedAt:          now,
	})
	return &st.Employees[len(st.Employees)-1], nil
}

type UpdateEmployee struct {
	FullName          *string
	Role              *string
	ManagerID         *uuid.UUID
	ClearManager      bool
	MonthlyHourTarget *int
	HourlyRate        *int64
}

func ApplyUpdate(st *state.HRMState, id uuid.UUID, in UpdateEmployee, now time.Time) (*state.Employee, error) {
	emp := st.EmployeeByID(id)
	if emp == nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	if in.FullName != nil {
		emp.FullName = *in.FullName
	}
	if in.Role != nil {
		switch *in.Role {
		case state.RoleEmployee, state.RoleManager, state.RoleAdmin:
			emp.Role = *in.Role
		default:
			return nil, employeeerrors.ErrInvalidRole
		}
	}
	if in.ClearManager {
		emp.ManagerID = nil
	} else if in.ManagerID != nil {
		if st.EmployeeByID(*in.ManagerID) == nil {
			return nil, employeeerrors.ErrInvalidManager
		}
		emp.ManagerID = in.ManagerID
	}
	if in.MonthlyHourTarget != nil {
		if !slices.Contains(state.MonthlyTargets, *in.MonthlyHourTarget) {
			return nil, employeeerrors.ErrInvalidTarget
		}
		emp.MonthlyHourTarget = *in.MonthlyHourTarget
	}
	if in.HourlyRate != nil {
		if *in.HourlyRate < 0 {
			return nil, employeeerrors.ErrInvalidRate
		}
		emp.HourlyRate = *in.HourlyRate
	}

	emp.UpdatedAt = now
	return emp, nil
}

// ApplyDelete removes the employee and every dependent record in one
// transformation. Referential integrity is this explicit sweep; there is
// no relational engine behind the aggregate.
func ApplyDelete(st *state.HRMState, id uuid.UUID) (state.Employee, error) {
	emp := st.EmployeeByID(id)
	if emp == nil {
		return state.Employee{}, employeeerrors.ErrEmployeeNotFound
	}
	removed := *emp

	st.Employees = slices.DeleteFunc(st.Employees, func(e state.Employee) bool {
		return e.ID == id
	})
	// Dangling manager references become nil, not deleted reports.
	for i := range st.Employees {
		if st.Employees[i].ManagerID != nil && *st.Employees[i].ManagerID == id {
			st.Employees[i].ManagerID = nil
		}
	}
	st.TimeLogs = slices.DeleteFunc(st.TimeLogs, func(t state.TimeLogEntry) bool {
		return t.EmployeeID == id
	})
	st.Tasks = slices.DeleteFunc(st.Tasks, func(t state.TaskEntry) bool {
		return t.EmployeeID == id
	})
	st.LeaveRequests = slices.DeleteFunc(st.LeaveRequests, func(l state.LeaveRequest) bool {
		return l.EmployeeID == id
	})
	st.PayrollEntries = slices.DeleteFunc(st.PayrollEntries, func(p state.PayrollEntry) bool {
		return p.EmployeeID == id
	})
	st.OvertimeSettings = slices.DeleteFunc(st.OvertimeSettings, func(o state.OvertimeSettings) bool {
		return o.EmployeeID == id
	})
	return removed, nil
}

func ApplyUpdateMultiplier(st *state.HRMState, id uuid.UUID, multiplier float64, now time.Time) (*state.OvertimeSettings, error) {
	if multiplier < 1.0 {
		return nil, employeeerrors.ErrInvalidMultiplier
	}
	if st.EmployeeByID(id) == nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	settings := st.OvertimeFor(id)
	if settings == nil {
		st.OvertimeSettings = append(st.OvertimeSettings, state.OvertimeSettings{
			EmployeeID: id,
		})
		settings = &st.OvertimeSettings[len(st.OvertimeSettings)-1]
	}
	settings.OvertimeMultiplier = multiplier
	settings.UpdatedAt = now
	return settings, nil
}

func payrollMultiplierFor(target int) float64 {
	if target == state.MaxMonthlyTarget {
		return topTierMultiplier
	}
	return 1.0
}
