package payroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	payrollerrors "go-hrm/internal/payroll/errors"
	"go-hrm/internal/state"
)

const month = "2026-02"

func seedEmployee(st *state.HRMState, target int, rate int64, earned, used int) state.Employee {
	emp := state.Employee{
		ID:                uuid.New(),
		FullName:          "Rendra",
		Email:             uuid.New().String() + "@example.com",
		Role:              state.RoleEmployee,
		MonthlyHourTarget: target,
		HourlyRate:        rate,
		CompLeavesEarned:  earned,
		CompLeavesUsed:    used,
	}
	st.Employees = append(st.Employees, emp)
	return emp
}

func addClosedDay(st *state.HRMState, employeeID uuid.UUID, day string, hours float64) {
	checkIn := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(time.Duration(hours * float64(time.Hour)))
	st.TimeLogs = append(st.TimeLogs, state.TimeLogEntry{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Day:        day,
		CheckIn:    checkIn,
		CheckOut:   &checkOut,
		TotalHours: hours,
		Status:     state.TimeLogCheckedOut,
	})
}

func TestComputeMonth_CompLeaveSuppressesOvertime(t *testing.T) {
	st := state.NewState()
	emp := seedEmployee(st, 80, 5000, 1, 0)
	addClosedDay(st, emp.ID, "2026-02-02", 45)
	addClosedDay(st, emp.ID, "2026-02-09", 45)

	comp := ComputeMonth(st, emp, month)

	// 90h against an 80h target, but one unused comp leave absorbs the
	// excess.
	assert.Equal(t, 80.0, comp.RegularHours)
	assert.Equal(t, 0.0, comp.OvertimeHours)
}

func TestComputeMonth_ExhaustedBalancePaysOvertime(t *testing.T) {
	st := state.NewState()
	emp := seedEmployee(st, 80, 5000, 1, 1)
	addClosedDay(st, emp.ID, "2026-02-02", 45)
	addClosedDay(st, emp.ID, "2026-02-09", 45)

	comp := ComputeMonth(st, emp, month)

	assert.Equal(t, 80.0, comp.RegularHours)
	assert.Equal(t, 10.0, comp.OvertimeHours)
}

func TestComputeMonth_PayAmounts(t *testing.T) {
	st := state.NewState()
	emp := seedEmployee(st, 80, 5000, 0, 0)
	st.OvertimeSettings = append(st.OvertimeSettings, state.OvertimeSettings{
		EmployeeID:         emp.ID,
		OvertimeMultiplier: 1.25,
	})
	addClosedDay(st, emp.ID, "2026-02-02", 45)
	addClosedDay(st, emp.ID, "2026-02-09", 45)

	comp := ComputeMonth(st, emp, month)

	assert.Equal(t, 400000.0, comp.RegularPay)
	assert.Equal(t, 62500.0, comp.OvertimePay)
	assert.Equal(t, 462500.0, comp.TotalPay)
}

func TestComputeMonth_IgnoresOpenAndForeignEntries(t *testing.T) {
	st := state.NewState()
	emp := seedEmployee(st, 80, 5000, 0, 0)
	addClosedDay(st, emp.ID, "2026-02-02", 8)
	addClosedDay(st, emp.ID, "2026-01-30", 8) // previous month
	st.TimeLogs = append(st.TimeLogs, state.TimeLogEntry{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		Day:        "2026-02-03",
		CheckIn:    time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC),
		Status:     state.TimeLogCheckedIn, // still open
	})

	comp := ComputeMonth(st, emp, month)
	assert.Equal(t, 8.0, comp.TotalHours)
}

func TestApplyProcessMonth_Idempotent(t *testing.T) {
	st := state.NewState()
	emp := seedEmployee(st, 80, 5000, 0, 0)
	addClosedDay(st, emp.ID, "2026-02-02", 8)
	actor := uuid.New()
	now := time.Now().UTC()

	created, skipped, err := ApplyProcessMonth(st, month, actor, now)
	assert.NoError(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, state.PayrollPending, created[0].Status)

	created, skipped, err = ApplyProcessMonth(st, month, actor, now)
	assert.NoError(t, err)
	assert.Empty(t, created)
	assert.Equal(t, 1, skipped)
	assert.Len(t, st.PayrollEntries, 1)
}

func TestApplyProcessMonth_InvalidMonth(t *testing.T) {
	st := state.NewState()
	_, _, err := ApplyProcessMonth(st, "February", uuid.New(), time.Now().UTC())
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)
}

func TestApplyUpdateEntry_RecomputesPayFromCurrentRate(t *testing.T) {
	st := state.NewState()
	emp := seedEmployee(st, 80, 5000, 0, 0)
	st.OvertimeSettings = append(st.OvertimeSettings, state.OvertimeSettings{
		EmployeeID:         emp.ID,
		OvertimeMultiplier: 1.25,
	})
	addClosedDay(st, emp.ID, "2026-02-02", 8)

	created, _, err := ApplyProcessMonth(st, month, uuid.New(), time.Now().UTC())
	assert.NoError(t, err)

	regular := 80.0
	overtime := 10.0
	entry, err := ApplyUpdateEntry(st, created[0].ID, UpdatePatch{
		RegularHours:  &regular,
		OvertimeHours: &overtime,
	})
	assert.NoError(t, err)
	assert.Equal(t, 400000.0, entry.RegularPay)
	assert.Equal(t, 62500.0, entry.OvertimePay)
	assert.Equal(t, 462500.0, entry.TotalPay)
}

func TestApplyUpdateEntry_StatusValidation(t *testing.T) {
	st := state.NewState()
	emp := seedEmployee(st, 80, 5000, 0, 0)
	addClosedDay(st, emp.ID, "2026-02-02", 8)
	created, _, err := ApplyProcessMonth(st, month, uuid.New(), time.Now().UTC())
	assert.NoError(t, err)

	bad := "SETTLED"
	_, err = ApplyUpdateEntry(st, created[0].ID, UpdatePatch{Status: &bad})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatus)

	paid := state.PayrollPaid
	entry, err := ApplyUpdateEntry(st, created[0].ID, UpdatePatch{Status: &paid})
	assert.NoError(t, err)
	assert.Equal(t, state.PayrollPaid, entry.Status)
}

func TestApplyUpdateEntry_NotFound(t *testing.T) {
	st := state.NewState()
	_, err := ApplyUpdateEntry(st, uuid.New(), UpdatePatch{})
	assert.ErrorIs(t, err, payrollerrors.ErrEntryNotFound)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 62500.0, round2(10*5000*1.25))
	assert.Equal(t, 1234.57, round2(1234.5678))
}
