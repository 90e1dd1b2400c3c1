package payroll

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	payrollerrors "go-hrm/internal/payroll/errors"
	"go-hrm/internal/state"
)

// DefaultMultiplier applies when an employee has no overtime settings row.
const DefaultMultiplier = 1.0

// Computation is the per-employee result of the monthly time accounting.
type Computation struct {
	EmployeeID    uuid.UUID
	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64
	Multiplier    float64
	RegularPay    float64
	OvertimePay   float64
	TotalPay      float64
}

// ComputeMonth aggregates an employee's closed time-log entries for the
// month and applies the comp-leave-aware overtime rule: hours beyond the
// monthly target are only paid as overtime once the comp-leave balance is
// exhausted; unused comp leave absorbs the excess unpaid (but is not
// consumed by this calculation).
func ComputeMonth(st *state.HRMState, emp state.Employee, month string) Computation {
	var total float64
	for _, entry := range st.TimeLogs {
		if entry.EmployeeID != emp.ID || entry.CheckOut == nil {
			continue
		}
		if !strings.HasPrefix(entry.Day, month+"-") {
			continue
		}
		total += entry.TotalHours
	}

	target := float64(emp.MonthlyHourTarget)
	regular := math.Min(total, target)

	var overtime float64
	if total > target && emp.CompLeavesAvailable() <= 0 {
		overtime = total - target
	}

	multiplier := DefaultMultiplier
	if s := st.OvertimeFor(emp.ID); s != nil {
		multiplier = s.OvertimeMultiplier
	}

	regularPay := round2(regular * float64(emp.HourlyRate))
	overtimePay := round2(overtime * float64(emp.HourlyRate) * multiplier)

	return Computation{
		EmployeeID:    emp.ID,
		TotalHours:    total,
		RegularHours:  regular,
		OvertimeHours: overtime,
		Multiplier:    multiplier,
		RegularPay:    regularPay,
		OvertimePay:   overtimePay,
		TotalPay:      round2(regularPay + overtimePay),
	}
}

// ApplyProcessMonth emits one pending payroll entry per employee that does
// not already have one for the month. Generation is idempotent: a second
// run over the same month creates nothing.
func ApplyProcessMonth(st *state.HRMState, month string, actorID uuid.UUID, now time.Time) (created []state.PayrollEntry, skipped int, err error) {
	if _, err := time.Parse(state.MonthLayout, month); err != nil {
		return nil, 0, payrollerrors.ErrInvalidMonth
	}

	for _, emp := range st.Employees {
		if st.PayrollFor(emp.ID, month) != nil {
			skipped++
			continue
		}

		comp := ComputeMonth(st, emp, month)
		entry := state.PayrollEntry{
			ID:            uuid.New(),
			EmployeeID:    emp.ID,
			Month:         month,
			RegularHours:  comp.RegularHours,
			OvertimeHours: comp.OvertimeHours,
			RegularPay:    comp.RegularPay,
			OvertimePay:   comp.OvertimePay,
			TotalPay:      comp.TotalPay,
			Status:        state.PayrollPending,
			ProcessedBy:   actorID,
			ProcessedAt:   now,
		}
		st.PayrollEntries = append(st.PayrollEntries, entry)
		created = append(created, entry)
	}
	return created, skipped, nil
}

// UpdatePatch carries the editable fields of an existing entry.
type UpdatePatch struct {
	RegularHours  *float64
	OvertimeHours *float64
	Status        *string
	Notes         *string
}

// ApplyUpdateEntry edits an existing entry. When hours change, pay is
// recomputed against the employee's current rate and multiplier, not the
// values at original processing time.
func ApplyUpdateEntry(st *state.HRMState, entryID uuid.UUID, patch UpdatePatch) (*state.PayrollEntry, error) {
	entry := st.PayrollByID(entryID)
	if entry == nil {
		return nil, payrollerrors.ErrEntryNotFound
	}
	emp := st.EmployeeByID(entry.EmployeeID)
	if emp == nil {
		return nil, payrollerrors.ErrEmployeeNotFound
	}

	hoursChanged := false
	if patch.RegularHours != nil {
		if *patch.RegularHours < 0 {
			return nil, payrollerrors.ErrInvalidHours
		}
		entry.RegularHours = *patch.RegularHours
		hoursChanged = true
	}
	if patch.OvertimeHours != nil {
		if *patch.OvertimeHours < 0 {
			return nil, payrollerrors.ErrInvalidHours
		}
		entry.OvertimeHours = *patch.OvertimeHours
		hoursChanged = true
	}
	if patch.Status != nil {
		switch *patch.Status {
		case state.PayrollPending, state.PayrollApproved, state.PayrollPaid:
			entry.Status = *patch.Status
		default:
			return nil, payrollerrors.ErrInvalidStatus
		}
	}
	if patch.Notes != nil {
		entry.Notes = patch.Notes
	}

	if hoursChanged {
		multiplier := DefaultMultiplier
		if s := st.OvertimeFor(emp.ID); s != nil {
			multiplier = s.OvertimeMultiplier
		}
		entry.RegularPay = round2(entry.RegularHours * float64(emp.HourlyRate))
		entry.OvertimePay = round2(entry.OvertimeHours * float64(emp.HourlyRate) * multiplier)
		entry.TotalPay = round2(entry.RegularPay + entry.OvertimePay)
	}
	return entry, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
