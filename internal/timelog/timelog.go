package timelog

import (
	"time"

	"github.com/google/uuid"

	"go-hrm/internal/state"
	timelogerrors "go-hrm/internal/timelog/errors"
)

// The functions below are the pure day-ledger transitions. They mutate the
// given aggregate copy and leave auditing and persistence to the caller.

// ApplyCheckIn opens the (employee, day) entry. One entry per day.
func ApplyCheckIn(st *state.HRMState, employeeID uuid.UUID, day string, now time.Time) (*state.TimeLogEntry, error) {
	if st.EmployeeByID(employeeID) == nil {
		return nil, timelogerrors.ErrEmployeeNotFound
	}
	if st.TimeLogFor(employeeID, day) != nil {
		return nil, timelogerrors.ErrDuplicateCheckIn
	}

	st.TimeLogs = append(st.TimeLogs, state.TimeLogEntry{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Day:        day,
		CheckIn:    now,
		Status:     state.TimeLogCheckedIn,
	})
	return &st.TimeLogs[len(st.TimeLogs)-1], nil
}

// ApplyBreakStart appends an open break. At most one break may be open.
func ApplyBreakStart(st *state.HRMState, employeeID uuid.UUID, day string, now time.Time) (*state.TimeLogEntry, error) {
	entry := st.TimeLogFor(employeeID, day)
	if entry == nil || entry.Status != state.TimeLogCheckedIn {
		return nil, timelogerrors.ErrNotCheckedIn
	}
	if entry.OpenBreak() >= 0 {
		return nil, timelogerrors.ErrAlreadyOnBreak
	}

	entry.Breaks = append(entry.Breaks, state.BreakInterval{Start: now})
	return entry, nil
}

// ApplyBreakEnd closes the most recent open break.
func ApplyBreakEnd(st *state.HRMState, employeeID uuid.UUID, day string, now time.Time) (*state.TimeLogEntry, error) {
	entry := st.TimeLogFor(employeeID, day)
	if entry == nil || entry.Status != state.TimeLogCheckedIn {
		return nil, timelogerrors.ErrNotCheckedIn
	}
	idx := entry.OpenBreak()
	if idx < 0 {
		return nil, timelogerrors.ErrNoActiveBreak
	}

	end := now
	entry.Breaks[idx].End = &end
	return entry, nil
}

// ApplyCheckOut closes the entry and freezes TotalHours. Check-out is
// blocked until the employee has logged at least one task for the day; an
// open break is closed implicitly at check-out time.
func ApplyCheckOut(st *state.HRMState, employeeID uuid.UUID, day string, now time.Time) (*state.TimeLogEntry, error) {
	entry := st.TimeLogFor(employeeID, day)
	if entry == nil {
		return nil, timelogerrors.ErrNotCheckedIn
	}
	if entry.CheckOut != nil || entry.Status == state.TimeLogCheckedOut {
		return nil, timelogerrors.ErrAlreadyCheckedOut
	}
	if len(st.TasksFor(employeeID, day)) == 0 {
		return nil, timelogerrors.ErrTasksRequired
	}

	if idx := entry.OpenBreak(); idx >= 0 {
		end := now
		entry.Breaks[idx].End = &end
	}

	out := now
	entry.CheckOut = &out
	entry.TotalHours = elapsedHours(*entry, now)
	entry.Status = state.TimeLogCheckedOut
	return entry, nil
}

// HoursWorkedSoFar is the live value shown while an entry is still open:
// the same subtraction as check-out, with now standing in for the missing
// check-out and for the end of a currently open break.
func HoursWorkedSoFar(entry state.TimeLogEntry, now time.Time) float64 {
	if entry.CheckOut != nil {
		return entry.TotalHours
	}
	return elapsedHours(entry, now)
}

func elapsedHours(entry state.TimeLogEntry, end time.Time) float64 {
	worked := end.Sub(entry.CheckIn)
	for _, b := range entry.Breaks {
		be := end
		if b.End != nil {
			be = *b.End
		}
		worked -= be.Sub(b.Start)
	}
	if worked < 0 {
		worked = 0
	}
	return worked.Hours()
}
