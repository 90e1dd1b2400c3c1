package leave

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"go-hrm/internal/state"
	leaveerrors "go-hrm/internal/leave/errors"
)

// Pure leave-ledger transitions.

func ApplyRequest(st *state.HRMState, employeeID uuid.UUID, startDate, endDate, reason string, now time.Time) (*state.LeaveRequest, error) {
	start, err := time.Parse(state.DayLayout, startDate)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(state.DayLayout, endDate)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return nil, leaveerrors.ErrInvalidRange
	}
	if strings.TrimSpace(reason) == "" {
		return nil, leaveerrors.ErrMissingReason
	}
	if st.EmployeeByID(employeeID) == nil {
		return nil, leaveerrors.ErrEmployeeNotFound
	}

	st.LeaveRequests = append(st.LeaveRequests, state.LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      reason,
		Status:      state.LeavePending,
		RequestedAt: now,
	})
	return &st.LeaveRequests[len(st.LeaveRequests)-1], nil
}

// ApplyDecide settles a pending request. Approval increments the used
// comp-leave counter by exactly one, regardless of the requested range
// length; rejection leaves the counters untouched. Either way the request
// is terminal afterwards. Approval is deliberately permissive about an
// exhausted balance; the caller logs when used exceeds earned.
func ApplyDecide(st *state.HRMState, leaveID, reviewerID uuid.UUID, approve bool, comment string, now time.Time) (*state.LeaveRequest, *state.Employee, error) {
	req := st.LeaveByID(leaveID)
	if req == nil {
		return nil, nil, leaveerrors.ErrLeaveNotFound
	}
	if req.Status != state.LeavePending {
		return nil, nil, leaveerrors.ErrNotPending
	}

	emp := st.EmployeeByID(req.EmployeeID)
	if emp == nil {
		return nil, nil, leaveerrors.ErrEmployeeNotFound
	}

	if approve {
		req.Status = state.LeaveApproved
		emp.CompLeavesUsed++
		emp.UpdatedAt = now
	} else {
		req.Status = state.LeaveRejected
	}
	req.ReviewerID = &reviewerID
	req.ReviewedAt = &now
	if strings.TrimSpace(comment) != "" {
		req.ReviewComment = &comment
	}
	return req, emp, nil
}

// ApplyGrant adds earned comp leave to an employee.
func ApplyGrant(st *state.HRMState, employeeID uuid.UUID, amount int, now time.Time) (*state.Employee, error) {
	if amount <= 0 {
		return nil, leaveerrors.ErrInvalidGrant
	}
	emp := st.EmployeeByID(employeeID)
	if emp == nil {
		return nil, leaveerrors.ErrEmployeeNotFound
	}

	emp.CompLeavesEarned += amount
	emp.UpdatedAt = now
	return emp, nil
}
