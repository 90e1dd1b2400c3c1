package task

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"go-hrm/internal/state"
	taskerrors "go-hrm/internal/task/errors"
)

// Pure task-log transitions. Review states are terminal: once a task is
// approved or commented it never goes back to pending.

func ApplyAdd(st *state.HRMState, employeeID uuid.UUID, day, description string, hours float64, now time.Time) (*state.TaskEntry, error) {
	if strings.TrimSpace(description) == "" || hours <= 0 {
		return nil, taskerrors.ErrInvalidTask
	}

	st.Tasks = append(st.Tasks, state.TaskEntry{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Day:         day,
		Description: description,
		Hours:       hours,
		Status:      state.TaskPending,
		CreatedAt:   now,
	})
	return &st.Tasks[len(st.Tasks)-1], nil
}

func ApplyDelete(st *state.HRMState, taskID, actorID uuid.UUID) (state.TaskEntry, error) {
	for i := range st.Tasks {
		if st.Tasks[i].ID != taskID {
			continue
		}
		if st.Tasks[i].EmployeeID != actorID {
			return state.TaskEntry{}, taskerrors.ErrNotOwner
		}
		if st.Tasks[i].Status != state.TaskPending {
			return state.TaskEntry{}, taskerrors.ErrTaskLocked
		}
		removed := st.Tasks[i]
		st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
		return removed, nil
	}
	return state.TaskEntry{}, taskerrors.ErrTaskNotFound
}

func ApplyApprove(st *state.HRMState, taskID, reviewerID uuid.UUID, comment string, now time.Time) (*state.TaskEntry, error) {
	entry := st.TaskByID(taskID)
	if entry == nil {
		return nil, taskerrors.ErrTaskNotFound
	}
	if entry.Status != state.TaskPending {
		return nil, taskerrors.ErrNotPending
	}

	entry.Status = state.TaskApproved
	entry.ReviewerID = &reviewerID
	entry.ReviewedAt = &now
	if strings.TrimSpace(comment) != "" {
		entry.ReviewComment = &comment
	}
	return entry, nil
}

func ApplyComment(st *state.HRMState, taskID, reviewerID uuid.UUID, comment string, now time.Time) (*state.TaskEntry, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, taskerrors.ErrCommentRequired
	}
	entry := st.TaskByID(taskID)
	if entry == nil {
		return nil, taskerrors.ErrTaskNotFound
	}
	if entry.Status != state.TaskPending {
		return nil, taskerrors.ErrNotPending
	}

	entry.Status = state.TaskCommented
	entry.ReviewerID = &reviewerID
	entry.ReviewedAt = &now
	entry.ReviewComment = &comment
	return entry, nil
}
