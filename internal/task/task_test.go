package task

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-hrm/internal/state"
	taskerrors "go-hrm/internal/task/errors"
)

const day = "2026-03-02"

func seedTask(t *testing.T) (*state.HRMState, uuid.UUID, *state.TaskEntry) {
	t.Helper()
	st := state.NewState()
	owner := uuid.New()
	entry, err := ApplyAdd(st, owner, day, "refactor the report job", 2.5, time.Now().UTC())
	assert.NoError(t, err)
	return st, owner, entry
}

func TestApplyAdd_Validation(t *testing.T) {
	st := state.NewState()
	now := time.Now().UTC()

	_, err := ApplyAdd(st, uuid.New(), day, "   ", 1, now)
	assert.ErrorIs(t, err, taskerrors.ErrInvalidTask)

	_, err = ApplyAdd(st, uuid.New(), day, "valid", 0, now)
	assert.ErrorIs(t, err, taskerrors.ErrInvalidTask)

	assert.Empty(t, st.Tasks)
}

func TestApplyDelete_OwnerOnly(t *testing.T) {
	st, owner, entry := seedTask(t)

	_, err := ApplyDelete(st, entry.ID, uuid.New())
	assert.ErrorIs(t, err, taskerrors.ErrNotOwner)
	assert.Len(t, st.Tasks, 1)

	removed, err := ApplyDelete(st, entry.ID, owner)
	assert.NoError(t, err)
	assert.Equal(t, entry.ID, removed.ID)
	assert.Empty(t, st.Tasks)
}

func TestApplyDelete_LockedAfterReview(t *testing.T) {
	st, owner, entry := seedTask(t)

	_, err := ApplyApprove(st, entry.ID, uuid.New(), "", time.Now().UTC())
	assert.NoError(t, err)

	_, err = ApplyDelete(st, entry.ID, owner)
	assert.ErrorIs(t, err, taskerrors.ErrTaskLocked)
}

func TestApplyApprove_Terminal(t *testing.T) {
	st, _, entry := seedTask(t)
	reviewer := uuid.New()
	now := time.Now().UTC()

	got, err := ApplyApprove(st, entry.ID, reviewer, "good", now)
	assert.NoError(t, err)
	assert.Equal(t, state.TaskApproved, got.Status)
	assert.Equal(t, reviewer, *got.ReviewerID)

	_, err = ApplyApprove(st, entry.ID, reviewer, "", now)
	assert.ErrorIs(t, err, taskerrors.ErrNotPending)
	_, err = ApplyComment(st, entry.ID, reviewer, "more detail please", now)
	assert.ErrorIs(t, err, taskerrors.ErrNotPending)
}

func TestApplyComment_RequiresText(t *testing.T) {
	st, _, entry := seedTask(t)
	reviewer := uuid.New()
	now := time.Now().UTC()

	_, err := ApplyComment(st, entry.ID, reviewer, "  ", now)
	assert.ErrorIs(t, err, taskerrors.ErrCommentRequired)

	got, err := ApplyComment(st, entry.ID, reviewer, "split this into two items", now)
	assert.NoError(t, err)
	assert.Equal(t, state.TaskCommented, got.Status)
	assert.Equal(t, "split this into two items", *got.ReviewComment)
}
