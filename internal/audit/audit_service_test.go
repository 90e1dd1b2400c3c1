package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-hrm/internal/state"
)

func TestList_NewestFirstWithFilter(t *testing.T) {
	st := state.NewState()
	actor := state.Employee{ID: uuid.New(), FullName: "Dewi", Role: state.RoleAdmin}
	engine := state.NewEngine(st)
	ctx := context.Background()

	actions := []struct {
		action, entityType string
	}{
		{"TASK_ADD", EntityTask},
		{"LEAVE_REQUEST", EntityLeaveRequest},
		{"TASK_APPROVE", EntityTask},
	}
	for _, a := range actions {
		entry := NewEntry(actor, a.action, a.entityType, uuid.New().String(), "test")
		err := engine.Update(ctx, func(s *state.HRMState) (*state.AuditLogEntry, error) {
			return entry, nil
		})
		assert.NoError(t, err)
	}

	svc := NewService(engine)

	all, err := svc.List(ctx, "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "TASK_APPROVE", all[0].Action)
	assert.Equal(t, "TASK_ADD", all[2].Action)

	tasks, err := svc.List(ctx, EntityTask)
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	for _, e := range tasks {
		assert.Equal(t, EntityTask, e.EntityType)
	}
}

func TestList_EmptyTrail(t *testing.T) {
	svc := NewService(state.NewEngine(state.NewState()))

	out, err := svc.List(context.Background(), "")
	assert.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestWithChange_AttachesSnapshots(t *testing.T) {
	actor := state.Employee{ID: uuid.New(), FullName: "Dewi"}
	entry := NewEntry(actor, "TASK_APPROVE", EntityTask, uuid.New().String(), "test")

	before := map[string]string{"status": "PENDING"}
	after := map[string]string{"status": "APPROVED"}
	WithChange(entry, before, after)

	assert.JSONEq(t, `{"status":"PENDING"}`, string(entry.Before))
	assert.JSONEq(t, `{"status":"APPROVED"}`, string(entry.After))
}
