package payroll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-hrm/internal/state"
)

func TestService_ProcessMonth(t *testing.T) {
	st := state.NewState()
	manager := seedEmployee(st, 80, 0, 0, 0)
	st.Employees[0].Role = state.RoleManager
	worker := seedEmployee(st, 80, 5000, 0, 0)
	addClosedDay(st, worker.ID, "2026-02-02", 8)

	engine := state.NewEngine(st)
	svc := NewService(engine)
	ctx := context.Background()

	report, err := svc.ProcessMonth(ctx, manager.ID.String(), ProcessMonthRequest{Month: month})
	assert.NoError(t, err)
	assert.Len(t, report.Created, 2)
	assert.False(t, report.NothingToProcess)

	snap := engine.Snapshot()
	assert.Len(t, snap.PayrollEntries, 2)
	assert.Len(t, snap.AuditLog, 1)
	assert.Equal(t, "PAYROLL_PROCESS_MONTH", snap.AuditLog[0].Action)
	assert.Equal(t, manager.ID, snap.AuditLog[0].ActorID)
	assert.Equal(t, month, snap.AuditLog[0].EntityID)
}

func TestService_ProcessMonth_RerunIsNoOp(t *testing.T) {
	st := state.NewState()
	manager := seedEmployee(st, 80, 0, 0, 0)
	st.Employees[0].Role = state.RoleManager

	engine := state.NewEngine(st)
	svc := NewService(engine)
	ctx := context.Background()

	_, err := svc.ProcessMonth(ctx, manager.ID.String(), ProcessMonthRequest{Month: month})
	assert.NoError(t, err)

	report, err := svc.ProcessMonth(ctx, manager.ID.String(), ProcessMonthRequest{Month: month})
	assert.NoError(t, err)
	assert.True(t, report.NothingToProcess)
	assert.Empty(t, report.Created)
	assert.Equal(t, 1, report.Skipped)

	// No second audit entry for the no-op rerun.
	snap := engine.Snapshot()
	assert.Len(t, snap.PayrollEntries, 1)
	assert.Len(t, snap.AuditLog, 1)
}

func TestService_ProcessMonth_UnknownActor(t *testing.T) {
	engine := state.NewEngine(state.NewState())
	svc := NewService(engine)

	_, err := svc.ProcessMonth(context.Background(), "not-a-uuid", ProcessMonthRequest{Month: month})
	assert.Error(t, err)
}
