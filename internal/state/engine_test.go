package state

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testEmployee() Employee {
	return Employee{
		ID:                uuid.New(),
		FullName:          "Dewi",
		Email:             "dewi@example.com",
		Role:              RoleAdmin,
		MonthlyHourTarget: 80,
	}
}

func TestUpdate_CommitsStateAndAuditTogether(t *testing.T) {
	engine := NewEngine(NewState())
	ctx := context.Background()
	actor := testEmployee()

	err := engine.Update(ctx, func(st *HRMState) (*AuditLogEntry, error) {
		st.Employees = append(st.Employees, actor)
		return &AuditLogEntry{
			ActorID:    actor.ID,
			ActorName:  actor.FullName,
			Action:     "EMPLOYEE_CREATE",
			EntityType: "employee",
			EntityID:   actor.ID.String(),
		}, nil
	})
	assert.NoError(t, err)

	snap := engine.Snapshot()
	assert.Len(t, snap.Employees, 1)
	assert.Len(t, snap.AuditLog, 1)
	assert.Equal(t, actor.ID, snap.AuditLog[0].ActorID)
	assert.NotEqual(t, uuid.Nil, snap.AuditLog[0].ID)
	assert.False(t, snap.AuditLog[0].Timestamp.IsZero())
}

func TestUpdate_FailedTransformLeavesNothingBehind(t *testing.T) {
	engine := NewEngine(NewState())
	boom := errors.New("boom")

	err := engine.Update(context.Background(), func(st *HRMState) (*AuditLogEntry, error) {
		st.Employees = append(st.Employees, testEmployee())
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	snap := engine.Snapshot()
	assert.Empty(t, snap.Employees)
	assert.Empty(t, snap.AuditLog)
	assert.Equal(t, uint64(0), engine.Generation())
}

func TestUpdate_OneAuditEntryPerMutation(t *testing.T) {
	engine := NewEngine(NewState())
	ctx := context.Background()
	actor := testEmployee()

	const n = 5
	for i := 0; i < n; i++ {
		entityID := uuid.New()
		err := engine.Update(ctx, func(st *HRMState) (*AuditLogEntry, error) {
			return &AuditLogEntry{
				ActorID:    actor.ID,
				Action:     fmt.Sprintf("ACTION_%d", i),
				EntityType: "task",
				EntityID:   entityID.String(),
			}, nil
		})
		assert.NoError(t, err)
	}

	snap := engine.Snapshot()
	assert.Len(t, snap.AuditLog, n)
	for _, entry := range snap.AuditLog {
		assert.Equal(t, actor.ID, entry.ActorID)
		assert.NotEmpty(t, entry.EntityID)
	}
	assert.Equal(t, uint64(n), engine.Generation())
}

func TestUpdate_HooksSeeIsolatedSnapshot(t *testing.T) {
	engine := NewEngine(NewState())

	var seen *HRMState
	engine.OnCommit(func(snapshot *HRMState, entry *AuditLogEntry) {
		seen = snapshot
	})

	err := engine.Update(context.Background(), func(st *HRMState) (*AuditLogEntry, error) {
		st.Employees = append(st.Employees, testEmployee())
		return nil, nil
	})
	assert.NoError(t, err)
	assert.NotNil(t, seen)

	// Mutating the hook's copy must not leak into the engine.
	seen.Employees[0].FullName = "tampered"
	assert.Equal(t, "Dewi", engine.Snapshot().Employees[0].FullName)
}

func TestReplace_StaleGenerationIgnored(t *testing.T) {
	engine := NewEngine(NewState())
	ctx := context.Background()

	gen := engine.Generation()

	// A local commit lands while the poll is in flight.
	err := engine.Update(ctx, func(st *HRMState) (*AuditLogEntry, error) {
		st.Employees = append(st.Employees, testEmployee())
		return nil, nil
	})
	assert.NoError(t, err)

	remote := NewState()
	assert.False(t, engine.Replace(remote, gen))
	assert.Len(t, engine.Snapshot().Employees, 1)
}

func TestReplace_AdoptsRemoteAndBumpsGeneration(t *testing.T) {
	engine := NewEngine(NewState())

	remote := NewState()
	remote.Employees = append(remote.Employees, testEmployee())

	gen := engine.Generation()
	assert.True(t, engine.Replace(remote, gen))
	assert.Len(t, engine.Snapshot().Employees, 1)
	assert.Equal(t, gen+1, engine.Generation())

	// The engine keeps its own clone.
	remote.Employees[0].FullName = "tampered"
	assert.NotEqual(t, "tampered", engine.Snapshot().Employees[0].FullName)
}

func TestReplace_RejectedAfterClose(t *testing.T) {
	engine := NewEngine(NewState())
	engine.Close()

	assert.False(t, engine.Replace(NewState(), engine.Generation()))
}

func TestClone_DeepCopiesNestedValues(t *testing.T) {
	st := NewState()
	emp := testEmployee()
	st.Employees = append(st.Employees, emp)
	st.TimeLogs = append(st.TimeLogs, TimeLogEntry{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		Day:        "2026-03-02",
		Breaks:     []BreakInterval{{}},
	})

	clone := st.Clone()
	clone.TimeLogs[0].Breaks = append(clone.TimeLogs[0].Breaks, BreakInterval{})
	clone.Employees[0].Email = "other@example.com"

	assert.Len(t, st.TimeLogs[0].Breaks, 1)
	assert.Equal(t, "dewi@example.com", st.Employees[0].Email)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	st := NewState()
	st.Employees = append(st.Employees, testEmployee())
	id := st.Employees[0].ID
	st.CurrentUserID = &id

	raw, err := st.Encode()
	assert.NoError(t, err)

	decoded, err := Decode(raw)
	assert.NoError(t, err)
	assert.Equal(t, id, decoded.Employees[0].ID)
	assert.Equal(t, id, *decoded.CurrentUserID)
}
