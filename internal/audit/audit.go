package audit

import (
	"encoding/json"
	"time"

	"go-hrm/internal/state"
)

// Entity type labels shared by every feature's audit entries.
const (
	EntityEmployee         = "employee"
	EntityTimeLog          = "time_log"
	EntityTask             = "task"
	EntityLeaveRequest     = "leave_request"
	EntityPayrollEntry     = "payroll_entry"
	EntityOvertimeSettings = "overtime_settings"
	EntitySession          = "session"
)

// NewEntry builds the audit record for a mutation performed by actor. The
// engine assigns id and timestamp at commit time, so the entry and the
// state change always land together.
func NewEntry(actor state.Employee, action, entityType, entityID, description string) *state.AuditLogEntry {
	return &state.AuditLogEntry{
		ActorID:     actor.ID,
		ActorName:   actor.FullName,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
	}
}

// WithChange attaches the serialized before/after values. Marshal errors
// drop the snapshot rather than failing the mutation.
func WithChange(entry *state.AuditLogEntry, before, after any) *state.AuditLogEntry {
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			entry.Before = b
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			entry.After = a
		}
	}
	return entry
}

type AuditResponse struct {
	ID          string          `json:"id"`
	Timestamp   string          `json:"timestamp"`
	ActorID     string          `json:"actor_id"`
	ActorName   string          `json:"actor_name"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	Description string          `json:"description"`
	Before      json.RawMessage `json:"before,omitempty"`
	After       json.RawMessage `json:"after,omitempty"`
}

func mapToResponse(e state.AuditLogEntry) AuditResponse {
	return AuditResponse{
		ID:          e.ID.String(),
		Timestamp:   e.Timestamp.Format(time.RFC3339),
		ActorID:     e.ActorID.String(),
		ActorName:   e.ActorName,
		Action:      e.Action,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Description: e.Description,
		Before:      e.Before,
		After:       e.After,
	}
}
