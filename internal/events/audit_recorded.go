package events

import "time"

const AuditRecordedTopic = "hr.audit.trail.v1"

type AuditRecordedEvent struct {
	EventType   string    `json:"event_type"`
	AuditID     string    `json:"audit_id"`
	ActorID     string    `json:"actor_id"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}
