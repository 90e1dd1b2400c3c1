package audit

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-hrm/internal/events"
	"go-hrm/internal/state"
)

// Publisher mirrors committed audit entries onto Kafka for downstream
// consumers. The mirror is best-effort: the in-state audit log is the
// source of truth and a publish failure is logged, never surfaced.
type Publisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewPublisher(broker string, logger ...*zap.Logger) *Publisher {
	l := zap.L().Named("audit.publisher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.publisher")
	}
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(broker),
		Topic:        events.AuditRecordedTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Publisher{writer: writer, logger: l}
}

// CommitHook adapts the publisher to the engine's commit callback.
func (p *Publisher) CommitHook() state.CommitHook {
	return func(_ *state.HRMState, entry *state.AuditLogEntry) {
		if entry == nil {
			return
		}
		e := *entry
		go p.publish(e)
	}
}

func (p *Publisher) publish(entry state.AuditLogEntry) {
	event := events.AuditRecordedEvent{
		EventType:   "audit_recorded",
		AuditID:     entry.ID.String(),
		ActorID:     entry.ActorID.String(),
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Description: entry.Description,
		OccurredAt:  entry.Timestamp,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal audit event failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := kafkago.Message{
		Key:   []byte(entry.EntityID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "entity_type", Value: []byte(entry.EntityType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("publish audit event failed",
			zap.String("audit_id", event.AuditID),
			zap.Error(err),
		)
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
