package audit

import (
	"context"

	"go.uber.org/zap"

	"go-hrm/internal/state"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, entityType string) ([]AuditResponse, error)
}

type service struct {
	engine *state.Engine
	logger *zap.Logger
}

func NewService(engine *state.Engine, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{engine: engine, logger: l}
}

// List returns the trail newest-first, optionally filtered by entity type.
func (s *service) List(ctx context.Context, entityType string) ([]AuditResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []AuditResponse
	err := s.engine.View(func(st *state.HRMState) error {
		for i := len(st.AuditLog) - 1; i >= 0; i-- {
			e := st.AuditLog[i]
			if entityType != "" && e.EntityType != entityType {
				continue
			}
			out = append(out, mapToResponse(e))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []AuditResponse{}
	}
	return out, nil
}
