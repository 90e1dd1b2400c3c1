package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-hrm/internal/audit"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/state"
	taskerrors "go-hrm/internal/task/errors"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, actorID string, req AddTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, actorID, taskID string) error
	Approve(ctx context.Context, actorID, taskID string, req ReviewRequest) (TaskResponse, error)
	Comment(ctx context.Context, actorID, taskID string, req ReviewRequest) (TaskResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]TaskResponse, error)
}

type service struct {
	engine *state.Engine
	logger *zap.Logger
	now    func() time.Time
}

func NewService(engine *state.Engine, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{engine: engine, logger: l, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Add(ctx context.Context, actorID string, req AddTaskRequest) (TaskResponse, error) {
	now := s.now()

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TaskResponse{}, apperror.ErrUnauthorized
	}
	day := req.Day
	if day == "" {
		day = now.Format(state.DayLayout)
	} else if _, err := time.Parse(state.DayLayout, day); err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidDay
	}

	var resp TaskResponse
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		entry, err := ApplyAdd(st, actorUUID, day, req.Description, req.Hours, now)
		if err != nil {
			return nil, err
		}

		resp = mapToResponse(*entry, actor.FullName)
		return audit.WithChange(
			audit.NewEntry(*actor, "TASK_ADD", audit.EntityTask, entry.ID.String(),
				fmt.Sprintf("%s logged %.2fh on %s: %s", actor.FullName, entry.Hours, day, entry.Description)),
			nil, entry,
		), nil
	})
	if err != nil {
		s.logger.Warn("add task rejected", zap.String("employee_id", actorID), zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("task added", zap.String("task_id", resp.ID), zap.String("employee_id", actorID))
	return resp, nil
}

func (s *service) Delete(ctx context.Context, actorID, taskID string) error {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return apperror.ErrUnauthorized
	}
	taskUUID, err := uuid.Parse(taskID)
	if err != nil {
		return taskerrors.ErrInvalidTaskID
	}

	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		removed, err := ApplyDelete(st, taskUUID, actorUUID)
		if err != nil {
			return nil, err
		}

		return audit.WithChange(
			audit.NewEntry(*actor, "TASK_DELETE", audit.EntityTask, taskID,
				fmt.Sprintf("%s deleted task %q on %s", actor.FullName, removed.Description, removed.Day)),
			removed, nil,
		), nil
	})
	if err != nil {
		s.logger.Warn("delete task rejected", zap.String("task_id", taskID), zap.Error(err))
		return err
	}

	s.logger.Info("task deleted", zap.String("task_id", taskID), zap.String("employee_id", actorID))
	return nil
}

func (s *service) Approve(ctx context.Context, actorID, taskID string, req ReviewRequest) (TaskResponse, error) {
	return s.review(ctx, actorID, taskID, req, "TASK_APPROVE", ApplyApprove)
}

func (s *service) Comment(ctx context.Context, actorID, taskID string, req ReviewRequest) (TaskResponse, error) {
	return s.review(ctx, actorID, taskID, req, "TASK_COMMENT", ApplyComment)
}

type reviewFn func(st *state.HRMState, taskID, reviewerID uuid.UUID, comment string, now time.Time) (*state.TaskEntry, error)

func (s *service) review(ctx context.Context, actorID, taskID string, req ReviewRequest, action string, apply reviewFn) (TaskResponse, error) {
	now := s.now()

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TaskResponse{}, apperror.ErrUnauthorized
	}
	taskUUID, err := uuid.Parse(taskID)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidTaskID
	}

	var resp TaskResponse
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		before := st.TaskByID(taskUUID)
		var beforeCopy *state.TaskEntry
		if before != nil {
			v := *before
			beforeCopy = &v
		}

		entry, err := apply(st, taskUUID, actorUUID, req.Comment, now)
		if err != nil {
			return nil, err
		}

		ownerName := ""
		if owner := st.EmployeeByID(entry.EmployeeID); owner != nil {
			ownerName = owner.FullName
		}
		resp = mapToResponse(*entry, ownerName)
		return audit.WithChange(
			audit.NewEntry(*actor, action, audit.EntityTask, taskID,
				fmt.Sprintf("%s reviewed task %q as %s", actor.FullName, entry.Description, entry.Status)),
			beforeCopy, entry,
		), nil
	})
	if err != nil {
		s.logger.Warn("review task rejected",
			zap.String("action", action),
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return TaskResponse{}, err
	}

	s.logger.Info("task reviewed",
		zap.String("action", action),
		zap.String("task_id", taskID),
		zap.String("reviewer_id", actorID),
	)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]TaskResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	res := []TaskResponse{}
	err = s.engine.View(func(st *state.HRMState) error {
		for _, t := range st.Tasks {
			if !canReadAll && t.EmployeeID != actorUUID {
				continue
			}
			name := ""
			if emp := st.EmployeeByID(t.EmployeeID); emp != nil {
				name = emp.FullName
			}
			res = append(res, mapToResponse(t, name))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func mapToResponse(t state.TaskEntry, employeeName string) TaskResponse {
	resp := TaskResponse{
		ID:           t.ID.String(),
		EmployeeID:   t.EmployeeID.String(),
		EmployeeName: employeeName,
		Day:          t.Day,
		Description:  t.Description,
		Hours:        t.Hours,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
	if t.ReviewerID != nil {
		v := t.ReviewerID.String()
		resp.ReviewerID = &v
	}
	if t.ReviewedAt != nil {
		v := t.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.ReviewComment = t.ReviewComment
	return resp
}
