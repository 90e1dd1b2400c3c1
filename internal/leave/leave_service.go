package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-hrm/internal/audit"
	leaveerrors "go-hrm/internal/leave/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/state"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Request(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, actorID, leaveID string, req DecideLeaveRequest) (LeaveResponse, error)
	Grant(ctx context.Context, actorID string, req GrantCompLeaveRequest) (BalanceResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveResponse, error)
	Balance(ctx context.Context, employeeID string) (BalanceResponse, error)
}

type service struct {
	engine *state.Engine
	logger *zap.Logger
	now    func() time.Time
}

func NewService(engine *state.Engine, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{engine: engine, logger: l, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Request(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("leave request",
		zap.String("employee_id", actorID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)
	now := s.now()

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrUnauthorized
	}

	var resp LeaveResponse
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		lr, err := ApplyRequest(st, actorUUID, req.StartDate, req.EndDate, req.Reason, now)
		if err != nil {
			return nil, err
		}

		resp = mapToResponse(*lr, actor.FullName)
		return audit.WithChange(
			audit.NewEntry(*actor, "LEAVE_REQUEST", audit.EntityLeaveRequest, lr.ID.String(),
				fmt.Sprintf("%s requested leave %s..%s", actor.FullName, lr.StartDate, lr.EndDate)),
			nil, lr,
		), nil
	})
	if err != nil {
		s.logger.Warn("leave request rejected", zap.String("employee_id", actorID), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave requested", zap.String("leave_id", resp.ID), zap.String("employee_id", actorID))
	return resp, nil
}

func (s *service) Decide(ctx context.Context, actorID, leaveID string, req DecideLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("leave decision requested",
		zap.String("leave_id", leaveID),
		zap.String("reviewer_id", actorID),
		zap.Bool("approve", req.Approve),
	)
	now := s.now()

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrUnauthorized
	}
	leaveUUID, err := uuid.Parse(leaveID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	var resp LeaveResponse
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		before := st.LeaveByID(leaveUUID)
		var beforeCopy *state.LeaveRequest
		if before != nil {
			v := *before
			beforeCopy = &v
		}

		lr, emp, err := ApplyDecide(st, leaveUUID, actorUUID, req.Approve, req.Comment, now)
		if err != nil {
			return nil, err
		}
		if req.Approve && emp.CompLeavesAvailable() < 0 {
			// Permissive on purpose: approvals are not blocked by an
			// exhausted balance, only flagged.
			s.logger.Warn("comp leave balance went negative",
				zap.String("employee_id", emp.ID.String()),
				zap.Int("earned", emp.CompLeavesEarned),
				zap.Int("used", emp.CompLeavesUsed),
			)
		}

		resp = mapToResponse(*lr, emp.FullName)
		return audit.WithChange(
			audit.NewEntry(*actor, "LEAVE_DECIDE", audit.EntityLeaveRequest, leaveID,
				fmt.Sprintf("%s %s leave of %s (%s..%s)", actor.FullName, decisionWord(req.Approve), emp.FullName, lr.StartDate, lr.EndDate)),
			beforeCopy, lr,
		), nil
	})
	if err != nil {
		s.logger.Warn("leave decision rejected", zap.String("leave_id", leaveID), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave decided",
		zap.String("leave_id", leaveID),
		zap.String("status", resp.Status),
	)
	return resp, nil
}

func (s *service) Grant(ctx context.Context, actorID string, req GrantCompLeaveRequest) (BalanceResponse, error) {
	now := s.now()

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return BalanceResponse{}, apperror.ErrUnauthorized
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	var resp BalanceResponse
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		emp, err := ApplyGrant(st, employeeUUID, req.Amount, now)
		if err != nil {
			return nil, err
		}

		resp = balanceResponse(*emp)
		return audit.NewEntry(*actor, "LEAVE_GRANT", audit.EntityEmployee, req.EmployeeID,
			fmt.Sprintf("%s granted %d comp leave(s) to %s", actor.FullName, req.Amount, emp.FullName)), nil
	})
	if err != nil {
		s.logger.Warn("comp leave grant rejected", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return BalanceResponse{}, err
	}

	s.logger.Info("comp leave granted",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("amount", req.Amount),
	)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	res := []LeaveResponse{}
	err = s.engine.View(func(st *state.HRMState) error {
		for _, lr := range st.LeaveRequests {
			if !canReadAll && lr.EmployeeID != actorUUID {
				continue
			}
			name := ""
			if emp := st.EmployeeByID(lr.EmployeeID); emp != nil {
				name = emp.FullName
			}
			res = append(res, mapToResponse(lr, name))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Balance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	if err := ctx.Err(); err != nil {
		return BalanceResponse{}, err
	}

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	var resp BalanceResponse
	err = s.engine.View(func(st *state.HRMState) error {
		emp := st.EmployeeByID(employeeUUID)
		if emp == nil {
			return leaveerrors.ErrEmployeeNotFound
		}
		resp = balanceResponse(*emp)
		return nil
	})
	if err != nil {
		return BalanceResponse{}, err
	}
	return resp, nil
}

func decisionWord(approve bool) string {
	if approve {
		return "approved"
	}
	return "rejected"
}

func balanceResponse(emp state.Employee) BalanceResponse {
	return BalanceResponse{
		EmployeeID:       emp.ID.String(),
		CompLeavesEarned: emp.CompLeavesEarned,
		CompLeavesUsed:   emp.CompLeavesUsed,
		Available:        emp.CompLeavesAvailable(),
	}
}

func mapToResponse(lr state.LeaveRequest, employeeName string) LeaveResponse {
	resp := LeaveResponse{
		ID:           lr.ID.String(),
		EmployeeID:   lr.EmployeeID.String(),
		EmployeeName: employeeName,
		StartDate:    lr.StartDate,
		EndDate:      lr.EndDate,
		Reason:       lr.Reason,
		Status:       lr.Status,
		RequestedAt:  lr.RequestedAt.Format(time.RFC3339),
	}
	if lr.ReviewerID != nil {
		v := lr.ReviewerID.String()
		resp.ReviewerID = &v
	}
	if lr.ReviewedAt != nil {
		v := lr.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.ReviewComment = lr.ReviewComment
	return resp
}
