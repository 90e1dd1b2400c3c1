package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-hrm/internal/audit"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/state"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	UpdateMultiplier(ctx context.Context, actorID, id string, req UpdateMultiplierRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	engine *state.Engine
	logger *zap.Logger
	now    func() time.Time
}

func NewService(engine *state.Engine, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{engine: engine, logger: l, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)
	now := s.now()

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return EmployeeResponse{}, apperror.ErrUnauthorized
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		mid, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidManager
		}
		managerID = &mid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, apperror.ErrInternal
	}

	var resp EmployeeResponse
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		emp, err := ApplyCreate(st, NewEmployee{
			FullName:          req.FullName,
			Email:             req.Email,
			PasswordHash:      string(hash),
			Role:              req.Role,
			ManagerID:         managerID,
			MonthlyHourTarget: req.MonthlyHourTarget,
			HourlyRate:        req.HourlyRate,
		}, now)
		if err != nil {
			return nil, err
		}

		resp = mapToResponse(*emp, st.OvertimeFor(emp.ID))
		return audit.NewEntry(*actor, "EMPLOYEE_CREATE", audit.EntityEmployee, emp.ID.String(),
			fmt.Sprintf("%s created employee %s (%s)", actor.FullName, emp.FullName, emp.Role)), nil
	})
	if err != nil {
		s.logger.Warn("create employee rejected",
			zap.String("request_id", rid),
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee created",
		zap.String("request_id", rid),
		zap.String("employee_id", resp.ID),
	)
	return resp, nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	now := s.now()

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return EmployeeResponse{}, apperror.ErrUnauthorized
	}
	empUUID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		mid, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidManager
		}
		managerID = &mid
	}

	var resp EmployeeResponse
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		before := st.EmployeeByID(empUUID)
		var beforeCopy *state.Employee
		if before != nil {
			v := *before
			v.Password = ""
			beforeCopy = &v
		}

		emp, err := ApplyUpdate(st, empUUID, UpdateEmployee{
			FullName:          req.FullName,
			Role:              req.Role,
			ManagerID:         managerID,
			ClearManager:      req.ClearManager,
			MonthlyHourTarget: req.MonthlyHourTarget,
			HourlyRate:        req.HourlyRate,
		}, now)
		if err != nil {
			return nil, err
		}

		after := *emp
		after.Password = ""
		resp = mapToResponse(*emp, st.OvertimeFor(emp.ID))
		return audit.WithChange(
			audit.NewEntry(*actor, "EMPLOYEE_UPDATE", audit.EntityEmployee, id,
				fmt.Sprintf("%s updated profile of %s", actor.FullName, emp.FullName)),
			beforeCopy, after,
		), nil
	})
	if err != nil {
		s.logger.Warn("update employee rejected", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee updated", zap.String("employee_id", id))
	return resp, nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return apperror.ErrUnauthorized
	}
	empUUID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		removed, err := ApplyDelete(st, empUUID)
		if err != nil {
			return nil, err
		}

		return audit.NewEntry(*actor, "EMPLOYEE_DELETE", audit.EntityEmployee, id,
			fmt.Sprintf("%s deleted employee %s and all dependent records", actor.FullName, removed.FullName)), nil
	})
	if err != nil {
		s.logger.Warn("delete employee rejected", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("employee deleted", zap.String("employee_id", id))
	return nil
}

func (s *service) UpdateMultiplier(ctx context.Context, actorID, id string, req UpdateMultiplierRequest) (EmployeeResponse, error) {
	now := s.now()

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return EmployeeResponse{}, apperror.ErrUnauthorized
	}
	empUUID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	var resp EmployeeResponse
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		settings, err := ApplyUpdateMultiplier(st, empUUID, req.OvertimeMultiplier, now)
		if err != nil {
			return nil, err
		}

		emp := st.EmployeeByID(empUUID)
		resp = mapToResponse(*emp, settings)
		return audit.NewEntry(*actor, "OVERTIME_SETTINGS_UPDATE", audit.EntityOvertimeSettings, id,
			fmt.Sprintf("%s set overtime multiplier of %s to %.2f", actor.FullName, emp.FullName, settings.OvertimeMultiplier)), nil
	})
	if err != nil {
		s.logger.Warn("update multiplier rejected", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("overtime multiplier updated", zap.String("employee_id", id))
	return resp, nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := []EmployeeResponse{}
	err := s.engine.View(func(st *state.HRMState) error {
		for _, emp := range st.Employees {
			res = append(res, mapToResponse(emp, st.OvertimeFor(emp.ID)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if err := ctx.Err(); err != nil {
		return EmployeeResponse{}, err
	}

	empUUID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	var resp EmployeeResponse
	err = s.engine.View(func(st *state.HRMState) error {
		emp := st.EmployeeByID(empUUID)
		if emp == nil {
			return employeeerrors.ErrEmployeeNotFound
		}
		resp = mapToResponse(*emp, st.OvertimeFor(emp.ID))
		return nil
	})
	if err != nil {
		return EmployeeResponse{}, err
	}
	return resp, nil
}

func mapToResponse(emp state.Employee, settings *state.OvertimeSettings) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                 emp.ID.String(),
		FullName:           emp.FullName,
		Email:              emp.Email,
		Role:               emp.Role,
		MonthlyHourTarget:  emp.MonthlyHourTarget,
		HourlyRate:         emp.HourlyRate,
		CompLeavesEarned:   emp.CompLeavesEarned,
		CompLeavesUsed:     emp.CompLeavesUsed,
		OvertimeMultiplier: 1.0,
		CreatedAt:          emp.CreatedAt.Format(time.RFC3339),
	}
	if emp.ManagerID != nil {
		v := emp.ManagerID.String()
		resp.ManagerID = &v
	}
	if settings != nil {
		resp.OvertimeMultiplier = settings.OvertimeMultiplier
	}
	return resp
}
