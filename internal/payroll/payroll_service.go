package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-hrm/internal/audit"
	payrollerrors "go-hrm/internal/payroll/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/state"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	ProcessMonth(ctx context.Context, actorID string, req ProcessMonthRequest) (ProcessMonthReport, error)
	Update(ctx context.Context, actorID, entryID string, req UpdatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]PayrollResponse, error)
	ExportMonth(ctx context.Context, month string) ([]PayrollResponse, error)
}

type service struct {
	engine *state.Engine
	logger *zap.Logger
	now    func() time.Time
}

func NewService(engine *state.Engine, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{engine: engine, logger: l, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) ProcessMonth(ctx context.Context, actorID string, req ProcessMonthRequest) (ProcessMonthReport, error) {
	s.logger.Debug("process month requested",
		zap.String("month", req.Month),
		zap.String("actor_id", actorID),
	)
	now := s.now()

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ProcessMonthReport{}, apperror.ErrUnauthorized
	}

	report := ProcessMonthReport{Month: req.Month, Created: []PayrollResponse{}}
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		created, skipped, err := ApplyProcessMonth(st, req.Month, actorUUID, now)
		if err != nil {
			return nil, err
		}

		report.Skipped = skipped
		for _, entry := range created {
			name := ""
			if emp := st.EmployeeByID(entry.EmployeeID); emp != nil {
				name = emp.FullName
			}
			report.Created = append(report.Created, mapToResponse(entry, name))
		}
		if len(created) == 0 {
			// Every employee already has an entry: a no-op report, not an
			// error, so reruns stay safe.
			report.NothingToProcess = true
			return nil, nil
		}

		return audit.NewEntry(*actor, "PAYROLL_PROCESS_MONTH", audit.EntityPayrollEntry, req.Month,
			fmt.Sprintf("%s processed payroll for %s: %d created, %d skipped",
				actor.FullName, req.Month, len(created), skipped)), nil
	})
	if err != nil {
		s.logger.Warn("process month rejected", zap.String("month", req.Month), zap.Error(err))
		return ProcessMonthReport{}, err
	}

	s.logger.Info("process month done",
		zap.String("month", req.Month),
		zap.Int("created", len(report.Created)),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

func (s *service) Update(ctx context.Context, actorID, entryID string, req UpdatePayrollRequest) (PayrollResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, apperror.ErrUnauthorized
	}
	entryUUID, err := uuid.Parse(entryID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEntryID
	}

	var resp PayrollResponse
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		before := st.PayrollByID(entryUUID)
		var beforeCopy *state.PayrollEntry
		if before != nil {
			v := *before
			beforeCopy = &v
		}

		entry, err := ApplyUpdateEntry(st, entryUUID, UpdatePatch{
			RegularHours:  req.RegularHours,
			OvertimeHours: req.OvertimeHours,
			Status:        req.Status,
			Notes:         req.Notes,
		})
		if err != nil {
			return nil, err
		}

		name := ""
		if emp := st.EmployeeByID(entry.EmployeeID); emp != nil {
			name = emp.FullName
		}
		resp = mapToResponse(*entry, name)
		return audit.WithChange(
			audit.NewEntry(*actor, "PAYROLL_UPDATE", audit.EntityPayrollEntry, entryID,
				fmt.Sprintf("%s updated payroll entry of %s for %s", actor.FullName, name, entry.Month)),
			beforeCopy, entry,
		), nil
	})
	if err != nil {
		s.logger.Warn("update payroll rejected", zap.String("entry_id", entryID), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll entry updated", zap.String("entry_id", entryID))
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]PayrollResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	res := []PayrollResponse{}
	err = s.engine.View(func(st *state.HRMState) error {
		for _, entry := range st.PayrollEntries {
			if !canReadAll && entry.EmployeeID != actorUUID {
				continue
			}
			name := ""
			if emp := st.EmployeeByID(entry.EmployeeID); emp != nil {
				name = emp.FullName
			}
			res = append(res, mapToResponse(entry, name))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) ExportMonth(ctx context.Context, month string) ([]PayrollResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := time.Parse(state.MonthLayout, month); err != nil {
		return nil, payrollerrors.ErrInvalidMonth
	}

	res := []PayrollResponse{}
	err := s.engine.View(func(st *state.HRMState) error {
		for _, entry := range st.PayrollEntries {
			if entry.Month != month {
				continue
			}
			name := ""
			if emp := st.EmployeeByID(entry.EmployeeID); emp != nil {
				name = emp.FullName
			}
			res = append(res, mapToResponse(entry, name))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func mapToResponse(entry state.PayrollEntry, employeeName string) PayrollResponse {
	return PayrollResponse{
		ID:            entry.ID.String(),
		EmployeeID:    entry.EmployeeID.String(),
		EmployeeName:  employeeName,
		Month:         entry.Month,
		RegularHours:  entry.RegularHours,
		OvertimeHours: entry.OvertimeHours,
		RegularPay:    entry.RegularPay,
		OvertimePay:   entry.OvertimePay,
		TotalPay:      entry.TotalPay,
		Status:        entry.Status,
		ProcessedBy:   entry.ProcessedBy.String(),
		ProcessedAt:   entry.ProcessedAt.Format(time.RFC3339),
		Notes:         entry.Notes,
	}
}
