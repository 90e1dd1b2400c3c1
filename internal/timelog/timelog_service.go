package timelog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-hrm/internal/audit"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/state"
	timelogerrors "go-hrm/internal/timelog/errors"
)

//go:generate mockgen -source=timelog_service.go -destination=mock/timelog_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, actorID string, req ClockRequest) (TimeLogResponse, error)
	BreakStart(ctx context.Context, actorID string, req ClockRequest) (TimeLogResponse, error)
	BreakEnd(ctx context.Context, actorID string, req ClockRequest) (TimeLogResponse, error)
	CheckOut(ctx context.Context, actorID string, req ClockRequest) (TimeLogResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]TimeLogResponse, error)
}

type service struct {
	engine *state.Engine
	logger *zap.Logger
	now    func() time.Time
}

func NewService(engine *state.Engine, logger ...*zap.Logger) Service {
	l := zap.L().Named("timelog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timelog.service")
	}
	return &service{engine: engine, logger: l, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) CheckIn(ctx context.Context, actorID string, req ClockRequest) (TimeLogResponse, error) {
	return s.clock(ctx, actorID, req, "TIMELOG_CHECK_IN", ApplyCheckIn,
		func(actor state.Employee, day string) string {
			return fmt.Sprintf("%s checked in on %s", actor.FullName, day)
		})
}

func (s *service) BreakStart(ctx context.Context, actorID string, req ClockRequest) (TimeLogResponse, error) {
	return s.clock(ctx, actorID, req, "TIMELOG_BREAK_START", ApplyBreakStart,
		func(actor state.Employee, day string) string {
			return fmt.Sprintf("%s started a break on %s", actor.FullName, day)
		})
}

func (s *service) BreakEnd(ctx context.Context, actorID string, req ClockRequest) (TimeLogResponse, error) {
	return s.clock(ctx, actorID, req, "TIMELOG_BREAK_END", ApplyBreakEnd,
		func(actor state.Employee, day string) string {
			return fmt.Sprintf("%s ended a break on %s", actor.FullName, day)
		})
}

func (s *service) CheckOut(ctx context.Context, actorID string, req ClockRequest) (TimeLogResponse, error) {
	return s.clock(ctx, actorID, req, "TIMELOG_CHECK_OUT", ApplyCheckOut,
		func(actor state.Employee, day string) string {
			return fmt.Sprintf("%s checked out on %s", actor.FullName, day)
		})
}

type applyFn func(st *state.HRMState, employeeID uuid.UUID, day string, now time.Time) (*state.TimeLogEntry, error)

func (s *service) clock(
	ctx context.Context,
	actorID string,
	req ClockRequest,
	action string,
	apply applyFn,
	describe func(actor state.Employee, day string) string,
) (TimeLogResponse, error) {
	now := s.now()

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimeLogResponse{}, timelogerrors.ErrInvalidEmployeeID
	}
	day, err := resolveDay(req.Day, now)
	if err != nil {
		return TimeLogResponse{}, err
	}

	s.logger.Debug("timelog mutation requested",
		zap.String("action", action),
		zap.String("employee_id", actorID),
		zap.String("day", day),
	)

	var resp TimeLogResponse
	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}

		entry, err := apply(st, actorUUID, day, now)
		if err != nil {
			return nil, err
		}

		resp = mapToResponse(*entry, actor.FullName, now)
		return audit.NewEntry(*actor, action, audit.EntityTimeLog, entry.ID.String(),
			describe(*actor, day)), nil
	})
	if err != nil {
		s.logger.Warn("timelog mutation rejected",
			zap.String("action", action),
			zap.String("employee_id", actorID),
			zap.String("day", day),
			zap.Error(err),
		)
		return TimeLogResponse{}, err
	}

	s.logger.Info("timelog mutation success",
		zap.String("action", action),
		zap.String("employee_id", actorID),
		zap.String("day", day),
	)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]TimeLogResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, timelogerrors.ErrInvalidEmployeeID
	}
	now := s.now()

	res := []TimeLogResponse{}
	err = s.engine.View(func(st *state.HRMState) error {
		for _, entry := range st.TimeLogs {
			if !canReadAll && entry.EmployeeID != actorUUID {
				continue
			}
			name := ""
			if emp := st.EmployeeByID(entry.EmployeeID); emp != nil {
				name = emp.FullName
			}
			res = append(res, mapToResponse(entry, name, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func resolveDay(day string, now time.Time) (string, error) {
	if day == "" {
		return now.Format(state.DayLayout), nil
	}
	if _, err := time.Parse(state.DayLayout, day); err != nil {
		return "", timelogerrors.ErrInvalidDay
	}
	return day, nil
}

func mapToResponse(entry state.TimeLogEntry, employeeName string, now time.Time) TimeLogResponse {
	resp := TimeLogResponse{
		ID:           entry.ID.String(),
		EmployeeID:   entry.EmployeeID.String(),
		Day:          entry.Day,
		CheckIn:      entry.CheckIn.Format(time.RFC3339),
		TotalHours:   entry.TotalHours,
		HoursSoFar:   HoursWorkedSoFar(entry, now),
		Status:       entry.Status,
		EmployeeName: employeeName,
	}
	if entry.CheckOut != nil {
		v := entry.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	for _, b := range entry.Breaks {
		br := BreakResponse{Start: b.Start.Format(time.RFC3339)}
		if b.End != nil {
			v := b.End.Format(time.RFC3339)
			br.End = &v
		}
		resp.Breaks = append(resp.Breaks, br)
	}
	return resp
}
