package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-hrm/internal/audit"
	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/state"
)

const tokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (token string, resp AuthResponse, err error)
	Logout(ctx context.Context, actorID string) error
}

type service struct {
	engine *state.Engine
	logger *zap.Logger
	now    func() time.Time
}

func NewService(engine *state.Engine, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{engine: engine, logger: l, now: func() time.Time { return time.Now().UTC() }}
}

// passwordMatches accepts a bcrypt hash or, for documents written before
// hashing was introduced, the stored plaintext itself.
func passwordMatches(stored, given string) bool {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)); err == nil {
		return true
	}
	if _, err := bcrypt.Cost([]byte(stored)); err != nil {
		// Not a bcrypt hash at all, so this is a legacy record.
		return stored == given
	}
	return false
}

func (s *service) Login(ctx context.Context, email, password string) (string, AuthResponse, error) {
	var resp AuthResponse
	var employee state.Employee

	err := s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		found := st.EmployeeByEmail(email)
		if found == nil || !passwordMatches(found.Password, password) {
			return nil, autherrors.ErrInvalidCredentials
		}

		id := found.ID
		st.CurrentUserID = &id
		employee = *found
		resp = AuthResponse{
			ID:       found.ID.String(),
			Email:    found.Email,
			FullName: found.FullName,
			Role:     found.Role,
		}
		return audit.NewEntry(*found, "SESSION_LOGIN", audit.EntitySession, found.ID.String(),
			fmt.Sprintf("%s logged in", found.FullName)), nil
	})
	if err != nil {
		s.logger.Warn("login rejected", zap.String("email", email))
		return "", AuthResponse{}, err
	}

	token, err := s.generateToken(employee)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return "", AuthResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "could not issue token", http.StatusInternalServerError)
	}

	s.logger.Info("login succeeded",
		zap.String("employee_id", resp.ID),
		zap.String("role", resp.Role),
	)
	return token, resp, nil
}

func (s *service) Logout(ctx context.Context, actorID string) error {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return apperror.ErrUnauthorized
	}

	err = s.engine.Update(ctx, func(st *state.HRMState) (*state.AuditLogEntry, error) {
		actor := st.EmployeeByID(actorUUID)
		if actor == nil {
			return nil, apperror.ErrUnauthorized
		}
		st.CurrentUserID = nil
		return audit.NewEntry(*actor, "SESSION_LOGOUT", audit.EntitySession, actor.ID.String(),
			fmt.Sprintf("%s logged out", actor.FullName)), nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("logout", zap.String("employee_id", actorID))
	return nil
}

func (s *service) generateToken(emp state.Employee) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": emp.ID.String(),
		"role":        emp.Role,
		"full_name":   emp.FullName,
		"iat":         s.now().Unix(),
		"exp":         s.now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
