package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/state"
)

func seedEngine(t *testing.T, password string, hashIt bool) (*state.Engine, uuid.UUID) {
	t.Helper()
	stored := password
	if hashIt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		assert.NoError(t, err)
		stored = string(hashed)
	}

	st := state.NewState()
	id := uuid.New()
	st.Employees = append(st.Employees, state.Employee{
		ID:       id,
		FullName: "Dewi",
		Email:    "dewi@example.com",
		Password: stored,
		Role:     state.RoleAdmin,
	})
	return state.NewEngine(st), id
}

func TestLogin_HashedPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine, id := seedEngine(t, "s3cret", true)
	svc := NewService(engine)

	token, resp, err := svc.Login(context.Background(), "dewi@example.com", "s3cret")
	assert.NoError(t, err)
	assert.Equal(t, id.String(), resp.ID)
	assert.Equal(t, state.RoleAdmin, resp.Role)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, id.String(), claims["employee_id"])
	assert.Equal(t, state.RoleAdmin, claims["role"])

	snap := engine.Snapshot()
	assert.Equal(t, id, *snap.CurrentUserID)
	assert.Len(t, snap.AuditLog, 1)
	assert.Equal(t, "SESSION_LOGIN", snap.AuditLog[0].Action)
}

func TestLogin_LegacyPlaintextPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine, _ := seedEngine(t, "old-plain", false)
	svc := NewService(engine)

	_, resp, err := svc.Login(context.Background(), "dewi@example.com", "old-plain")
	assert.NoError(t, err)
	assert.Equal(t, "Dewi", resp.FullName)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine, _ := seedEngine(t, "s3cret", true)
	svc := NewService(engine)

	_, _, err := svc.Login(context.Background(), "dewi@example.com", "nope")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	snap := engine.Snapshot()
	assert.Nil(t, snap.CurrentUserID)
	assert.Empty(t, snap.AuditLog)
}

func TestLogin_HashedStoredValueNotAcceptedAsPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine, _ := seedEngine(t, "s3cret", true)
	svc := NewService(engine)

	// Sending the stored hash itself must not log in.
	snap := engine.Snapshot()
	_, _, err := svc.Login(context.Background(), "dewi@example.com", snap.Employees[0].Password)
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine, _ := seedEngine(t, "s3cret", true)
	svc := NewService(engine)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "s3cret")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogout_ClearsCurrentUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine, id := seedEngine(t, "s3cret", true)
	svc := NewService(engine)

	_, _, err := svc.Login(context.Background(), "dewi@example.com", "s3cret")
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), id.String()))

	snap := engine.Snapshot()
	assert.Nil(t, snap.CurrentUserID)
	assert.Len(t, snap.AuditLog, 2)
	assert.Equal(t, "SESSION_LOGOUT", snap.AuditLog[1].Action)
}
