package timelog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"go-hrm/internal/timelog"
	timelogerrors "go-hrm/internal/timelog/errors"
)

type fakeService struct {
	checkInFn  func(ctx context.Context, actorID string, req timelog.ClockRequest) (timelog.TimeLogResponse, error)
	checkOutFn func(ctx context.Context, actorID string, req timelog.ClockRequest) (timelog.TimeLogResponse, error)
	getAllFn   func(ctx context.Context, actorID string, canReadAll bool) ([]timelog.TimeLogResponse, error)
}

func (f *fakeService) CheckIn(ctx context.Context, actorID string, req timelog.ClockRequest) (timelog.TimeLogResponse, error) {
	return f.checkInFn(ctx, actorID, req)
}
func (f *fakeService) BreakStart(ctx context.Context, actorID string, req timelog.ClockRequest) (timelog.TimeLogResponse, error) {
	return timelog.TimeLogResponse{}, nil
}
func (f *fakeService) BreakEnd(ctx context.Context, actorID string, req timelog.ClockRequest) (timelog.TimeLogResponse, error) {
	return timelog.TimeLogResponse{}, nil
}
func (f *fakeService) CheckOut(ctx context.Context, actorID string, req timelog.ClockRequest) (timelog.TimeLogResponse, error) {
	return f.checkOutFn(ctx, actorID, req)
}
func (f *fakeService) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]timelog.TimeLogResponse, error) {
	return f.getAllFn(ctx, actorID, canReadAll)
}

func setupRouter(svc timelog.Service, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("employee_id", "emp-1")
		c.Set("role", role)
	})
	handler := timelog.NewHandler(svc)
	r.POST("/timelogs/check-in", handler.CheckIn)
	r.POST("/timelogs/check-out", handler.CheckOut)
	r.GET("/timelogs", handler.GetAll)
	return r
}

func TestHandler_CheckIn_EmptyBodyAllowed(t *testing.T) {
	svc := &fakeService{
		checkInFn: func(ctx context.Context, actorID string, req timelog.ClockRequest) (timelog.TimeLogResponse, error) {
			assert.Equal(t, "emp-1", actorID)
			assert.Empty(t, req.Day)
			return timelog.TimeLogResponse{ID: "tl-1", Status: "CHECKED_IN"}, nil
		},
	}
	router := setupRouter(svc, "employee")

	req := httptest.NewRequest(http.MethodPost, "/timelogs/check-in", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var res map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, true, res["ok"])
}

func TestHandler_CheckOut_TasksRequiredMapsTo422(t *testing.T) {
	svc := &fakeService{
		checkOutFn: func(ctx context.Context, actorID string, req timelog.ClockRequest) (timelog.TimeLogResponse, error) {
			return timelog.TimeLogResponse{}, timelogerrors.ErrTasksRequired
		},
	}
	router := setupRouter(svc, "employee")

	body, _ := json.Marshal(timelog.ClockRequest{Day: "2026-03-02"})
	req := httptest.NewRequest(http.MethodPost, "/timelogs/check-out", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var res map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, false, res["ok"])
}

func TestHandler_GetAll_RoleControlsScope(t *testing.T) {
	for role, wantAll := range map[string]bool{
		"employee": false,
		"manager":  true,
		"admin":    true,
	} {
		svc := &fakeService{
			getAllFn: func(ctx context.Context, actorID string, canReadAll bool) ([]timelog.TimeLogResponse, error) {
				assert.Equal(t, wantAll, canReadAll, "role %s", role)
				return []timelog.TimeLogResponse{}, nil
			},
		}
		router := setupRouter(svc, role)

		req := httptest.NewRequest(http.MethodGet, "/timelogs", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
