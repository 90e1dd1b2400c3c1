package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-hrm/internal/audit"
	"go-hrm/internal/auth"
	"go-hrm/internal/employee"
	"go-hrm/internal/leave"
	"go-hrm/internal/middleware"
	"go-hrm/internal/payroll"
	"go-hrm/internal/rbac"
	"go-hrm/internal/state"
	"go-hrm/internal/task"
	"go-hrm/internal/timelog"
)

func registerModules(
	router *gin.Engine,
	engine *state.Engine,
	rbacService rbac.Service,
	rdb *redis.Client,
) error {
	// --- Services ---
	authService := auth.NewService(engine)
	employeeService := employee.NewService(engine)
	timelogService := timelog.NewService(engine)
	taskService := task.NewService(engine)
	leaveService := leave.NewService(engine)
	payrollService := payroll.NewService(engine)
	auditService := audit.NewService(engine)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	timelogHandler := timelog.NewHandler(timelogService)
	taskHandler := task.NewHandler(taskService)
	leaveHandler := leave.NewHandler(leaveService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	auditHandler := audit.NewHandler(auditService)

	router.Use(middleware.RequestID())

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		timelog.RegisterRoutes(api, timelogHandler, rbacService)
		task.RegisterRoutes(api, taskHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		audit.RegisterRoutes(api, auditHandler, rbacService)
	}

	return nil
}
