package task

import (
	"github.com/gin-gonic/gin"

	"go-hrm/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("", middleware.RBACAuthorize(rbacService, "task", "read"), handler.GetAll)
		tasks.POST("", middleware.RBACAuthorize(rbacService, "task", "create"), handler.Add)
		tasks.DELETE("/:id", middleware.RBACAuthorize(rbacService, "task", "delete"), handler.Delete)
		tasks.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "task", "review"), handler.Approve)
		tasks.POST("/:id/comment", middleware.RBACAuthorize(rbacService, "task", "review"), handler.Comment)
	}
}
