package timelog

import (
	"github.com/gin-gonic/gin"

	"go-hrm/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	timelogs := r.Group("/timelogs")
	timelogs.Use(middleware.AuthMiddleware())
	{
		timelogs.GET("", middleware.RBACAuthorize(rbacService, "timelog", "read"), handler.GetAll)
		timelogs.POST("/check-in", middleware.RBACAuthorize(rbacService, "timelog", "write"), handler.CheckIn)
		timelogs.POST("/break-start", middleware.RBACAuthorize(rbacService, "timelog", "write"), handler.BreakStart)
		timelogs.POST("/break-end", middleware.RBACAuthorize(rbacService, "timelog", "write"), handler.BreakEnd)
		timelogs.POST("/check-out", middleware.RBACAuthorize(rbacService, "timelog", "write"), handler.CheckOut)
	}
}
