package leave

import (
	"github.com/gin-gonic/gin"

	"go-hrm/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/balance/:employeeId", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.Balance)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "request"), handler.Request)
		leaves.POST("/:id/decide", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.Decide)
		leaves.POST("/grant", middleware.RBACAuthorize(rbacService, "leave", "grant"), handler.Grant)
	}
}
