package audit

import (
	"github.com/gin-gonic/gin"

	"go-hrm/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	audits := r.Group("/audits")
	audits.Use(middleware.AuthMiddleware())
	{
		audits.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.List)
	}
}
