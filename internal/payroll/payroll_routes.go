package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-hrm/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		payrolls.GET("/export", middleware.RBACAuthorize(rbacService, "payroll", "export"), handler.Export)
		if redisClient != nil {
			payrolls.POST(
				"/process",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "payroll", "process"),
				handler.ProcessMonth,
			)
		} else {
			payrolls.POST("/process", middleware.RBACAuthorize(rbacService, "payroll", "process"), handler.ProcessMonth)
		}
		payrolls.PATCH("/:id", middleware.RBACAuthorize(rbacService, "payroll", "update"), handler.Update)
	}
}
