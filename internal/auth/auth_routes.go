package auth

import (
	"github.com/gin-gonic/gin"

	"go-hrm/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", handler.Login)
		auth.POST("/logout", middleware.AuthMiddleware(), handler.Logout)
	}
}
