package store

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/data", handler.GetData)
	r.POST("/data", handler.SaveData)
	r.POST("/init", handler.InitData)
	r.POST("/reset", handler.ResetData)
}
