package store

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-hrm/internal/sync"
)

// Handler speaks the raw document protocol consumed by sync.Client.
// These endpoints keep their own wire shapes instead of the api
// response envelope; the client contract predates it.
type Handler struct {
	service Service
	key     string
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("store.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("store.handler")
	}
	return &Handler{service: service, key: sync.DefaultStoreKey, logger: l}
}

type documentRequest struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

func (h *Handler) GetData(c *gin.Context) {
	data, err := h.service.Get(c.Request.Context(), h.key)
	if err != nil {
		h.logger.Error("document read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"data": nil})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *Handler) SaveData(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}

	if err := h.service.Save(c.Request.Context(), h.key, req.Data); err != nil {
		h.logger.Error("document save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) InitData(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "initialized": false})
		return
	}

	initialized, err := h.service.Init(c.Request.Context(), h.key, req.Data)
	if err != nil {
		h.logger.Error("document init failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "initialized": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "initialized": initialized})
}

func (h *Handler) ResetData(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}

	if err := h.service.Reset(c.Request.Context(), h.key, req.Data); err != nil {
		h.logger.Error("document reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
