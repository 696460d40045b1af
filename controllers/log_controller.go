package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/services"
)

type LogController struct {
	Logs      *services.LogService
	Recompute *services.Recomputer
}

func NewLogController(logs *services.LogService, rec *services.Recomputer) *LogController {
	return &LogController{Logs: logs, Recompute: rec}
}

// POST /nutrition/logs
func (h *LogController) CreateLog(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req services.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Logs.LogConsumption(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// fire-and-forget: the result channel is dropped, failures are logged
	// inside the recomputer
	_ = h.Recompute.Submit(c.Request.Context(), userID)

	c.JSON(http.StatusCreated, entry)
}

// GET /nutrition/logs?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *LogController) ListLogs(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	from, to, err := windowFromQuery(c, now.AddDate(0, 0, -7), now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.Logs.ListLogs(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}
