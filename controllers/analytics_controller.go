package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/services"
)

type AnalyticsController struct {
	Svc       *services.AnalyticsService
	Recompute *services.Recomputer
}

func NewAnalyticsController(svc *services.AnalyticsService, rec *services.Recomputer) *AnalyticsController {
	return &AnalyticsController{Svc: svc, Recompute: rec}
}

// GET /nutrition/analytics/latest — latest snapshot, 204 when the user has none.
func (h *AnalyticsController) GetLatestSnapshot(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	snap, err := h.Svc.Latest(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if snap == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// POST /nutrition/analytics/recompute — synchronous full recompute, awaited.
func (h *AnalyticsController) RecomputeNow(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	res := h.Recompute.Run(c.Request.Context(), userID)
	if res.Err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Err.Error()})
		return
	}
	if res.Snapshot == nil {
		c.JSON(http.StatusOK, gin.H{
			"job_id":   res.JobID,
			"snapshot": nil,
			"message":  "no log activity in window",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"job_id":   res.JobID,
		"snapshot": res.Snapshot,
		"alerts":   len(res.Alerts),
	})
}

// GET /nutrition/analytics/window?from=&to= — recompute over explicit bounds.
func (h *AnalyticsController) SnapshotForWindow(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	from, to, err := windowFromQuery(c, now.AddDate(0, 0, -55), now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.Svc.Recompute(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if snap == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, snap)
}
