package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/services"
)

type ModelController struct {
	Models *services.ConsumptionModelService
}

func NewModelController(models *services.ConsumptionModelService) *ModelController {
	return &ModelController{Models: models}
}

// GET /nutrition/models — per-item consumption models with depletion
// estimates, for the dashboard.
func (h *ModelController) ListModels(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ms, err := h.Models.ListModels(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ms)
}
