package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/services"
)

type ExpenseController struct {
	Expenses  *services.ExpenseService
	Recompute *services.Recomputer
}

func NewExpenseController(expenses *services.ExpenseService, rec *services.Recomputer) *ExpenseController {
	return &ExpenseController{Expenses: expenses, Recompute: rec}
}

type ingestExpensesInput struct {
	Items []services.ExpenseItemRequest `json:"items" binding:"required"`
}

// POST /nutrition/expenses — receipt-parsed items, already extracted upstream.
func (h *ExpenseController) Ingest(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input ingestExpensesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.Expenses.Ingest(c.Request.Context(), userID, input.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// new expiry dates may warrant alerts
	_ = h.Recompute.Submit(c.Request.Context(), userID)

	c.JSON(http.StatusCreated, items)
}

// GET /nutrition/expenses?from=&to=
func (h *ExpenseController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	from, to, err := windowFromQuery(c, now.AddDate(0, -1, 0), now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.Expenses.List(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /nutrition/expenses/expiring?days=3
func (h *ExpenseController) ListExpiring(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	days := 3
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
			return
		}
		days = parsed
	}

	items, err := h.Expenses.ListExpiring(c.Request.Context(), userID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}
