package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/services"
)

type ProfileController struct {
	Profiles  *services.ProfileService
	Recompute *services.Recomputer
}

func NewProfileController(profiles *services.ProfileService, rec *services.Recomputer) *ProfileController {
	return &ProfileController{Profiles: profiles, Recompute: rec}
}

// POST /nutrition/profiles — ingest an extracted profile (label scan,
// barcode lookup, AI inference, or manual entry).
func (h *ProfileController) Ingest(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req services.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.Profiles.Ingest(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// a fresh profile changes resolution confidence downstream
	_ = h.Recompute.Submit(c.Request.Context(), userID)

	c.JSON(http.StatusCreated, profile)
}

// GET /nutrition/profiles/:itemKey — authoritative profile for an item.
func (h *ProfileController) GetLatest(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.Profiles.Latest(c.Request.Context(), userID, c.Param("itemKey"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile for item"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /nutrition/profiles/:itemKey/history
func (h *ProfileController) History(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profiles, err := h.Profiles.History(c.Request.Context(), userID, c.Param("itemKey"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profiles)
}
