package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/services"
)

type UserController struct {
	Users   *services.UserService
	Targets *services.TargetService
}

func NewUserController(users *services.UserService, targets *services.TargetService) *UserController {
	return &UserController{Users: users, Targets: targets}
}

// GET /user/profile
func (h *UserController) GetProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.Users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /user/profile — body metrics drive the target calculator, so targets
// are re-derived after an update when the user has not set them manually.
func (h *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input services.UserProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Users.UpdateProfile(c.Request.Context(), userID, input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Targets.Derive(c.Request.Context(), userID); err != nil {
		// incomplete metrics just leave targets untouched
		c.JSON(http.StatusOK, gin.H{"message": "profile updated", "targets_derived": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "targets_derived": true})
}
