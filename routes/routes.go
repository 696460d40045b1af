package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/controllers"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/middlewares"
)

// Controllers bundles every handler group for router wiring.
type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Logs      *controllers.LogController
	Profiles  *controllers.ProfileController
	Analytics *controllers.AnalyticsController
	Models    *controllers.ModelController
	Alerts    *controllers.AlertController
	Targets   *controllers.TargetController
	Expenses  *controllers.ExpenseController
	Devices   *controllers.DeviceController
	Realtime  *controllers.RealtimeController
}

func SetupRouter(db *gorm.DB, c Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware(db))
	{
		user.GET("/profile", c.User.GetProfile)
		user.PUT("/profile", c.User.UpdateProfile)
		user.POST("/devices", c.Devices.Register)
		user.PATCH("/devices/notifications", c.Devices.ToggleNotifications)
	}

	// Protected nutrition pipeline routes
	nutrition := r.Group("/nutrition")
	nutrition.Use(middlewares.AuthMiddleware(db))
	{
		nutrition.POST("/logs", c.Logs.CreateLog)
		nutrition.GET("/logs", c.Logs.ListLogs)

		nutrition.POST("/profiles", c.Profiles.Ingest)
		nutrition.GET("/profiles/:itemKey", c.Profiles.GetLatest)
		nutrition.GET("/profiles/:itemKey/history", c.Profiles.History)

		nutrition.GET("/analytics/latest", c.Analytics.GetLatestSnapshot)
		nutrition.POST("/analytics/recompute", c.Analytics.RecomputeNow)
		nutrition.GET("/analytics/window", c.Analytics.SnapshotForWindow)

		nutrition.GET("/models", c.Models.ListModels)

		nutrition.GET("/alerts", c.Alerts.ListAlerts)
		nutrition.PATCH("/alerts/:id/read", c.Alerts.MarkRead)

		nutrition.GET("/targets", c.Targets.GetTargets)
		nutrition.PUT("/targets", c.Targets.UpsertTargets)
		nutrition.POST("/targets/derive", c.Targets.DeriveTargets)

		nutrition.POST("/expenses", c.Expenses.Ingest)
		nutrition.GET("/expenses", c.Expenses.List)
		nutrition.GET("/expenses/expiring", c.Expenses.ListExpiring)

		nutrition.GET("/events/ws", c.Realtime.EventsWS)
	}

	return r
}
