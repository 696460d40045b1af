package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/t3idma00/NutriExpense-Tracker-sub000/config"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/controllers"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/routes"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/services"
	"github.com/t3idma00/NutriExpense-Tracker-sub000/utils"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	db, err := config.InitDB()
	if err != nil {
		log.Fatalw("database init failed", "error", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalw("migration failed", "error", err)
	}

	ctx := context.Background()

	push, err := services.NewPushService(ctx, db)
	if err != nil {
		log.Fatalw("push service init failed", "error", err)
	}
	mailer, err := utils.NewMailer(ctx)
	if err != nil {
		log.Fatalw("mailer init failed", "error", err)
	}

	tuning := services.DefaultTuning()
	hub := services.NewRealtimeHub()

	logs := services.NewLogService(db, tuning)
	analytics := services.NewAnalyticsService(db, tuning)
	consumption := services.NewConsumptionModelService(db, tuning)
	alerts := services.NewAlertService(db, tuning, analytics, push, hub, mailer, log)
	recomputer := services.NewRecomputer(analytics, consumption, alerts, hub, log)

	profiles := services.NewProfileService(db)
	expenses := services.NewExpenseService(db)
	targets := services.NewTargetService(db)
	auth := services.NewAuthService(db)
	users := services.NewUserService(db)

	r := routes.SetupRouter(db, routes.Controllers{
		Auth:      controllers.NewAuthController(auth),
		User:      controllers.NewUserController(users, targets),
		Logs:      controllers.NewLogController(logs, recomputer),
		Profiles:  controllers.NewProfileController(profiles, recomputer),
		Analytics: controllers.NewAnalyticsController(analytics, recomputer),
		Models:    controllers.NewModelController(consumption),
		Alerts:    controllers.NewAlertController(alerts),
		Targets:   controllers.NewTargetController(targets),
		Expenses:  controllers.NewExpenseController(expenses, recomputer),
		Devices:   controllers.NewDeviceController(push, db),
		Realtime:  controllers.NewRealtimeController(hub),
	})

	if err := r.Run(":8080"); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
