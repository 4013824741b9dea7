package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HaeserTec/tennis-manager-sub002/internal/config"
	"github.com/HaeserTec/tennis-manager-sub002/internal/handlers"
	"github.com/HaeserTec/tennis-manager-sub002/internal/middleware"
	"github.com/HaeserTec/tennis-manager-sub002/internal/repository"
	"github.com/HaeserTec/tennis-manager-sub002/internal/services"
	calendarws "github.com/HaeserTec/tennis-manager-sub002/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	dayEventRepo := repository.NewDayEventRepository(db)
	termRepo := repository.NewTermRepository(db)
	drillRepo := repository.NewDrillRepository(db)
	sessionLogRepo := repository.NewSessionLogRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	calendarHub := calendarws.NewHub()
	go calendarHub.Run()

	rosterService := services.NewRosterService(clientRepo, playerRepo)
	scheduleService := services.NewScheduleService(db, sessionRepo, playerRepo, dayEventRepo, termRepo, calendarHub)
	billingService := services.NewBillingService(clientRepo, playerRepo, sessionRepo, paymentRepo, dayEventRepo, expenseRepo)
	progressService := services.NewProgressService(playerRepo, sessionRepo, sessionLogRepo, dayEventRepo)
	drillService := services.NewDrillService(drillRepo)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	clientHandler := handlers.NewClientHandler(rosterService)
	playerHandler := handlers.NewPlayerHandler(rosterService)
	sessionHandler := handlers.NewSessionHandler(scheduleService)
	calendarHandler := handlers.NewCalendarHandler(scheduleService)
	billingHandler := handlers.NewBillingHandler(billingService)
	progressHandler := handlers.NewProgressHandler(progressService)
	drillHandler := handlers.NewDrillHandler(drillService)
	feedHandler := handlers.NewCalendarFeedHandler(calendarHub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	v1 := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	clients := v1.Group("/clients")
	clients.Post("", clientHandler.CreateClient)
	clients.Get("", clientHandler.ListClients)
	clients.Get("/:id", clientHandler.GetClient)
	clients.Put("/:id", clientHandler.UpdateClient)
	clients.Delete("/:id", clientHandler.DeleteClient)
	clients.Get("/:id/statement", billingHandler.GetStatement)

	players := v1.Group("/players")
	players.Post("", playerHandler.CreatePlayer)
	players.Get("", playerHandler.ListPlayers)
	players.Get("/:id", playerHandler.GetPlayer)
	players.Put("/:id", playerHandler.UpdatePlayer)
	players.Delete("/:id", playerHandler.DeletePlayer)
	players.Get("/:id/progress", progressHandler.GetPlayerProgress)
	players.Get("/:id/attendance", progressHandler.GetPlayerAttendance)

	sessions := v1.Group("/sessions")
	sessions.Post("", sessionHandler.CreateSession)
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/:id", sessionHandler.GetSession)
	sessions.Put("/:id", sessionHandler.UpdateSession)
	sessions.Delete("/:id", sessionHandler.DeleteSession)
	sessions.Post("/:id/repeat", sessionHandler.RepeatSession)

	dayEvents := v1.Group("/day-events")
	dayEvents.Post("", calendarHandler.CreateDayEvent)
	dayEvents.Get("", calendarHandler.ListDayEvents)
	dayEvents.Delete("/:id", calendarHandler.DeleteDayEvent)

	terms := v1.Group("/terms")
	terms.Post("", calendarHandler.CreateTerm)
	terms.Get("", calendarHandler.ListTerms)
	terms.Put("/:id", calendarHandler.UpdateTerm)
	terms.Delete("/:id", calendarHandler.DeleteTerm)

	payments := v1.Group("/payments")
	payments.Post("", billingHandler.RecordPayment)
	payments.Get("", billingHandler.ListPayments)
	payments.Put("/:id", billingHandler.UpdatePayment)
	payments.Delete("/:id", billingHandler.DeletePayment)

	expenses := v1.Group("/expenses")
	expenses.Post("", billingHandler.RecordExpense)
	expenses.Get("", billingHandler.ListExpenses)
	expenses.Delete("/:id", billingHandler.DeleteExpense)

	v1.Get("/reports/revenue", billingHandler.GetRevenueReport)

	sessionLogs := v1.Group("/session-logs")
	sessionLogs.Post("", progressHandler.RecordSessionLog)
	sessionLogs.Get("", progressHandler.ListSessionLogs)
	sessionLogs.Delete("/:id", progressHandler.DeleteSessionLog)

	drills := v1.Group("/drills")
	drills.Post("", drillHandler.CreateDrill)
	drills.Get("", drillHandler.ListDrills)
	drills.Get("/:id", drillHandler.GetDrill)
	drills.Put("/:id", drillHandler.UpdateDrill)
	drills.Delete("/:id", drillHandler.DeleteDrill)

	if cfg.SupabaseURL != "" && cfg.SupabaseBucket != "" && cfg.SupabaseServiceKey != "" {
		snapshotStore := services.NewSupabaseSnapshotStore(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
		syncService := services.NewSyncService(db, snapshotStore)
		syncHandler := handlers.NewSyncHandler(syncService)

		sync := v1.Group("/sync")
		sync.Post("/push", syncHandler.Push)
		sync.Post("/pull", syncHandler.Pull)
	}

	api.Use("/v1/ws", feedHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(feedHandler.HandleWebSocket))
}
