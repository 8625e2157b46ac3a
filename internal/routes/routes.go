package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-center/internal/audit"
	"github.com/BruksfildServices01/service-center/internal/config"
	"github.com/BruksfildServices01/service-center/internal/handlers"
	infraRepo "github.com/BruksfildServices01/service-center/internal/infra/repository"
	"github.com/BruksfildServices01/service-center/internal/middleware"
	"github.com/BruksfildServices01/service-center/internal/models"
	"github.com/BruksfildServices01/service-center/internal/outbox"
	"github.com/BruksfildServices01/service-center/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/service-center/internal/usecase/appointment"
	ucFeedback "github.com/BruksfildServices01/service-center/internal/usecase/feedback"
	ucInventory "github.com/BruksfildServices01/service-center/internal/usecase/inventory"
	ucSettings "github.com/BruksfildServices01/service-center/internal/usecase/settings"
	ucVehicle "github.com/BruksfildServices01/service-center/internal/usecase/vehicle"
	"github.com/BruksfildServices01/service-center/internal/validators"
)

// Deps are the long-lived collaborators built by main.
type Deps struct {
	Audit  audit.Sink
	Outbox outbox.Kicker

	// Optional.
	Idempotency ucAppointment.IdempotencyStore
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	sink := deps.Audit
	if sink == nil {
		sink = audit.Discard
	}

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	inventoryRepo := infraRepo.NewInventoryGormRepository(db)
	settingsRepo := infraRepo.NewSettingsGormRepository(db)
	feedbackRepo := infraRepo.NewFeedbackGormRepository(db)
	vehicleRepo := infraRepo.NewVehicleGormRepository(db)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		settingsRepo,
		sink,
		deps.Outbox,
		ucAppointment.BookConfig{
			SlotGranularityMinutes: cfg.SlotGranularityMinutes,
			Location:               timezone.Location(cfg.Timezone),
			Idempotency:            deps.Idempotency,
		},
	)
	getUC := ucAppointment.NewGetAppointment(appointmentRepo)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, sink)
	assignUC := ucAppointment.NewAssignMechanic(appointmentRepo, sink)

	startUC := ucAppointment.NewStartService(appointmentRepo, sink)
	addPartUC := ucAppointment.NewAddPart(appointmentRepo, sink)
	addLaborUC := ucAppointment.NewAddLabor(appointmentRepo, sink)
	finishUC := ucAppointment.NewFinishService(appointmentRepo, sink, deps.Outbox)

	// ======================================================
	// USE CASES - VEHICLES, INVENTORY, SETTINGS, FEEDBACK
	// ======================================================
	vehicleService := ucVehicle.NewService(vehicleRepo, sink)

	inventoryService := ucInventory.NewService(inventoryRepo, sink)
	orderUC := ucInventory.NewOrderFromSupplier(inventoryRepo, deps.Outbox)
	if cfg.VerifySupplierDomain {
		orderUC.WithDomainCheck(validators.IsEmailDomainValid)
	}

	settingsService := ucSettings.NewService(settingsRepo, sink)

	feedbackUC := ucFeedback.NewSubmitFeedback(feedbackRepo, sink)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(bookUC, getUC, cancelUC, assignUC)
	jobHandler := handlers.NewJobHandler(startUC, addPartUC, addLaborUC, finishUC)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, orderUC)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackUC)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)

	customer := middleware.RequireRole(models.RoleCustomer)
	mechanic := middleware.RequireRole(models.RoleMechanic)
	manager := middleware.RequireRole(models.RoleManager)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments",
			customer,
			middleware.RateLimit(cfg.BookingRatePerSec, cfg.BookingBurst),
			appointmentHandler.Book,
		)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.PATCH("/appointments/:id/cancel", customer, appointmentHandler.Cancel)

		api.POST("/feedback", customer, feedbackHandler.Submit)

		// ------------------------------
		// VEHICLES
		// ------------------------------
		vehicles := api.Group("/vehicles", customer)
		{
			vehicles.POST("", vehicleHandler.Register)
			vehicles.GET("/:id", vehicleHandler.Get)
			vehicles.PATCH("/:id", vehicleHandler.Update)
			vehicles.DELETE("/:id", vehicleHandler.Delete)
		}

		// ------------------------------
		// MANAGER
		// ------------------------------
		api.PATCH("/manager/appointments/:id/assign", manager, appointmentHandler.Assign)

		api.GET("/settings", manager, settingsHandler.Get)
		api.PUT("/settings", manager, settingsHandler.Update)

		// ------------------------------
		// MECHANIC
		// ------------------------------
		jobs := api.Group("/mechanic/jobs", mechanic)
		{
			jobs.PATCH("/:id/start", jobHandler.Start)
			jobs.POST("/:id/parts", jobHandler.AddPart)
			jobs.POST("/:id/labor", jobHandler.AddLabor)
			jobs.PATCH("/:id/finish", jobHandler.Finish)
		}

		// ------------------------------
		// INVENTORY
		// ------------------------------
		inventory := api.Group("/inventory")
		{
			inventory.POST("", manager, inventoryHandler.Create)
			inventory.GET("/low-stock", manager, inventoryHandler.LowStock)
			inventory.GET("/:id", middleware.RequireRole(models.RoleManager, models.RoleMechanic), inventoryHandler.Get)
			inventory.PATCH("/:id", manager, inventoryHandler.Update)
			inventory.DELETE("/:id", manager, inventoryHandler.Delete)
			inventory.POST("/:id/receive", manager, inventoryHandler.Receive)
			inventory.POST("/:id/order", manager, inventoryHandler.Order)
		}
	}
}
