package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketing-tracker/internal/application/analytics"
	"github.com/jhoicas/marketing-tracker/internal/application/auth"
	"github.com/jhoicas/marketing-tracker/internal/application/export"
	"github.com/jhoicas/marketing-tracker/internal/application/notify"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ActivityUC  *usecase.ActivityUseCase
	FollowupUC  *usecase.FollowupUseCase
	UserUC      *usecase.UserUseCase
	SettingsUC  *usecase.SettingsUseCase
	DashboardUC *analytics.DashboardUseCase
	ExportUC    *export.ExportUseCase
	ReminderUC  *notify.ReminderUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Activities (protegido)
	activities := protected.Group("/activities")
	activityHandler := NewActivityHandler(deps.ActivityUC, deps.FollowupUC)
	activities.Post("/", activityHandler.Create)
	activities.Get("/", activityHandler.List)
	activities.Get("/:id", activityHandler.GetByID)
	activities.Patch("/:id/status", activityHandler.UpdateStatus)
	activities.Put("/:id", activityHandler.Update)
	activities.Delete("/:id", activityHandler.Delete)
	activities.Get("/:id/followups", activityHandler.ListFollowups)

	// Followups (protegido)
	followups := protected.Group("/followups")
	followupHandler := NewFollowupHandler(deps.FollowupUC)
	followups.Post("/", followupHandler.Create)
	followups.Get("/upcoming", followupHandler.Upcoming)
	followups.Get("/", followupHandler.List)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// Cambio de contraseña propio (protegido, cualquier rol)
	userHandler := NewUserHandler(deps.UserUC)
	protected.Post("/users/password", userHandler.ChangePassword)

	// Rutas de administración (Bearer + rol admin; los casos de uso
	// re-validan el rol contra el almacén)
	admin := protected.Group("/", RequireRole(entity.RoleAdmin))

	users := admin.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Delete("/:username", userHandler.Delete)

	settings := admin.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Save)

	exportHandler := NewExportHandler(deps.ExportUC)
	admin.Get("/export/:kind", exportHandler.ExportCSV)
	admin.Get("/backup", exportHandler.Backup)
	admin.Post("/restore", exportHandler.Restore)
	admin.Get("/integrity", exportHandler.Integrity)

	notifyHandler := NewNotifyHandler(deps.ReminderUC)
	admin.Post("/notifications/reminders", notifyHandler.SendReminders)
}
