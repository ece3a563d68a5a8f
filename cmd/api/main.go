package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/marketing-tracker/internal/application/analytics"
	"github.com/jhoicas/marketing-tracker/internal/application/auth"
	"github.com/jhoicas/marketing-tracker/internal/application/export"
	"github.com/jhoicas/marketing-tracker/internal/application/notify"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
	"github.com/jhoicas/marketing-tracker/internal/infrastructure/flatfile"
	"github.com/jhoicas/marketing-tracker/internal/infrastructure/mail"
	"github.com/jhoicas/marketing-tracker/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/marketing-tracker/internal/interfaces/http"
	"github.com/jhoicas/marketing-tracker/pkg/config"
	"github.com/jhoicas/marketing-tracker/pkg/logger"
)

// repos agrupa los puertos de persistencia resueltos según STORE_DRIVER.
type repos struct {
	users      repository.UserRepository
	activities repository.ActivityRepository
	followups  repository.FollowupRepository
	appConfig  repository.AppConfigRepository
	analytics  repository.AnalyticsRepository
	txRunner   usecase.TxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := buildRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén")
	}
	defer r.close()

	seeded, err := usecase.EnsureDefaultAdmin(r.users, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Name, cfg.Admin.Email)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar cuenta admin inicial")
	}
	if seeded {
		log.Warn().
			Str("username", cfg.Admin.Username).
			Msg("almacén vacío: cuenta admin inicial creada, cambie la contraseña por defecto")
	}

	caps := usecase.Capabilities{
		CanEdit:   cfg.Features.CanEditActivities,
		CanDelete: cfg.Features.CanDeleteActivities,
	}
	activityUC := usecase.NewActivityUseCase(r.activities, r.users, caps)
	followupUC := usecase.NewFollowupUseCase(r.txRunner, r.followups, r.activities)
	userUC := usecase.NewUserUseCase(r.users)
	settingsUC := usecase.NewSettingsUseCase(r.appConfig, r.users)
	dashboardUC := appanalytics.NewDashboardUseCase(r.analytics, followupUC)
	exportUC := export.NewExportUseCase(r.users, r.activities, r.followups, r.appConfig)

	sender := mail.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	reminderUC := notify.NewReminderUseCase(r.users, r.appConfig, followupUC, sender)

	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. Solo se monta si el
	// spec generado existe; un clon sin docs/ arranca igual, sin la UI.
	if swaggerSpec := "./docs/swagger.json"; fileExists(swaggerSpec) {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ActivityUC:  activityUC,
		FollowupUC:  followupUC,
		UserUC:      userUC,
		SettingsUC:  settingsUC,
		DashboardUC: dashboardUC,
		ExportUC:    exportUC,
		ReminderUC:  reminderUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// fileExists indica si path existe y es un archivo regular.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// buildRepos instancia la persistencia según STORE_DRIVER: "file" abre el
// almacén JSON plano, "postgres" abre un pool pgx.
func buildRepos(ctx context.Context, cfg *config.Config) (*repos, error) {
	if cfg.Store.Driver == "postgres" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &repos{
			users:      postgres.NewUserRepository(pool),
			activities: postgres.NewActivityRepository(pool),
			followups:  postgres.NewFollowupRepository(pool),
			appConfig:  postgres.NewAppConfigRepository(pool),
			analytics:  postgres.NewAnalyticsRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil
	}

	store, err := flatfile.Open(cfg.Store.DataDir)
	if err != nil {
		return nil, err
	}
	return &repos{
		users:      flatfile.NewUserRepository(store),
		activities: flatfile.NewActivityRepository(store),
		followups:  flatfile.NewFollowupRepository(store),
		appConfig:  flatfile.NewAppConfigRepository(store),
		analytics:  flatfile.NewAnalyticsRepository(store),
		txRunner:   flatfile.NewTxRunner(store),
		close:      func() {},
	}, nil
}
