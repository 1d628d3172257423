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
	"github.com/nubecafe/pos-core/internal/application/catalog"
	"github.com/nubecafe/pos-core/internal/application/coworking"
	"github.com/nubecafe/pos-core/internal/application/customers"
	"github.com/nubecafe/pos-core/internal/application/reports"
	"github.com/nubecafe/pos-core/internal/application/sales"
	"github.com/nubecafe/pos-core/internal/application/users"
	"github.com/nubecafe/pos-core/internal/domain/billing"
	infrapdf "github.com/nubecafe/pos-core/internal/infrastructure/pdf"
	"github.com/nubecafe/pos-core/internal/infrastructure/storage"
	httpRouter "github.com/nubecafe/pos-core/internal/interfaces/http"
	"github.com/nubecafe/pos-core/pkg/config"
	"github.com/nubecafe/pos-core/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.Close()
	log.Info().Str("backend", store.Backend()).Msg("almacenamiento listo")

	rules := billing.Rules{
		DayRate:      cfg.Billing.DayRate,
		DayRateAfter: cfg.Billing.DayRateAfter,
	}

	catalogUC := catalog.NewUseCase(store.Repos, log)
	salesUC := sales.NewUseCase(store.Repos, store.Tx, rules, log)
	coworkingUC := coworking.NewUseCase(store.Repos, store.Tx, salesUC, rules, cfg.Billing.DefaultHourlyRate, log)
	customersUC := customers.NewUseCase(store.Repos, log)
	reportsUC := reports.NewUseCase(store.Repos, log)
	usersUC := users.NewUseCase(store.Repos, cfg.JWT, log)
	cashCutPDF := infrapdf.NewCashCutGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.App.Name,
			"backend": store.Backend(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:   catalogUC,
		SalesUC:     salesUC,
		CoworkingUC: coworkingUC,
		CustomersUC: customersUC,
		ReportsUC:   reportsUC,
		UsersUC:     usersUC,
		CashCutPDF:  cashCutPDF,
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
