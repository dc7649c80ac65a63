package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Account-api/internal/application/auth"
	"github.com/jhoicas/Account-api/internal/application/security"
	"github.com/jhoicas/Account-api/internal/application/usecase"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/internal/infrastructure/authz"
	"github.com/jhoicas/Account-api/internal/infrastructure/crypto"
	"github.com/jhoicas/Account-api/internal/infrastructure/memory"
	"github.com/jhoicas/Account-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Account-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Account-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Account-api/internal/interfaces/http"
	"github.com/jhoicas/Account-api/pkg/config"
	"github.com/jhoicas/Account-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	tx, stores, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	catalog := security.NewRoleCatalog(log)
	if err := catalog.EnsureSeeded(ctx, stores.Roles); err != nil {
		log.Fatal().Err(err).Msg("sembrar catálogo de roles")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	securityMetrics := metrics.NewSecurityMetrics(registry)

	policy, err := authz.NewPolicy()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar política de acceso")
	}

	hasher := crypto.NewBcryptHasher(cfg.Security.BcryptCost)
	tracker := security.NewLockoutTracker(log)
	audit := security.NewAuditLog(log)
	gateway := security.NewAuthenticationGateway(tx, stores, hasher, tracker, audit, securityMetrics, log)

	authUC := auth.NewAuthUseCase(tx, hasher, catalog, gateway, audit, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	adminUC := usecase.NewAdminUseCase(tx, stores, security.NewAccessControlEngine(catalog), tracker, audit, log)

	// PDF: informe del log de eventos de seguridad
	reportGenerator := infrapdf.NewAuditReportGenerator(cfg.App.Name)
	eventsUC := usecase.NewSecurityEventUseCase(stores.Events, audit, reportGenerator, securityMetrics, log)

	httpLog := log.Component("http")
	app := fiber.New(httpRouter.NewConfig(cfg.App.Name, func(c *fiber.Ctx, err error) {
		httpLog.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	}))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Account API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		AdminUC:   adminUC,
		EventsUC:  eventsUC,
		Verifier:  gateway,
		Policy:    policy,
		Validator: httpRouter.NewValidator(),
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
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

// openStore abre el almacenamiento elegido por STORE_DRIVER. El store en memoria
// pierde todo al reiniciar; sólo sirve para desarrollo y demos.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (security.TxRunner, repository.Stores, func()) {
	if cfg.App.StoreDriver == "memory" {
		log.Warn().Msg("usando almacenamiento en memoria: los datos no persisten")
		store := memory.New()
		return store, store.Stores(), func() {}
	}

	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return postgres.NewTxRunner(pool, log), postgres.NewStores(pool), pool.Close
}
