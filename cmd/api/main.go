package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/myshop-pos/internal/application/auth"
	"github.com/jhoicas/myshop-pos/internal/application/sales"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
	"github.com/jhoicas/myshop-pos/internal/infrastructure/excel"
	"github.com/jhoicas/myshop-pos/internal/infrastructure/jobs"
	"github.com/jhoicas/myshop-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/myshop-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/myshop-pos/internal/interfaces/http"
	"github.com/jhoicas/myshop-pos/pkg/config"
	"github.com/jhoicas/myshop-pos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.Migrate.OnStart {
		version, err := postgres.RunMigrations(pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Uint("version", version).Msg("esquema actualizado")
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	serialRepo := postgres.NewSerialItemRepository(pool)
	warrantyRepo := postgres.NewWarrantyRepository(pool)
	rateRepo := postgres.NewExchangeRateRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	schemaRepo := postgres.NewSchemaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	warrantyUC := usecase.NewWarrantyUseCase(warrantyRepo)
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, warrantyRepo, rateRepo, userRepo,
		pdf.NewReceiptGenerator(),
		sales.Config{
			DefaultExchangeRate: cfg.POS.DefaultExchangeRate,
			WarrantyMonths:      cfg.POS.WarrantyMonths,
			LargeChangeUSD:      cfg.POS.LargeChangeUSD,
			ShopName:            cfg.POS.ShopName,
		},
	)

	// La UI de Swagger solo se monta si el documento generado existe.
	var extra []fiber.Handler
	if _, err := os.Stat(swaggerFile); err == nil {
		extra = append(extra, swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "MyShop POS API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: documento no encontrado")
	}

	app := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		AuthUC:             authUC,
		UserUC:             usecase.NewUserUseCase(userRepo),
		CategoryUC:         usecase.NewCategoryUseCase(categoryRepo),
		BrandUC:            usecase.NewBrandUseCase(brandRepo),
		ProductUC:          usecase.NewProductUseCase(productRepo, categoryRepo, brandRepo, serialRepo),
		SerialItemUC:       usecase.NewSerialItemUseCase(serialRepo, productRepo),
		WarrantyUC:         warrantyUC,
		ExchangeRateUC:     usecase.NewExchangeRateUseCase(rateRepo, cfg.POS.DefaultExchangeRate),
		SaleUC:             saleUC,
		ReportUC:           usecase.NewReportUseCase(reportRepo, excel.NewPerformanceExporter()),
		MigrationUC:        usecase.NewMigrationUseCase(schemaRepo),
		MigrateRequireAuth: cfg.Migrate.RequireAuth,
		HealthCheck:        pool.Ping,
	}, extra...)

	scheduler := jobs.NewScheduler(log)
	if err := scheduler.AddWarrantyExpiry(cfg.Jobs.WarrantyExpiryCron, warrantyUC); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Jobs.WarrantyExpiryCron).Msg("programar expiración de garantías")
	}
	scheduler.Start()

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

	scheduler.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
