package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/myshop-pos/internal/application/auth"
	"github.com/jhoicas/myshop-pos/internal/application/sales"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CategoryUC     *usecase.CategoryUseCase
	BrandUC        *usecase.BrandUseCase
	ProductUC      *usecase.ProductUseCase
	SerialItemUC   *usecase.SerialItemUseCase
	WarrantyUC     *usecase.WarrantyUseCase
	ExchangeRateUC *usecase.ExchangeRateUseCase
	SaleUC         *sales.SaleUseCase
	ReportUC       *usecase.ReportUseCase
	MigrationUC    *usecase.MigrationUseCase

	// Verifier resuelve el Bearer token; si es nil se usa AuthUC.
	Verifier TokenVerifier
	// MigrateRequireAuth pone /api/migrate/* detrás de la política de admin.
	MigrateRequireAuth bool
	// LoginRateLimit intentos de login por IP y minuto (0 = 10).
	LoginRateLimit int
	// HealthCheck verifica dependencias en /health (p. ej. pool.Ping).
	HealthCheck func(ctx context.Context) error
}

// policy quién puede llamar a una ruta.
type policy struct {
	public bool
	roles  []string // vacío con public=false: cualquier usuario autenticado
}

var (
	public        = policy{public: true}
	authenticated = policy{}
)

func roles(r ...string) policy { return policy{roles: r} }

var (
	adminOnly      = roles(entity.RoleAdmin)
	adminOrManager = roles(entity.RoleAdmin, entity.RoleManager)
)

// route entrada de la tabla de rutas. middleware corre antes de la autenticación.
type route struct {
	method     string
	path       string
	policy     policy
	handler    fiber.Handler
	middleware []fiber.Handler
}

// NewApp construye la aplicación Fiber completa: middlewares comunes, /health, /metrics y la API.
// extra se monta antes de las rutas (p. ej. la UI de Swagger).
func NewApp(name string, deps RouterDeps, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(metrics.Middleware())
	for _, h := range extra {
		app.Use(h)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(c.UserContext()); err != nil {
				return fail(c, fiber.StatusServiceUnavailable, "UNHEALTHY", err.Error())
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	app.Get("/metrics", metrics.Handler())

	Router(app, deps)
	return app
}

// Router registra las rutas de la API según la tabla de políticas.
func Router(app *fiber.App, deps RouterDeps) {
	verifier := deps.Verifier
	if verifier == nil {
		verifier = deps.AuthUC
	}
	requireAuth := AuthMiddleware(verifier)

	api := app.Group("/api")
	for _, r := range routes(deps) {
		handlers := append([]fiber.Handler{}, r.middleware...)
		if !r.policy.public {
			handlers = append(handlers, requireAuth)
			if len(r.policy.roles) > 0 {
				handlers = append(handlers, RequireRole(r.policy.roles...))
			}
		}
		handlers = append(handlers, r.handler)
		api.Add(r.method, r.path, handlers...)
	}
}

func routes(deps RouterDeps) []route {
	authH := NewAuthHandler(deps.AuthUC)
	userH := NewUserHandler(deps.UserUC)
	categoryH := NewCategoryHandler(deps.CategoryUC)
	brandH := NewBrandHandler(deps.BrandUC)
	productH := NewProductHandler(deps.ProductUC)
	publicH := NewPublicHandler(deps.CategoryUC, deps.BrandUC, deps.ProductUC, deps.WarrantyUC)
	serialH := NewSerialItemHandler(deps.SerialItemUC)
	rateH := NewExchangeRateHandler(deps.ExchangeRateUC)
	saleH := NewSaleHandler(deps.SaleUC)
	reportH := NewReportHandler(deps.ReportUC, deps.ProductUC)
	migrateH := NewMigrateHandler(deps.MigrationUC)

	migratePolicy := public
	if deps.MigrateRequireAuth {
		migratePolicy = adminOnly
	}
	loginLimit := deps.LoginRateLimit
	if loginLimit <= 0 {
		loginLimit = 10
	}
	loginLimiter := limiter.New(limiter.Config{
		Max:        loginLimit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return fail(c, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many login attempts, try again later")
		},
	})

	return []route{
		// Auth
		{method: fiber.MethodPost, path: "/auth/login", policy: public, handler: authH.Login, middleware: []fiber.Handler{loginLimiter}},
		{method: fiber.MethodGet, path: "/auth/profile", policy: authenticated, handler: authH.Profile},
		{method: fiber.MethodPatch, path: "/auth/profile", policy: authenticated, handler: authH.UpdateProfile},
		{method: fiber.MethodGet, path: "/init", policy: public, handler: authH.Init},

		// Users
		{method: fiber.MethodGet, path: "/users", policy: adminOnly, handler: userH.List},
		{method: fiber.MethodPost, path: "/users", policy: adminOnly, handler: userH.Create},
		{method: fiber.MethodPut, path: "/users/:id", policy: adminOnly, handler: userH.Update},
		{method: fiber.MethodDelete, path: "/users/:id", policy: adminOnly, handler: userH.Deactivate},

		// Categories
		{method: fiber.MethodGet, path: "/categories", policy: authenticated, handler: categoryH.List},
		{method: fiber.MethodGet, path: "/categories/:id", policy: authenticated, handler: categoryH.GetByID},
		{method: fiber.MethodPost, path: "/categories", policy: adminOrManager, handler: categoryH.Create},
		{method: fiber.MethodPut, path: "/categories/:id", policy: adminOrManager, handler: categoryH.Update},
		{method: fiber.MethodDelete, path: "/categories/:id", policy: adminOnly, handler: categoryH.Delete},

		// Brands
		{method: fiber.MethodGet, path: "/brands", policy: authenticated, handler: brandH.List},
		{method: fiber.MethodPost, path: "/brands", policy: adminOrManager, handler: brandH.Create},
		{method: fiber.MethodPut, path: "/brands/:id", policy: adminOrManager, handler: brandH.Update},
		{method: fiber.MethodDelete, path: "/brands/:id", policy: adminOnly, handler: brandH.Delete},

		// Products (low-stock antes de :id)
		{method: fiber.MethodGet, path: "/products", policy: authenticated, handler: productH.List},
		{method: fiber.MethodGet, path: "/products/low-stock", policy: authenticated, handler: productH.LowStock},
		{method: fiber.MethodGet, path: "/products/:id", policy: authenticated, handler: productH.GetByID},
		{method: fiber.MethodPost, path: "/products", policy: adminOrManager, handler: productH.Create},
		{method: fiber.MethodPut, path: "/products/:id", policy: adminOrManager, handler: productH.Update},
		{method: fiber.MethodDelete, path: "/products/:id", policy: adminOnly, handler: productH.Delete},

		// Public
		{method: fiber.MethodGet, path: "/public/categories", policy: public, handler: publicH.Categories},
		{method: fiber.MethodGet, path: "/public/brands", policy: public, handler: publicH.Brands},
		{method: fiber.MethodGet, path: "/public/products", policy: public, handler: publicH.Products},
		{method: fiber.MethodGet, path: "/public/products/:id", policy: public, handler: publicH.Product},
		{method: fiber.MethodGet, path: "/public/warranty/check/:serial", policy: public, handler: publicH.WarrantyCheck},

		// Serial items
		{method: fiber.MethodGet, path: "/serial-items", policy: authenticated, handler: serialH.List},
		{method: fiber.MethodPost, path: "/serial-items", policy: adminOrManager, handler: serialH.Create},
		{method: fiber.MethodPost, path: "/serial-items/bulk", policy: adminOrManager, handler: serialH.BulkCreate},
		{method: fiber.MethodGet, path: "/serial-items/imei/:imei", policy: authenticated, handler: serialH.GetByIMEI},
		{method: fiber.MethodPatch, path: "/serial-items/:id", policy: adminOrManager, handler: serialH.Update},

		// Settings
		{method: fiber.MethodGet, path: "/settings/exchange-rate", policy: authenticated, handler: rateH.List},
		{method: fiber.MethodPost, path: "/settings/exchange-rate", policy: adminOrManager, handler: rateH.Set},
		{method: fiber.MethodGet, path: "/settings/exchange-rate/today", policy: authenticated, handler: rateH.Today},
		{method: fiber.MethodGet, path: "/settings/exchange-rate/history", policy: adminOrManager, handler: rateH.History},

		// Sales
		{method: fiber.MethodPost, path: "/sales", policy: authenticated, handler: saleH.Create},
		{method: fiber.MethodGet, path: "/sales", policy: authenticated, handler: saleH.List},
		{method: fiber.MethodGet, path: "/sales/:id", policy: authenticated, handler: saleH.GetByID},
		{method: fiber.MethodGet, path: "/sales/:id/receipt", policy: authenticated, handler: saleH.Receipt},
		{method: fiber.MethodPatch, path: "/sales/:id/notes", policy: adminOrManager, handler: saleH.SetNotes},
		{method: fiber.MethodPost, path: "/sales/:id/void", policy: adminOnly, handler: saleH.Void},

		// Reports
		{method: fiber.MethodGet, path: "/reports/performance", policy: adminOrManager, handler: reportH.Performance},
		{method: fiber.MethodGet, path: "/reports/performance/export", policy: adminOrManager, handler: reportH.ExportPerformance},
		{method: fiber.MethodGet, path: "/reports/daily", policy: adminOrManager, handler: reportH.Daily},
		{method: fiber.MethodGet, path: "/reports/profit", policy: adminOrManager, handler: reportH.Profit},
		{method: fiber.MethodGet, path: "/reports/top-selling", policy: adminOrManager, handler: reportH.TopSelling},
		{method: fiber.MethodGet, path: "/reports/low-stock", policy: adminOrManager, handler: reportH.LowStock},

		// Migrate
		{method: fiber.MethodGet, path: "/migrate", policy: migratePolicy, handler: migrateH.List},
		{method: fiber.MethodGet, path: "/migrate/:name", policy: migratePolicy, handler: migrateH.Describe},
		{method: fiber.MethodPost, path: "/migrate/:name", policy: migratePolicy, handler: migrateH.Apply},
	}
}
