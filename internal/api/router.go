package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mercato/sales-api/internal/api/handler"
	"github.com/mercato/sales-api/internal/api/middleware"
	"github.com/mercato/sales-api/internal/auth"
	"github.com/mercato/sales-api/internal/core/domain"
	"github.com/mercato/sales-api/internal/core/service"
	"github.com/mercato/sales-api/internal/infrastructure/config"
	mongodb "github.com/mercato/sales-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mercato/sales-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered. Every
// protected route declares its permitted roles here, at construction time;
// the RBAC middleware consults nothing else.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sales_api"))

	// --- Dependencies ---
	codec := auth.NewCodec(auth.Config{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	})

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	saleRepo := mongodb.NewSaleRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Limiter.MaxAttempts, cfg.Limiter.Window)

	authService := service.NewAuthService(userRepo, codec, limiter, log)
	userService := service.NewUserService(userRepo, log)
	productService := service.NewProductService(productRepo, log)
	saleService := service.NewSaleService(saleRepo, productRepo, log)

	cookieCfg := handler.CookieConfig{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	}

	authHandler := handler.NewAuthHandler(authService, cookieCfg)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	saleHandler := handler.NewSaleHandler(saleService)

	authn := middleware.Auth(codec)
	refreshAuthn := middleware.RefreshAuth(codec)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authn)
	e.POST("/auth/refresh", authHandler.Refresh, refreshAuthn)

	// --- User routes ---
	e.POST("/users", userHandler.Create)
	e.GET("/users", userHandler.List, authn, middleware.RequireRoles(domain.RoleAdmin))
	e.GET("/users/:id", userHandler.Get, authn, middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator))
	e.PUT("/users/:id", userHandler.Update, authn, middleware.RequireRoles(domain.RoleAdmin))
	e.DELETE("/users/:id", userHandler.Delete, authn, middleware.RequireRoles(domain.RoleAdmin))

	// --- Product routes ---
	anyRole := middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator, domain.RoleUser)
	e.POST("/products", productHandler.Create, authn, middleware.RequireRoles(domain.RoleAdmin))
	e.GET("/products", productHandler.List, authn, anyRole)
	e.GET("/products/:id", productHandler.Get, authn, anyRole)
	e.PUT("/products/:id", productHandler.Update, authn, middleware.RequireRoles(domain.RoleAdmin))
	e.DELETE("/products/:id", productHandler.Delete, authn, middleware.RequireRoles(domain.RoleAdmin))

	// --- Sale routes ---
	e.POST("/sales", saleHandler.Create, authn, anyRole)
	e.GET("/sales", saleHandler.List, authn, middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator))
	e.GET("/sales/seller/:sellerId", saleHandler.ListBySeller, authn, anyRole)
	e.GET("/sales/:id", saleHandler.Get, authn, middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator))
	e.PATCH("/sales/:id/status", saleHandler.UpdateStatus, authn, middleware.RequireRoles(domain.RoleAdmin, domain.RoleModerator))
	e.DELETE("/sales/:id", saleHandler.Delete, authn, middleware.RequireRoles(domain.RoleAdmin))

	// --- Ops endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
