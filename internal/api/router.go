package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gestock/supplier-registry/docs"
	"github.com/gestock/supplier-registry/internal/api/handler"
	"github.com/gestock/supplier-registry/internal/api/middleware"
	"github.com/gestock/supplier-registry/internal/core/domain"
	"github.com/gestock/supplier-registry/internal/core/ports"
	"github.com/gestock/supplier-registry/internal/core/service"
	mongostore "github.com/gestock/supplier-registry/internal/infrastructure/db/mongo"
	redisstore "github.com/gestock/supplier-registry/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the HTTP layer needs beyond its
// infrastructure handles.
type RouterConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("supplier_registry"))

	// --- Dependencies ---
	authRepo := mongostore.NewAuthRepository(db)
	supplierRepo := mongostore.NewSupplierRepository(db)

	var revoker ports.TokenRevoker
	if rdb != nil {
		revoker = redisstore.NewTokenDenylist(rdb)
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(authRepo, tokens, revoker, log)
	supplierService := service.NewSupplierService(supplierRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authRequired := middleware.Auth(tokens, authRepo, revoker)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/check-username", authHandler.CheckUsername)
	auth.GET("/check-email", authHandler.CheckEmail)
	auth.POST("/logout", authHandler.Logout, authRequired)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- Supplier routes (all behind auth) ---
	suppliers := e.Group("/api/suppliers", authRequired)
	suppliers.POST("", supplierHandler.Create)
	suppliers.GET("", supplierHandler.List)
	suppliers.GET("/active", supplierHandler.ListActive)
	suppliers.GET("/search", supplierHandler.Search)
	suppliers.GET("/search/global", supplierHandler.GlobalSearch)
	suppliers.GET("/:id", supplierHandler.Get)
	suppliers.PUT("/:id", supplierHandler.Update)
	suppliers.DELETE("/:id", supplierHandler.Delete, adminOnly)
	suppliers.PATCH("/:id/toggle-status", supplierHandler.ToggleStatus)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
