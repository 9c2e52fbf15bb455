package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/tenancy-backend/internal/config"
	"github.com/yungbote/tenancy-backend/internal/handlers"
	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/middleware"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type RouterConfig struct {
	Log                 *logger.Logger
	Config              *config.Config
	AuthMiddleware      *middleware.AuthMiddleware
	HealthcheckHandler  *handlers.HealthcheckHandler
	UserHandler         *handlers.UserHandler
	AgreementHandler    *handlers.AgreementHandler
	ApartmentHandler    *handlers.ApartmentHandler
	AnnouncementHandler *handlers.AnnouncementHandler
	CouponHandler       *handlers.CouponHandler
	PaymentHandler      *handlers.PaymentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(otelgin.Middleware("tenancy-backend"))
	router.Use(middleware.CORS(cfg.Config.AllowOrigins))

	auth := cfg.AuthMiddleware

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	router.GET("/agreements/:id", cfg.AgreementHandler.GetByID)
	router.GET("/apartments", cfg.ApartmentHandler.List)
	router.GET("/apartments/stats", cfg.ApartmentHandler.Stats)
	router.GET("/announcements", cfg.AnnouncementHandler.List)
	if cfg.Config.MediaRoot != "" {
		router.Static("/media", cfg.Config.MediaRoot)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(auth.RequireAuth())
	// User
	protected.POST("/users", cfg.UserHandler.EnsureUser)
	protected.GET("/users/me", cfg.UserHandler.GetMe)
	protected.PATCH("/users/:email/role", auth.Require(types.RoleAdmin), cfg.UserHandler.UpdateRole)
	// Agreements
	protected.GET("/agreements", cfg.AgreementHandler.List)
	protected.POST("/agreements", auth.Require(types.RoleUser), cfg.AgreementHandler.Submit)
	protected.PATCH("/agreements/:id", auth.Require(types.RoleAdmin), cfg.AgreementHandler.Decide)
	// Apartments
	protected.POST("/apartments", auth.Require(types.RoleAdmin), cfg.ApartmentHandler.Create)
	protected.PUT("/apartments/:id", auth.Require(types.RoleAdmin), cfg.ApartmentHandler.Update)
	protected.DELETE("/apartments/:id", auth.Require(types.RoleAdmin), cfg.ApartmentHandler.Delete)
	// Announcements
	protected.POST("/announcements", auth.Require(types.RoleAdmin), cfg.AnnouncementHandler.Create)
	protected.DELETE("/announcements/:id", auth.Require(types.RoleAdmin), cfg.AnnouncementHandler.Delete)
	// Coupons
	protected.GET("/coupons", cfg.CouponHandler.List)
	protected.POST("/coupons", auth.Require(types.RoleAdmin), cfg.CouponHandler.Create)
	protected.DELETE("/coupons/:id", auth.Require(types.RoleAdmin), cfg.CouponHandler.Delete)
	// Payments
	protected.POST("/payments/intent", auth.Require(types.RoleMember), cfg.PaymentHandler.CreateIntent)
	protected.GET("/payments", cfg.PaymentHandler.List)

	return router
}
