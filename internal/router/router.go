package router

import (
	"time"

	"posadmin/internal/config"
	"posadmin/internal/handler"
	"posadmin/internal/middleware"
	"posadmin/internal/model"
	"posadmin/internal/repository"
	"posadmin/internal/service"
	"posadmin/internal/token"
	"posadmin/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, service.AuthService) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	window := time.Duration(cfg.RateLimitWindowSec) * time.Second

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.NewRateLimiter(cfg.RateLimitMax, window).Handle())

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	codec := token.NewCodec(cfg)

	// Audit dispatcher — injected into services that record events
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(userRepo, tokenRepo, codec, dispatcher, cfg)
	businessSvc := service.NewBusinessService(businessRepo, userRepo, dispatcher, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUserHandler(authSvc)
	businessH := handler.NewBusinessHandler(businessSvc)
	auditH := handler.NewAuditHandler(auditRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, cfg))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.NewLoginRateLimiter(cfg.LoginRateLimitMax, window).Handle(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/logout", authH.Logout)
	}

	// Protected routes
	authMW := middleware.Authenticate(codec)
	api := r.Group("/api", authMW)
	{
		api.GET("/auth/profile", middleware.RequireAnyRole(), authH.Profile)
		api.PUT("/auth/change-password", middleware.RequireAnyRole(), authH.ChangePassword)

		// User administration — reads for managers and above, writes for
		// owners and above; everything scoped to the caller's tenant.
		api.GET("/users", middleware.RequireManagerOrAbove(), usersH.List)
		users := api.Group("/users", middleware.RequireOwnerOrAbove())
		{
			users.POST("", usersH.Create)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}

		// Business administration — registry-wide operations are platform-only;
		// reads and updates of a single business allow its own owner too.
		api.POST("/businesses", middleware.RequireSuperAdmin(), businessH.Create)
		api.GET("/businesses", middleware.RequireSuperAdmin(), businessH.List)
		api.DELETE("/businesses/:id", middleware.RequireSuperAdmin(), businessH.Delete)
		api.PATCH("/businesses/:id/status", middleware.RequireSuperAdmin(), businessH.UpdateStatus)

		business := api.Group("/businesses", middleware.RequireRoleAtLeast(model.RoleOwner), middleware.RequireBusinessAccess("id"))
		{
			business.GET("/:id", businessH.Get)
			business.PUT("/:id", businessH.Update)
		}

		// Audit trail — owners see their own tenant, super_admin picks one.
		api.GET("/audit", middleware.RequireOwnerOrAbove(), auditH.List)
	}

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, authSvc
}
