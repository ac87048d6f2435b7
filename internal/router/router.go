package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mishellCastillorb/Punto-Venta/internal/config"
	"github.com/mishellCastillorb/Punto-Venta/internal/handler"
	"github.com/mishellCastillorb/Punto-Venta/internal/infra"
	"github.com/mishellCastillorb/Punto-Venta/internal/middleware"
	"github.com/mishellCastillorb/Punto-Venta/internal/model"
	"github.com/mishellCastillorb/Punto-Venta/internal/repository"
	"github.com/mishellCastillorb/Punto-Venta/internal/service"
	"github.com/mishellCastillorb/Punto-Venta/internal/ticket"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	ticketStore := ticket.NewRedisStore(rdb, time.Duration(cfg.TicketTTLHours)*time.Hour)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	clientRepo := repository.NewClientRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	registerRepo := repository.NewCashRegisterRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	ticketSvc := service.NewTicketService(ticketStore, productRepo, clientRepo, productRepo)
	checkoutSvc := service.NewCheckoutService(ticketStore, productRepo, saleRepo, productRepo)
	registerSvc := service.NewCashRegisterService(registerRepo, saleRepo, userRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	posH := handler.NewPOSHandler(ticketSvc, checkoutSvc)
	salesH := handler.NewSalesHandler(checkoutSvc, mailer, cfg)
	registerH := handler.NewCashRegisterHandler(registerSvc)
	productsH := handler.NewProductsHandler(productRepo)
	clientsH := handler.NewClientsHandler(clientRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleSeller, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		pos := v1.Group("/pos", anyRole)
		{
			pos.GET("/ticket", posH.Current)
			pos.PATCH("/ticket", posH.UpdateTicket)
			pos.POST("/ticket/items/:id", posH.AddItem)
			pos.POST("/ticket/items/:id/decrement", posH.DecrementItem)
			pos.DELETE("/ticket/items/:id", posH.RemoveItem)
			pos.PUT("/ticket/client/quick", posH.SetQuickClient)
			pos.PUT("/ticket/client/:id", posH.SelectClient)
			pos.DELETE("/ticket/client", posH.ClearClient)
			pos.POST("/checkout", posH.Checkout)
		}

		sales := v1.Group("/sales", anyRole)
		{
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.Get)
			sales.GET("/:id/receipt", salesH.Receipt)
			sales.POST("/:id/email", salesH.EmailReceipt)
		}
		// Cancellation is destructive for reporting, admin only
		v1.POST("/sales/:id/cancel", adminOnly, salesH.Cancel)

		register := v1.Group("/cash-register", anyRole)
		{
			register.POST("/open", registerH.Open)
			register.GET("/status", registerH.Status)
			register.POST("/close", registerH.Close)
		}

		v1.GET("/products/search", anyRole, productsH.Search)
		v1.GET("/clients/search", anyRole, clientsH.Search)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
