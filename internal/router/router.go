package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "tabsplit/docs"
	"tabsplit/internal/config"
	"tabsplit/internal/handler"
	"tabsplit/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	log *zap.SugaredLogger,
	receiptH *handler.ReceiptHandler,
	accountH *handler.AccountHandler,
	turnH *handler.TurnHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitMB))

	// Health checks and operational endpoints
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Pipeline routes. The path spelling is load-bearing: existing clients
	// were built against /reciepts.
	reciepts := r.Group("/reciepts")
	reciepts.POST("/parse", receiptH.Parse)
	reciepts.POST("/split", receiptH.Split)

	// Audit trail - bearer token required when a JWT secret is configured
	auth := middleware.Auth(&cfg.JWT)
	turns := reciepts.Group("/turns")
	turns.Use(auth)
	turns.GET("", turnH.List)
	turns.GET("/export", turnH.Export)
	turns.GET("/:id", turnH.GetByID)

	// Broker account routes
	account := r.Group("/account")
	account.Use(auth)
	account.GET("/balance", accountH.Balance)
	r.GET("/services", auth, accountH.Services)

	return r
}
