package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", handler.readyz)

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.POST("/pricing/quotes", handler.createQuote)
		protected.PUT("/settings/pricing", handler.updatePricingSettings)

		protected.POST("/compliance/validate", handler.validateCompliance)
		protected.POST("/compliance/alternatives", handler.complianceAlternatives)

		protected.POST("/invoices/lines", handler.buildInvoiceLines)

		protected.GET("/fuel-prices", handler.getFuelPrice)
		protected.GET("/fuel-prices/history", handler.fuelPriceHistory)
		protected.POST("/fuel-prices", handler.recordFuelPrice)
	}

	return router
}
