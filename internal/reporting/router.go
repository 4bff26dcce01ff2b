package reporting

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/peerbay/marketplace/internal/server/http/middleware"
)

// SetupRouter configures the reports gin router.
func SetupRouter(handler *Handler, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	reports := engine.Group("/api/reports")
	reports.GET("/top-sellers", handler.TopSellers)
	reports.GET("/top-buyers", handler.TopBuyers)
	reports.GET("/best-selling", handler.BestSelling)
	reports.GET("/categories", handler.Categories)
	reports.GET("/accounts/:account/orders/count", handler.OrdersCount)

	return engine
}
