package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/peerbay/marketplace/internal/server/http/handlers"
	"github.com/peerbay/marketplace/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	roleHandler := handlers.NewRoleHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	reputationHandler := handlers.NewReputationHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	market := api.Group("/market")
	market.GET("/role/:account", roleHandler.RoleOf)
	market.GET("/products", catalogHandler.List)
	market.GET("/products/:id/sales", catalogHandler.Sales)
	market.GET("/orders/:id/state", orderHandler.State)
	market.GET("/orders/:id/ratings", reputationHandler.OrderRatings)
	market.GET("/reputation", reputationHandler.ListReputation)
	market.GET("/reputation/:account", reputationHandler.Reputation)
	market.GET("/categories/:category", reputationHandler.CategoryStats)
	market.GET("/accounts/:account/orders/count", orderHandler.Count)

	marketAuth := market.Group("")
	marketAuth.Use(middleware.AuthRequired(facade))
	marketAuth.POST("/role", roleHandler.Register)
	marketAuth.PUT("/role", roleHandler.Update)
	marketAuth.POST("/products", catalogHandler.Publish)
	marketAuth.GET("/my/products", catalogHandler.Mine)
	marketAuth.POST("/orders", orderHandler.Create)
	marketAuth.POST("/orders/:id/ship", orderHandler.Ship)
	marketAuth.POST("/orders/:id/receive", orderHandler.Receive)
	marketAuth.POST("/orders/:id/cancel/request", orderHandler.RequestCancel)
	marketAuth.POST("/orders/:id/cancel/accept", orderHandler.AcceptCancel)
	marketAuth.POST("/orders/:id/rate-seller", reputationHandler.RateSeller)
	marketAuth.POST("/orders/:id/rate-buyer", reputationHandler.RateBuyer)

	return engine
}
