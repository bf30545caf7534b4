// Package router wires the Gin engine: middleware, health and metrics
// endpoints, and the /api resource routes.
package router

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/server/handlers"
)

// Handlers groups the HTTP adapters the router mounts.
type Handlers struct {
	Tanks     *handlers.TankHandler
	Batches   *handlers.BatchHandler
	Foods     *handlers.StockHandler
	Medicines *handlers.StockHandler
	Feedings  *handlers.FeedingHandler
	Health    *handlers.HealthLogHandler
	Harvests  *handlers.HarvestHandler
	Finance   *handlers.FinanceHandler
	Reports   *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares. All /api
// routes sit behind the bearer token gate.
func New(h Handlers, apiToken string, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", bearerTokenMiddleware(apiToken))

	tanks := api.Group("/tanks")
	{
		tanks.POST("", h.Tanks.Create)
		tanks.GET("", h.Tanks.List)
		tanks.GET("/:id", h.Tanks.Get)
		tanks.PUT("/:id", h.Tanks.Update)
		tanks.DELETE("/:id", h.Tanks.Delete)
		tanks.GET("/:id/feedings", h.Tanks.FeedingHistory)
		tanks.GET("/:id/health-logs", h.Tanks.HealthHistory)
		tanks.GET("/:id/harvests", h.Tanks.HarvestHistory)
	}

	batches := api.Group("/seed-batches")
	{
		batches.POST("", h.Batches.Create)
		batches.GET("", h.Batches.List)
		batches.GET("/:id", h.Batches.Get)
		batches.PUT("/:id", h.Batches.Update)
		batches.DELETE("/:id", h.Batches.Delete)
	}

	mountStock(api.Group("/foods"), h.Foods)
	mountStock(api.Group("/medicines"), h.Medicines)

	feedings := api.Group("/feedings")
	{
		feedings.POST("", h.Feedings.Create)
		feedings.GET("", h.Feedings.List)
		feedings.DELETE("/:id", h.Feedings.Delete)
	}

	healthLogs := api.Group("/health-logs")
	{
		healthLogs.POST("", h.Health.Create)
		healthLogs.GET("", h.Health.List)
		healthLogs.GET("/:id", h.Health.Get)
		healthLogs.PUT("/:id", h.Health.Update)
		healthLogs.DELETE("/:id", h.Health.Delete)
	}

	harvests := api.Group("/harvests")
	{
		harvests.POST("", h.Harvests.Create)
		harvests.GET("", h.Harvests.List)
		harvests.GET("/:id", h.Harvests.Get)
		harvests.PUT("/:id", h.Harvests.Update)
		harvests.DELETE("/:id", h.Harvests.Delete)
	}

	incomes := api.Group("/incomes")
	{
		incomes.POST("", h.Finance.CreateIncome)
		incomes.GET("", h.Finance.ListIncomes)
		incomes.GET("/:id", h.Finance.GetIncome)
		incomes.PUT("/:id", h.Finance.UpdateIncome)
		incomes.DELETE("/:id", h.Finance.DeleteIncome)
	}

	expenses := api.Group("/expenses")
	{
		expenses.POST("", h.Finance.CreateExpense)
		expenses.GET("", h.Finance.ListExpenses)
		expenses.GET("/:id", h.Finance.GetExpense)
		expenses.PUT("/:id", h.Finance.UpdateExpense)
		expenses.DELETE("/:id", h.Finance.DeleteExpense)
	}

	readings := api.Group("/environment")
	{
		readings.POST("", h.Finance.CreateReading)
		readings.GET("", h.Finance.ListReadings)
		readings.GET("/:id", h.Finance.GetReading)
		readings.PUT("/:id", h.Finance.UpdateReading)
		readings.DELETE("/:id", h.Finance.DeleteReading)
	}

	api.POST("/reports/daily", h.Reports.GenerateDaily)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func mountStock(g *gin.RouterGroup, h *handlers.StockHandler) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/low-stock", h.LowStock)
	g.GET("/expiring", h.Expiring)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/reserve", h.Reserve)
	g.POST("/:id/release", h.Release)
}

func bearerTokenMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}
		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("client_ip", c.ClientIP()))
	}
}
