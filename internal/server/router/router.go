package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dealyield/internal/server/handlers"
	"github.com/mamadbah2/dealyield/internal/server/middleware"
	"github.com/mamadbah2/dealyield/pkg/clients/auth"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.AnalysisHandler, sessions auth.Client, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api", middleware.Session(sessions, logger))
	api.POST("/analyses", handler.Create)
	api.POST("/analyses/preview", handler.Preview)
	api.GET("/analyses", handler.List)
	api.GET("/analyses/:id", handler.Get)
	api.DELETE("/analyses/:id", handler.Delete)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
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
			zap.String("client_ip", c.ClientIP()))
	}
}
