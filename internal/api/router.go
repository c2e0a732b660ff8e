package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/auth"
	"github.com/ecotimes/news-api/internal/config"
	"github.com/ecotimes/news-api/internal/metrics"
	"github.com/ecotimes/news-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, tokens *auth.TokenService, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(&cfg.CORS))
	router.Use(metrics.Middleware())

	// Handlers
	authHandler := NewAuthHandler(tokens, log)
	articleHandler := NewArticleHandler(services, cfg, log)
	userHandler := NewUserHandler(services, log)
	publisherHandler := NewPublisherHandler(services, log)
	paymentHandler := NewPaymentHandler(services, log)

	// Guards
	authed := RequireAuth(tokens)
	admin := RequireAdmin(services.User)
	self := RequireSelf(services.User)

	// Health and metrics
	router.GET("/health", healthCheck)
	router.GET("/metrics", metrics.Handler())

	// Token issuance
	router.POST("/jwt", authHandler.IssueToken)

	// Articles
	router.POST("/article", authed, articleHandler.Create)
	router.GET("/article", articleHandler.List)
	router.GET("/article/:id", OptionalAuth(tokens), articleHandler.Get)
	router.PUT("/article/:id", authed, articleHandler.Update)
	router.DELETE("/article/:id", authed, admin, articleHandler.Delete)
	router.PATCH("/article/approve/:id", authed, admin, articleHandler.Approve)
	router.PATCH("/article/premium/:id", authed, admin, articleHandler.MakePremium)
	router.PATCH("/article/decline/:id", authed, admin, articleHandler.Decline)
	router.PATCH("/article/view/:id", articleHandler.RecordView)
	router.GET("/article-trending", articleHandler.Trending)
	router.GET("/all-articles", articleHandler.List)
	router.GET("/my-article/:email", authed, self, articleHandler.MyArticles)

	// Users
	router.POST("/users", userHandler.Register)
	router.GET("/users", authed, admin, userHandler.List)
	router.GET("/user/:email", authed, self, userHandler.Get)
	router.DELETE("/user/:id", authed, admin, userHandler.Delete)
	router.PATCH("/users/admin/:id", authed, admin, userHandler.MakeAdmin)
	router.PATCH("/users/premium/:email", authed, self, userHandler.SetPremium)
	router.PATCH("/update-profile/:email", authed, self, userHandler.UpdateProfile)

	// Publishers
	router.POST("/publisher", authed, admin, publisherHandler.Create)
	router.GET("/publisher", publisherHandler.List)

	// Payments
	router.POST("/create-payment-intent", paymentHandler.CreateIntent)

	// Analytics
	router.GET("/publisher-stats", articleHandler.PublisherStats)
	router.GET("/tags-stats", articleHandler.TagStats)

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "news-api",
	})
}

// contextWithTimeout bounds store queries server-side
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
