package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/apperr"
	"github.com/ecotimes/news-api/internal/auth"
	"github.com/ecotimes/news-api/internal/config"
	"github.com/ecotimes/news-api/internal/service"
)

const claimsKey = "auth_claims"

// ClaimsFrom returns the verified identity attached by RequireAuth
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth rejects requests without a valid bearer token and
// attaches the verified identity to the request context
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondError(c, apperr.Unauthorized("missing bearer token"))
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid bearer token is
// present but lets anonymous requests through. Used on public routes
// whose payload is gated for premium content.
func OptionalAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := tokens.Verify(token); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin composes with RequireAuth and cross-checks the user
// store: authenticated callers without the admin role are rejected.
func RequireAdmin(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			respondError(c, apperr.Unauthorized("missing bearer token"))
			return
		}

		isAdmin, err := users.IsAdmin(c.Request.Context(), claims.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		if !isAdmin {
			respondError(c, apperr.Forbidden("admin role required"))
			return
		}
		c.Next()
	}
}

// RequireSelf composes with RequireAuth and rejects callers whose
// authenticated email does not match the :email path parameter.
// Admins bypass the ownership check.
func RequireSelf(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			respondError(c, apperr.Unauthorized("missing bearer token"))
			return
		}

		email := c.Param("email")
		if email == claims.Email {
			c.Next()
			return
		}

		isAdmin, err := users.IsAdmin(c.Request.Context(), claims.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		if !isAdmin {
			respondError(c, apperr.Forbidden("not your resource"))
			return
		}
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{"kind": "internal", "message": "internal server error"},
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware allows the configured browser origins only
func corsMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
