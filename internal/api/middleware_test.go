package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotimes/news-api/internal/auth"
	"github.com/ecotimes/news-api/internal/config"
	"github.com/ecotimes/news-api/internal/mocks"
	"github.com/ecotimes/news-api/internal/models"
	"github.com/ecotimes/news-api/internal/repository"
	"github.com/ecotimes/news-api/internal/service"
)

func guardTestSetup(t *testing.T) (*auth.TokenService, service.UserService, *mocks.MockUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := mocks.NewMockUserRepository()
	repos := &repository.Repositories{User: users}
	tokens := auth.NewTokenService("guard-secret", time.Hour)

	cfg := &config.Config{
		Server: config.ServerConfig{QueryTimeout: 5 * time.Second},
		Stripe: config.StripeConfig{Currency: "usd"},
	}

	// Only the user service participates in guard checks
	svc := service.NewServices(repos, nil, mocks.NewMockPaymentProvider(), cfg, zerolog.Nop())
	return tokens, svc.User, users
}

func serveGuarded(handlers []gin.HandlerFunc, method, path, token string) *httptest.ResponseRecorder {
	router := gin.New()
	all := append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })
	router.Handle(method, "/guarded/:email", all...)

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_AttachesClaims(t *testing.T) {
	tokens, _, _ := guardTestSetup(t)
	token, err := tokens.Issue("caller@x.com", "Caller")
	require.NoError(t, err)

	var seen *auth.Claims
	capture := func(c *gin.Context) {
		seen, _ = ClaimsFrom(c)
		c.Next()
	}

	w := serveGuarded([]gin.HandlerFunc{RequireAuth(tokens), capture}, "GET", "/guarded/x", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "caller@x.com", seen.Email)
}

func TestRequireAuth_RejectsMissingAndMalformed(t *testing.T) {
	tokens, _, _ := guardTestSetup(t)

	for _, token := range []string{"", "not.a.jwt"} {
		w := serveGuarded([]gin.HandlerFunc{RequireAuth(tokens)}, "GET", "/guarded/x", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "token %q", token)
	}
}

func TestRequireAdmin_ChecksStoreRole(t *testing.T) {
	tokens, userSvc, users := guardTestSetup(t)
	users.Insert(context.Background(), &models.User{ID: "a1", Email: "admin@x.com", Role: models.RoleAdmin})
	users.Insert(context.Background(), &models.User{ID: "r1", Email: "reader@x.com", Role: models.RoleUser})

	guards := []gin.HandlerFunc{RequireAuth(tokens), RequireAdmin(userSvc)}

	adminToken, _ := tokens.Issue("admin@x.com", "")
	w := serveGuarded(guards, "GET", "/guarded/x", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	readerToken, _ := tokens.Issue("reader@x.com", "")
	w = serveGuarded(guards, "GET", "/guarded/x", readerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A valid token whose email has no user record is not an admin
	ghostToken, _ := tokens.Issue("ghost@x.com", "")
	w = serveGuarded(guards, "GET", "/guarded/x", ghostToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireSelf_MatchesPathEmail(t *testing.T) {
	tokens, userSvc, users := guardTestSetup(t)
	users.Insert(context.Background(), &models.User{ID: "a1", Email: "admin@x.com", Role: models.RoleAdmin})

	guards := []gin.HandlerFunc{RequireAuth(tokens), RequireSelf(userSvc)}

	ownToken, _ := tokens.Issue("me@x.com", "")
	w := serveGuarded(guards, "GET", "/guarded/me@x.com", ownToken)
	assert.Equal(t, http.StatusOK, w.Code, "own resource")

	w = serveGuarded(guards, "GET", "/guarded/other@x.com", ownToken)
	assert.Equal(t, http.StatusForbidden, w.Code, "someone else's resource")

	adminToken, _ := tokens.Issue("admin@x.com", "")
	w = serveGuarded(guards, "GET", "/guarded/other@x.com", adminToken)
	assert.Equal(t, http.StatusOK, w.Code, "admin bypass")
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	tokens, _, _ := guardTestSetup(t)

	var hadClaims bool
	capture := func(c *gin.Context) {
		_, hadClaims = ClaimsFrom(c)
		c.Next()
	}

	w := serveGuarded([]gin.HandlerFunc{OptionalAuth(tokens), capture}, "GET", "/guarded/x", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, hadClaims)

	token, _ := tokens.Issue("caller@x.com", "")
	w = serveGuarded([]gin.HandlerFunc{OptionalAuth(tokens), capture}, "GET", "/guarded/x", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hadClaims)
}
