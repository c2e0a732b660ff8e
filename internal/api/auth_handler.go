package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/apperr"
	"github.com/ecotimes/news-api/internal/auth"
)

// AuthHandler issues bearer tokens for a client-provided identity. The
// identity provider (social login on the front end) is out of scope;
// this endpoint mirrors its output into a signed token.
type AuthHandler struct {
	tokens *auth.TokenService
	log    zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(tokens *auth.TokenService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		log:    log.With().Str("handler", "auth").Logger(),
	}
}

// IssueToken handles POST /jwt
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("email is required"))
		return
	}

	token, err := h.tokens.Issue(req.Email, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"token": token})
}
