package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/apperr"
	"github.com/ecotimes/news-api/internal/models"
	"github.com/ecotimes/news-api/internal/service"
)

// UserHandler handles user and subscription endpoints
type UserHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// Register handles POST /users. Idempotent on email: a known email is
// acknowledged without inserting or overwriting anything. Only display
// fields are read from the body; role and subscription window are
// assigned server-side and only ever change through the admin and
// payment paths.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("invalid user payload"))
		return
	}

	user := models.User{Email: req.Email, Name: req.Name, Image: req.Image}
	id, created, err := h.services.User.Register(c.Request.Context(), &user)
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		respondData(c, http.StatusOK, gin.H{"created": false, "message": "user already exists"})
		return
	}

	respondData(c, http.StatusCreated, gin.H{"created": true, "id": id})
}

// List handles GET /users (admin)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.services.User.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	respondData(c, http.StatusOK, users)
}

// Get handles GET /user/:email (owner or admin)
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.services.User.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, user)
}

// Delete handles DELETE /user/:id (admin). Idempotent.
func (h *UserHandler) Delete(c *gin.Context) {
	deleted, err := h.services.User.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": deleted})
}

// MakeAdmin handles PATCH /users/admin/:id (admin)
func (h *UserHandler) MakeAdmin(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.User.SetRole(c.Request.Context(), id, models.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"id": id, "role": models.RoleAdmin})
}

// SetPremium handles PATCH /users/premium/:email. The plan code in the
// body maps to a subscription duration.
func (h *UserHandler) SetPremium(c *gin.Context) {
	var req struct {
		Plan string `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("plan is required"))
		return
	}

	user, err := h.services.User.SetPremium(c.Request.Context(), c.Param("email"), req.Plan)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, user)
}

// UpdateProfile handles PATCH /update-profile/:email. Display fields
// only; role and subscription are untouched.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperr.InvalidInput("invalid profile payload"))
		return
	}

	email := c.Param("email")
	if err := h.services.User.UpdateProfile(c.Request.Context(), email, patch); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"email": email})
}
