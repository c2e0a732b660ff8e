package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/apperr"
	"github.com/ecotimes/news-api/internal/models"
	"github.com/ecotimes/news-api/internal/service"
)

// PublisherHandler handles publisher endpoints
type PublisherHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPublisherHandler creates a new PublisherHandler
func NewPublisherHandler(services *service.Services, log zerolog.Logger) *PublisherHandler {
	return &PublisherHandler{
		services: services,
		log:      log.With().Str("handler", "publisher").Logger(),
	}
}

// Create handles POST /publisher (admin)
func (h *PublisherHandler) Create(c *gin.Context) {
	var publisher models.Publisher
	if err := c.ShouldBindJSON(&publisher); err != nil {
		respondError(c, apperr.InvalidInput("invalid publisher payload"))
		return
	}

	id, err := h.services.Publisher.Create(c.Request.Context(), &publisher)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"id": id})
}

// List handles GET /publisher (public)
func (h *PublisherHandler) List(c *gin.Context) {
	publishers, err := h.services.Publisher.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if publishers == nil {
		publishers = []*models.Publisher{}
	}

	respondData(c, http.StatusOK, publishers)
}
