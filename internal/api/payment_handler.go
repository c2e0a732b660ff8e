package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/apperr"
	"github.com/ecotimes/news-api/internal/service"
)

// PaymentHandler brokers payment intents for premium subscriptions
type PaymentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(services *service.Services, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		services: services,
		log:      log.With().Str("handler", "payment").Logger(),
	}
}

// CreateIntent handles POST /create-payment-intent. The price is in
// major currency units; the client secret comes back verbatim from the
// processor.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req struct {
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("price is required"))
		return
	}

	secret, err := h.services.Payment.CreateIntent(c.Request.Context(), req.Price)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"client_secret": secret})
}
