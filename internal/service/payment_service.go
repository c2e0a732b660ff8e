package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/apperr"
	"github.com/ecotimes/news-api/internal/payment"
)

type paymentService struct {
	provider payment.Provider
	currency string
	log      zerolog.Logger
}

func newPaymentService(provider payment.Provider, currency string, log zerolog.Logger) *paymentService {
	return &paymentService{
		provider: provider,
		currency: currency,
		log:      log.With().Str("service", "payment").Logger(),
	}
}

// CreateIntent converts the price to minor currency units (truncating)
// and requests a card-only intent in the configured currency. Provider
// failures are surfaced, never retried.
func (s *paymentService) CreateIntent(ctx context.Context, priceMajor float64) (string, error) {
	if priceMajor <= 0 {
		return "", apperr.InvalidInput("price must be positive")
	}

	amountMinor := int64(math.Trunc(priceMajor * 100))

	secret, err := s.provider.CreateIntent(ctx, amountMinor, s.currency)
	if err != nil {
		s.log.Error().Err(err).Int64("amount_minor", amountMinor).Msg("Payment intent failed")
		return "", apperr.PaymentProvider("payment processor rejected the request", err)
	}

	s.log.Info().Int64("amount_minor", amountMinor).Msg("Payment intent created")
	return secret, nil
}
