package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/apperr"
	"github.com/ecotimes/news-api/internal/models"
	"github.com/ecotimes/news-api/internal/repository"
)

type publisherService struct {
	publishers repository.PublisherRepository
	log        zerolog.Logger
}

func newPublisherService(publishers repository.PublisherRepository, log zerolog.Logger) *publisherService {
	return &publisherService{
		publishers: publishers,
		log:        log.With().Str("service", "publisher").Logger(),
	}
}

// Create inserts a new publisher
func (s *publisherService) Create(ctx context.Context, publisher *models.Publisher) (string, error) {
	if publisher.Name == "" {
		return "", apperr.InvalidInput("publisher name is required")
	}

	publisher.ID = uuid.New().String()
	if err := s.publishers.Create(ctx, publisher); err != nil {
		return "", apperr.Storage("failed to create publisher", err)
	}

	s.log.Info().Str("publisher_id", publisher.ID).Str("name", publisher.Name).Msg("Publisher created")
	return publisher.ID, nil
}

// List retrieves all publishers
func (s *publisherService) List(ctx context.Context) ([]*models.Publisher, error) {
	publishers, err := s.publishers.List(ctx)
	if err != nil {
		return nil, apperr.Storage("failed to list publishers", err)
	}
	return publishers, nil
}
