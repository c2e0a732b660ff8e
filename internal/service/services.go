package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/cache"
	"github.com/ecotimes/news-api/internal/config"
	"github.com/ecotimes/news-api/internal/models"
	"github.com/ecotimes/news-api/internal/payment"
	"github.com/ecotimes/news-api/internal/repository"
)

// ArticleService defines article lifecycle operations
type ArticleService interface {
	Create(ctx context.Context, article *models.Article) (string, error)
	Get(ctx context.Context, id string) (*models.Article, error)
	GetForViewer(ctx context.Context, id, viewerEmail string) (*models.Article, error)
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	ListByAuthor(ctx context.Context, email string) ([]*models.Article, error)
	Update(ctx context.Context, id, authorEmail string, patch models.ArticlePatch) error
	Approve(ctx context.Context, id string) error
	MakePremium(ctx context.Context, id string) error
	Decline(ctx context.Context, id, reason string) error
	RecordView(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) (int64, error)
	Trending(ctx context.Context) ([]*models.Article, error)
	PublisherStats(ctx context.Context) ([]models.PublisherCount, error)
	TagStats(ctx context.Context) ([]models.TagCount, error)
}

// UserService defines user and subscription operations
type UserService interface {
	Register(ctx context.Context, user *models.User) (string, bool, error)
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, email string) (*models.User, error)
	SetRole(ctx context.Context, id, role string) error
	SetPremium(ctx context.Context, email, planCode string) (*models.User, error)
	UpdateProfile(ctx context.Context, email string, patch models.ProfilePatch) error
	Delete(ctx context.Context, id string) (int64, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// PublisherService defines publisher operations
type PublisherService interface {
	Create(ctx context.Context, publisher *models.Publisher) (string, error)
	List(ctx context.Context) ([]*models.Publisher, error)
}

// PaymentService brokers payment intents for premium subscriptions
type PaymentService interface {
	CreateIntent(ctx context.Context, priceMajor float64) (string, error)
}

// Services holds all service interfaces
type Services struct {
	Article   ArticleService
	User      UserService
	Publisher PublisherService
	Payment   PaymentService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, c *cache.Cache, provider payment.Provider, cfg *config.Config, log zerolog.Logger) *Services {
	userSvc := newUserService(repos.User, log)
	return &Services{
		Article:   newArticleService(repos.Article, repos.User, c, log),
		User:      userSvc,
		Publisher: newPublisherService(repos.Publisher, log),
		Payment:   newPaymentService(provider, cfg.Stripe.Currency, log),
	}
}
