package repository

import (
	"context"
	"time"

	"github.com/ecotimes/news-api/internal/database"
	"github.com/ecotimes/news-api/internal/models"
)

// ArticleRepository defines the interface for article data operations.
// Mutations that target a single row report whether a row matched, so
// services can map a miss to a not-found error without a prior read.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	ListByAuthor(ctx context.Context, email string) ([]*models.Article, error)
	Upsert(ctx context.Context, id, authorEmail string, patch models.ArticlePatch) error
	SetApproved(ctx context.Context, id string) (bool, error)
	SetPremium(ctx context.Context, id string) (bool, error)
	SetDeclined(ctx context.Context, id, reason string) (bool, error)
	IncrementView(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (int64, error)
	Trending(ctx context.Context, limit int) ([]*models.Article, error)
	PublisherStats(ctx context.Context) ([]models.PublisherCount, error)
	TagStats(ctx context.Context) ([]models.TagCount, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetRole(ctx context.Context, id, role string) (bool, error)
	SetPremium(ctx context.Context, email string, until time.Time) (bool, error)
	UpdateProfile(ctx context.Context, email string, patch models.ProfilePatch) (bool, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// PublisherRepository defines the interface for publisher data operations
type PublisherRepository interface {
	Create(ctx context.Context, publisher *models.Publisher) error
	List(ctx context.Context) ([]*models.Publisher, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article   ArticleRepository
	User      UserRepository
	Publisher PublisherRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:   NewArticleRepo(db),
		User:      NewUserRepo(db),
		Publisher: NewPublisherRepo(db),
	}
}
