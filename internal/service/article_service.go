package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/apperr"
	"github.com/ecotimes/news-api/internal/cache"
	"github.com/ecotimes/news-api/internal/models"
	"github.com/ecotimes/news-api/internal/repository"
)

// TrendingLimit is the number of articles the trending feed returns
const TrendingLimit = 3

const (
	cacheKeyTrending       = "stats:trending"
	cacheKeyPublisherStats = "stats:publishers"
	cacheKeyTagStats       = "stats:tags"
)

type articleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	cache    *cache.Cache
	log      zerolog.Logger
	now      func() time.Time
}

func newArticleService(articles repository.ArticleRepository, users repository.UserRepository, c *cache.Cache, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		users:    users,
		cache:    c,
		log:      log.With().Str("service", "article").Logger(),
		now:      time.Now,
	}
}

// Create inserts a new article. Workflow state always starts at pending
// with zero views, regardless of what the caller submitted.
func (s *articleService) Create(ctx context.Context, article *models.Article) (string, error) {
	if article.Title == "" {
		return "", apperr.InvalidInput("title is required")
	}
	if article.AuthorEmail == "" {
		return "", apperr.InvalidInput("author email is required")
	}

	article.ID = uuid.New().String()
	article.Status = models.StatusPending
	article.IsPremium = false
	article.Views = 0
	article.DeclineReason = ""

	if err := s.articles.Create(ctx, article); err != nil {
		return "", apperr.Storage("failed to create article", err)
	}

	s.log.Info().Str("article_id", article.ID).Str("author", article.AuthorEmail).Msg("Article created")
	return article.ID, nil
}

// Get retrieves an article with no visibility gating
func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("failed to load article", err)
	}
	if article == nil {
		return nil, apperr.NotFound("article not found")
	}
	return article, nil
}

// GetForViewer retrieves an article and enforces the premium gate.
// Premium-status articles are served only to the author, admins, or
// callers whose premium window is still open. The stored role is never
// trusted on its own; expiry is checked against the clock.
func (s *articleService) GetForViewer(ctx context.Context, id, viewerEmail string) (*models.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if article.Status != models.StatusPremium {
		return article, nil
	}
	if viewerEmail == "" {
		return nil, apperr.Unauthorized("premium article requires authentication")
	}
	if viewerEmail == article.AuthorEmail {
		return article, nil
	}

	viewer, err := s.users.GetByEmail(ctx, viewerEmail)
	if err != nil {
		return nil, apperr.Storage("failed to load viewer", err)
	}
	if viewer == nil {
		return nil, apperr.Forbidden("premium subscription required")
	}
	if viewer.Role == models.RoleAdmin || viewer.PremiumActive(s.now()) {
		return article, nil
	}
	return nil, apperr.Forbidden("premium subscription required")
}

// List retrieves articles matching the filter
func (s *articleService) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	articles, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, apperr.Storage("failed to list articles", err)
	}
	return articles, nil
}

// ListByAuthor retrieves the caller's own articles
func (s *articleService) ListByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	articles, err := s.articles.ListByAuthor(ctx, email)
	if err != nil {
		return nil, apperr.Storage("failed to list articles", err)
	}
	return articles, nil
}

// Update writes content fields with upsert semantics: an unknown id
// creates a fresh pending article under that id rather than failing.
func (s *articleService) Update(ctx context.Context, id, authorEmail string, patch models.ArticlePatch) error {
	if id == "" {
		return apperr.InvalidInput("article id is required")
	}
	if err := s.articles.Upsert(ctx, id, authorEmail, patch); err != nil {
		return apperr.Storage("failed to update article", err)
	}
	return nil
}

// Approve transitions an article to approved. Concurrent workflow
// transitions on the same article are last-write-wins.
func (s *articleService) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, "approve", s.articles.SetApproved)
}

// MakePremium transitions an article to premium
func (s *articleService) MakePremium(ctx context.Context, id string) error {
	return s.transition(ctx, id, "premium", s.articles.SetPremium)
}

// Decline transitions an article to declined with a reason for the author
func (s *articleService) Decline(ctx context.Context, id, reason string) error {
	if reason == "" {
		return apperr.InvalidInput("decline reason is required")
	}
	return s.transition(ctx, id, "decline", func(ctx context.Context, id string) (bool, error) {
		return s.articles.SetDeclined(ctx, id, reason)
	})
}

func (s *articleService) transition(ctx context.Context, id, name string, fn func(context.Context, string) (bool, error)) error {
	matched, err := fn(ctx, id)
	if err != nil {
		return apperr.Storage("failed to update article status", err)
	}
	if !matched {
		return apperr.NotFound("article not found")
	}
	s.log.Info().Str("article_id", id).Str("transition", name).Msg("Article status changed")
	return nil
}

// RecordView bumps the view counter. The increment is atomic in the
// storage layer, so N concurrent views count exactly N.
func (s *articleService) RecordView(ctx context.Context, id string) error {
	matched, err := s.articles.IncrementView(ctx, id)
	if err != nil {
		return apperr.Storage("failed to record view", err)
	}
	if !matched {
		return apperr.NotFound("article not found")
	}
	return nil
}

// Delete removes an article. Deleting a missing id is not an error.
func (s *articleService) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return 0, apperr.Storage("failed to delete article", err)
	}
	return deleted, nil
}

// Trending returns the top approved articles by views, cached briefly
func (s *articleService) Trending(ctx context.Context) ([]*models.Article, error) {
	var cached []*models.Article
	if s.cache.Get(ctx, cacheKeyTrending, &cached) {
		return cached, nil
	}

	articles, err := s.articles.Trending(ctx, TrendingLimit)
	if err != nil {
		return nil, apperr.Storage("failed to load trending articles", err)
	}

	s.cache.Set(ctx, cacheKeyTrending, articles)
	return articles, nil
}

// PublisherStats returns article counts grouped by publisher, cached briefly
func (s *articleService) PublisherStats(ctx context.Context) ([]models.PublisherCount, error) {
	var cached []models.PublisherCount
	if s.cache.Get(ctx, cacheKeyPublisherStats, &cached) {
		return cached, nil
	}

	stats, err := s.articles.PublisherStats(ctx)
	if err != nil {
		return nil, apperr.Storage("failed to aggregate publisher stats", err)
	}

	s.cache.Set(ctx, cacheKeyPublisherStats, stats)
	return stats, nil
}

// TagStats returns article counts grouped by tag with per-tag fan-out,
// cached briefly
func (s *articleService) TagStats(ctx context.Context) ([]models.TagCount, error) {
	var cached []models.TagCount
	if s.cache.Get(ctx, cacheKeyTagStats, &cached) {
		return cached, nil
	}

	stats, err := s.articles.TagStats(ctx)
	if err != nil {
		return nil, apperr.Storage("failed to aggregate tag stats", err)
	}

	s.cache.Set(ctx, cacheKeyTagStats, stats)
	return stats, nil
}
