package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ecotimes/news-api/internal/database"
	"github.com/ecotimes/news-api/internal/models"
	"github.com/lib/pq"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = `id, title, body, image, author_email, author_name, publisher, tags, status, is_premium, decline_reason, views, created_at, updated_at`

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	tagsJSON, _ := json.Marshal(article.Tags)
	if article.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		INSERT INTO articles (id, title, body, image, author_email, author_name, publisher, tags, status, is_premium, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Body, article.Image,
		article.AuthorEmail, article.AuthorName, article.Publisher,
		tagsJSON, article.Status, article.IsPremium, article.Views,
		now, now,
	)
	return err
}

// GetByID retrieves an article by ID. Returns nil when no row matches.
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// List retrieves articles matching the filter, in insertion order.
// Absent filter terms place no constraint on their field.
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`

	var conds []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.Publisher != "" {
		args = append(args, "%"+filter.Publisher+"%")
		conds = append(conds, fmt.Sprintf("publisher ILIKE $%d", len(args)))
	}
	if len(filter.Tags) > 0 {
		// jsonb ?| matches articles carrying ANY of the requested tags
		args = append(args, pq.Array(filter.Tags))
		conds = append(conds, fmt.Sprintf("tags ?| $%d", len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"

	return r.queryArticles(ctx, query, args...)
}

// ListByAuthor retrieves all articles whose author email matches
func (r *articleRepo) ListByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE author_email = $1 ORDER BY created_at`
	return r.queryArticles(ctx, query, email)
}

// Upsert writes the content fields for the given id, inserting a fresh
// pending article when the id is unknown. Status, premium flag and views
// are never touched by a content update.
func (r *articleRepo) Upsert(ctx context.Context, id, authorEmail string, patch models.ArticlePatch) error {
	tagsJSON, _ := json.Marshal(patch.Tags)
	if patch.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		INSERT INTO articles (id, title, body, image, author_email, publisher, tags, status, is_premium, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', FALSE, 0, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			image = EXCLUDED.image,
			publisher = EXCLUDED.publisher,
			tags = EXCLUDED.tags,
			updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query,
		id, patch.Title, patch.Body, patch.Image, authorEmail, patch.Publisher, tagsJSON,
	)
	return err
}

// SetApproved transitions an article to approved. A stale decline
// reason is cleared by the same statement. Last write wins when two
// admin sessions race on the same article.
func (r *articleRepo) SetApproved(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE articles
		SET status = 'approved', is_premium = FALSE, decline_reason = NULL, updated_at = now()
		WHERE id = $1
	`
	return r.execOne(ctx, query, id)
}

// SetPremium transitions an article to premium and sets the flag
func (r *articleRepo) SetPremium(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE articles
		SET status = 'premium', is_premium = TRUE, decline_reason = NULL, updated_at = now()
		WHERE id = $1
	`
	return r.execOne(ctx, query, id)
}

// SetDeclined transitions an article to declined, storing the reason
func (r *articleRepo) SetDeclined(ctx context.Context, id, reason string) (bool, error) {
	query := `
		UPDATE articles
		SET status = 'decline', is_premium = FALSE, decline_reason = $2, updated_at = now()
		WHERE id = $1
	`
	return r.execOne(ctx, query, id, reason)
}

// IncrementView bumps the view counter by one. The increment happens in
// the database, not read-modify-write in the service, so concurrent
// requests for the same article never lose updates.
func (r *articleRepo) IncrementView(ctx context.Context, id string) (bool, error) {
	query := `UPDATE articles SET views = views + 1 WHERE id = $1`
	return r.execOne(ctx, query, id)
}

// Delete removes an article. Deleting a missing id reports zero rows.
func (r *articleRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Trending returns the top approved articles by view count. Ties break
// on insertion order.
func (r *articleRepo) Trending(ctx context.Context, limit int) ([]*models.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE status = 'approved'
		ORDER BY views DESC, created_at
		LIMIT $1
	`
	return r.queryArticles(ctx, query, limit)
}

// PublisherStats counts articles grouped by publisher name
func (r *articleRepo) PublisherStats(ctx context.Context) ([]models.PublisherCount, error) {
	query := `SELECT publisher, COUNT(*) FROM articles GROUP BY publisher ORDER BY COUNT(*) DESC, publisher`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.PublisherCount
	for rows.Next() {
		var pc models.PublisherCount
		if err := rows.Scan(&pc.Publisher, &pc.Count); err != nil {
			return nil, err
		}
		stats = append(stats, pc)
	}
	return stats, rows.Err()
}

// TagStats counts articles grouped by tag. An article with N tags
// contributes one count to each of the N tags.
func (r *articleRepo) TagStats(ctx context.Context) ([]models.TagCount, error) {
	query := `
		SELECT tag, COUNT(*)
		FROM articles, jsonb_array_elements_text(tags) AS tag
		GROUP BY tag
		ORDER BY COUNT(*) DESC, tag
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.TagCount
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		stats = append(stats, tc)
	}
	return stats, rows.Err()
}

// execOne runs a single-row mutation and reports whether a row matched
func (r *articleRepo) execOne(ctx context.Context, query string, args ...interface{}) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *articleRepo) queryArticles(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var tagsJSON []byte
	var declineReason sql.NullString

	err := row.Scan(
		&article.ID, &article.Title, &article.Body, &article.Image,
		&article.AuthorEmail, &article.AuthorName, &article.Publisher,
		&tagsJSON, &article.Status, &article.IsPremium, &declineReason,
		&article.Views, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &article.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags for article %s: %w", article.ID, err)
	}
	if declineReason.Valid {
		article.DeclineReason = declineReason.String
	}
	return &article, nil
}
