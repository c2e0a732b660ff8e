package repository

import (
	"context"

	"github.com/ecotimes/news-api/internal/database"
	"github.com/ecotimes/news-api/internal/models"
)

// publisherRepo is the concrete implementation of PublisherRepository
type publisherRepo struct {
	db *database.DB
}

// NewPublisherRepo creates a new publisher repository
func NewPublisherRepo(db *database.DB) PublisherRepository {
	return &publisherRepo{db: db}
}

// Create inserts a new publisher
func (r *publisherRepo) Create(ctx context.Context, publisher *models.Publisher) error {
	query := `
		INSERT INTO publishers (id, name, logo, created_at)
		VALUES ($1, $2, $3, now())
	`
	_, err := r.db.ExecContext(ctx, query, publisher.ID, publisher.Name, publisher.Logo)
	return err
}

// List retrieves all publishers in insertion order
func (r *publisherRepo) List(ctx context.Context) ([]*models.Publisher, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, logo, created_at FROM publishers ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var publishers []*models.Publisher
	for rows.Next() {
		var p models.Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.Logo, &p.CreatedAt); err != nil {
			return nil, err
		}
		publishers = append(publishers, &p)
	}
	return publishers, rows.Err()
}
