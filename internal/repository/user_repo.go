package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ecotimes/news-api/internal/database"
	"github.com/ecotimes/news-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, name, image, role, premium_until, created_at, updated_at`

// Insert stores a new user unless the email is already registered.
// Returns false without error when the email exists; the existing
// record is never overwritten.
func (r *userRepo) Insert(ctx context.Context, user *models.User) (bool, error) {
	query := `
		INSERT INTO users (id, email, name, image, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (email) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Image, user.Role,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List retrieves all users in insertion order
func (r *userRepo) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetByEmail retrieves a user by email. Returns nil when no row matches.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole assigns a role directly. Values are caller discipline.
func (r *userRepo) SetRole(ctx context.Context, id, role string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetPremium sets the premium role together with its expiry in one
// statement, so a premium role without a window is unrepresentable.
func (r *userRepo) SetPremium(ctx context.Context, email string, until time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $2, premium_until = $3, updated_at = now() WHERE email = $1`,
		email, models.RolePremium, until)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// UpdateProfile writes the display fields only. Role and subscription
// are untouched.
func (r *userRepo) UpdateProfile(ctx context.Context, email string, patch models.ProfilePatch) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $2, image = $3, updated_at = now() WHERE email = $1`,
		email, patch.Name, patch.Image)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes a user. Deleting a missing id reports zero rows.
func (r *userRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var premiumUntil sql.NullTime

	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.Image,
		&user.Role, &premiumUntil, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if premiumUntil.Valid {
		user.PremiumUntil = &premiumUntil.Time
	}
	return &user, nil
}
