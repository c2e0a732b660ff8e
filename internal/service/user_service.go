package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/apperr"
	"github.com/ecotimes/news-api/internal/models"
	"github.com/ecotimes/news-api/internal/repository"
)

type userService struct {
	users repository.UserRepository
	log   zerolog.Logger
	now   func() time.Time
}

func newUserService(users repository.UserRepository, log zerolog.Logger) *userService {
	return &userService{
		users: users,
		log:   log.With().Str("service", "user").Logger(),
		now:   time.Now,
	}
}

// Register stores a new user with the default role. Registration is
// idempotent on email: a second call with a known email returns the
// created=false sentinel and leaves the stored record untouched.
func (s *userService) Register(ctx context.Context, user *models.User) (string, bool, error) {
	if user.Email == "" {
		return "", false, apperr.InvalidInput("email is required")
	}

	// The default role is not a fallback: whatever the caller put in
	// the struct is discarded. Roles are granted by SetRole (admin) and
	// SetPremium (payment path) only.
	user.ID = uuid.New().String()
	user.Role = models.RoleUser
	user.PremiumUntil = nil

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return "", false, apperr.Storage("failed to register user", err)
	}
	if !created {
		return "", false, nil
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User registered")
	return user.ID, true, nil
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Storage("failed to list users", err)
	}
	return users, nil
}

// Get retrieves a user by email
func (s *userService) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Storage("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// SetRole assigns a role directly by user id
func (s *userService) SetRole(ctx context.Context, id, role string) error {
	matched, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return apperr.Storage("failed to set role", err)
	}
	if !matched {
		return apperr.NotFound("user not found")
	}
	s.log.Info().Str("user_id", id).Str("role", role).Msg("Role assigned")
	return nil
}

// SetPremium opens a premium window for the user. The plan code maps to
// a fixed duration; unrecognized codes are rejected instead of storing
// a corrupt expiry.
func (s *userService) SetPremium(ctx context.Context, email, planCode string) (*models.User, error) {
	duration, ok := models.PremiumPlans[planCode]
	if !ok {
		return nil, apperr.InvalidPlan("unknown subscription plan: " + planCode)
	}

	until := s.now().Add(duration)
	matched, err := s.users.SetPremium(ctx, email, until)
	if err != nil {
		return nil, apperr.Storage("failed to set premium", err)
	}
	if !matched {
		return nil, apperr.NotFound("user not found")
	}

	s.log.Info().Str("email", email).Str("plan", planCode).Time("until", until).Msg("Premium subscription set")
	return s.Get(ctx, email)
}

// UpdateProfile writes display fields only
func (s *userService) UpdateProfile(ctx context.Context, email string, patch models.ProfilePatch) error {
	matched, err := s.users.UpdateProfile(ctx, email, patch)
	if err != nil {
		return apperr.Storage("failed to update profile", err)
	}
	if !matched {
		return apperr.NotFound("user not found")
	}
	return nil
}

// Delete removes a user. Deleting a missing id is not an error.
func (s *userService) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return 0, apperr.Storage("failed to delete user", err)
	}
	return deleted, nil
}

// IsAdmin reports whether the email belongs to an admin. Unknown emails
// are simply not admins.
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, apperr.Storage("failed to load user", err)
	}
	return user != nil && user.Role == models.RoleAdmin, nil
}
