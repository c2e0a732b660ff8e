package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ecotimes/news-api/internal/models"
)

// MockArticleRepository is an in-memory implementation of
// repository.ArticleRepository. Mutations are mutex-guarded so
// concurrent view increments behave like the database's atomic update.
type MockArticleRepository struct {
	mu       sync.Mutex
	Articles map[string]*models.Article
	order    []string

	InsertError error
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *article
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.Articles[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Article
	for _, id := range m.order {
		a, ok := m.Articles[id]
		if !ok {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Publisher != "" && !strings.Contains(strings.ToLower(a.Publisher), strings.ToLower(filter.Publisher)) {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(a.Tags, filter.Tags) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockArticleRepository) ListByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Article
	for _, id := range m.order {
		if a, ok := m.Articles[id]; ok && a.AuthorEmail == email {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockArticleRepository) Upsert(ctx context.Context, id, authorEmail string, patch models.ArticlePatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.Articles[id]; ok {
		a.Title = patch.Title
		a.Body = patch.Body
		a.Image = patch.Image
		a.Publisher = patch.Publisher
		a.Tags = patch.Tags
		a.UpdatedAt = time.Now()
		return nil
	}
	m.Articles[id] = &models.Article{
		ID:          id,
		Title:       patch.Title,
		Body:        patch.Body,
		Image:       patch.Image,
		Publisher:   patch.Publisher,
		Tags:        patch.Tags,
		AuthorEmail: authorEmail,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}
	m.order = append(m.order, id)
	return nil
}

func (m *MockArticleRepository) SetApproved(ctx context.Context, id string) (bool, error) {
	return m.setStatus(id, models.StatusApproved, false, "")
}

func (m *MockArticleRepository) SetPremium(ctx context.Context, id string) (bool, error) {
	return m.setStatus(id, models.StatusPremium, true, "")
}

func (m *MockArticleRepository) SetDeclined(ctx context.Context, id, reason string) (bool, error) {
	return m.setStatus(id, models.StatusDeclined, false, reason)
}

func (m *MockArticleRepository) setStatus(id, status string, premium bool, reason string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return false, nil
	}
	a.Status = status
	a.IsPremium = premium
	a.DeclineReason = reason
	a.UpdatedAt = time.Now()
	return true, nil
}

func (m *MockArticleRepository) IncrementView(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return false, nil
	}
	a.Views++
	return true, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Articles[id]; !ok {
		return 0, nil
	}
	delete(m.Articles, id)
	return 1, nil
}

func (m *MockArticleRepository) Trending(ctx context.Context, limit int) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var approved []*models.Article
	for _, id := range m.order {
		if a, ok := m.Articles[id]; ok && a.Status == models.StatusApproved {
			cp := *a
			approved = append(approved, &cp)
		}
	}
	sort.SliceStable(approved, func(i, j int) bool {
		return approved[i].Views > approved[j].Views
	})
	if len(approved) > limit {
		approved = approved[:limit]
	}
	return approved, nil
}

func (m *MockArticleRepository) PublisherStats(ctx context.Context) ([]models.PublisherCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int64)
	for _, a := range m.Articles {
		counts[a.Publisher]++
	}
	return sortedCounts(counts, func(k string, v int64) models.PublisherCount {
		return models.PublisherCount{Publisher: k, Count: v}
	}), nil
}

func (m *MockArticleRepository) TagStats(ctx context.Context) ([]models.TagCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int64)
	for _, a := range m.Articles {
		for _, tag := range a.Tags {
			counts[tag]++
		}
	}
	return sortedCounts(counts, func(k string, v int64) models.TagCount {
		return models.TagCount{Tag: k, Count: v}
	}), nil
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func sortedCounts[T any](counts map[string]int64, build func(string, int64) T) []T {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, build(k, counts[k]))
	}
	return out
}

// MockUserRepository is an in-memory implementation of
// repository.UserRepository keyed by email.
type MockUserRepository struct {
	mu    sync.Mutex
	Users map[string]*models.User // by email
	IDs   map[string]string      // id -> email
	order []string
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
		IDs:   make(map[string]string),
	}
}

func (m *MockUserRepository) Insert(ctx context.Context, user *models.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Users[user.Email]; exists {
		return false, nil
	}
	cp := *user
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.Users[cp.Email] = &cp
	m.IDs[cp.ID] = cp.Email
	m.order = append(m.order, cp.Email)
	return true, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.User
	for _, email := range m.order {
		if u, ok := m.Users[email]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) SetRole(ctx context.Context, id, role string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email, ok := m.IDs[id]
	if !ok {
		return false, nil
	}
	m.Users[email].Role = role
	return true, nil
}

func (m *MockUserRepository) SetPremium(ctx context.Context, email string, until time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[email]
	if !ok {
		return false, nil
	}
	u.Role = models.RolePremium
	u.PremiumUntil = &until
	return true, nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, email string, patch models.ProfilePatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[email]
	if !ok {
		return false, nil
	}
	u.Name = patch.Name
	u.Image = patch.Image
	return true, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email, ok := m.IDs[id]
	if !ok {
		return 0, nil
	}
	delete(m.Users, email)
	delete(m.IDs, id)
	return 1, nil
}

// MockPublisherRepository is an in-memory implementation of
// repository.PublisherRepository.
type MockPublisherRepository struct {
	mu         sync.Mutex
	Publishers []*models.Publisher
}

func NewMockPublisherRepository() *MockPublisherRepository {
	return &MockPublisherRepository{}
}

func (m *MockPublisherRepository) Create(ctx context.Context, publisher *models.Publisher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *publisher
	m.Publishers = append(m.Publishers, &cp)
	return nil
}

func (m *MockPublisherRepository) List(ctx context.Context) ([]*models.Publisher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Publisher, 0, len(m.Publishers))
	for _, p := range m.Publishers {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
