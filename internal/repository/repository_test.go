package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/ecotimes/news-api/internal/database"
	"github.com/ecotimes/news-api/internal/models"
	"github.com/ecotimes/news-api/internal/repository"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &database.DB{DB: db}, mock
}

const articleCols = "id, title, body, image, author_email, author_name, publisher, tags, status, is_premium, decline_reason, views, created_at, updated_at"

func articleRows(articles ...*models.Article) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "body", "image", "author_email", "author_name", "publisher",
		"tags", "status", "is_premium", "decline_reason", "views", "created_at", "updated_at",
	})
	for _, a := range articles {
		rows.AddRow(a.ID, a.Title, a.Body, a.Image, a.AuthorEmail, a.AuthorName, a.Publisher,
			[]byte(`["climate"]`), a.Status, a.IsPremium, nil, a.Views, time.Now(), time.Now())
	}
	return rows
}

func TestArticleRepo_IncrementViewIsAtomic(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepo(db)

	// The counter must be bumped inside the database, never via a
	// separate read and write
	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET views = views + 1 WHERE id = $1")).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	matched, err := repo.IncrementView(context.Background(), "a1")
	if err != nil {
		t.Fatalf("IncrementView failed: %v", err)
	}
	if !matched {
		t.Error("expected a matched row")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestArticleRepo_IncrementViewMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepo(db)

	mock.ExpectExec("UPDATE articles SET views").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	matched, err := repo.IncrementView(context.Background(), "missing")
	if err != nil {
		t.Fatalf("IncrementView failed: %v", err)
	}
	if matched {
		t.Error("missing id must report no match")
	}
}

func TestArticleRepo_GetByIDCorruptTagsIsAnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepo(db)

	rows := sqlmock.NewRows([]string{
		"id", "title", "body", "image", "author_email", "author_name", "publisher",
		"tags", "status", "is_premium", "decline_reason", "views", "created_at", "updated_at",
	}).AddRow("a1", "Title", "", "", "a@x.com", "", "Tribune",
		[]byte(`{not json`), "approved", false, nil, 0, time.Now(), time.Now())

	mock.ExpectQuery(`SELECT .+ FROM articles WHERE id = \$1`).
		WithArgs("a1").
		WillReturnRows(rows)

	if _, err := repo.GetByID(context.Background(), "a1"); err == nil {
		t.Error("corrupt tags column must surface an error, not nil tags")
	}
}

func TestArticleRepo_ListBuildsFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM articles WHERE title ILIKE \$1 AND publisher ILIKE \$2 AND tags \?\| \$3 ORDER BY created_at`).
		WithArgs("%solar%", "%tribune%", pq.Array([]string{"energy", "policy"})).
		WillReturnRows(articleRows(&models.Article{ID: "a1", Title: "Solar surge", Status: "approved"}))

	articles, err := repo.List(context.Background(), models.ArticleFilter{
		Search:    "solar",
		Publisher: "tribune",
		Tags:      []string{"energy", "policy"},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(articles) != 1 || articles[0].ID != "a1" {
		t.Errorf("unexpected result: %+v", articles)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestArticleRepo_ListNoFilterHasNoWhere(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + articleCols + " FROM articles ORDER BY created_at")).
		WillReturnRows(articleRows())

	if _, err := repo.List(context.Background(), models.ArticleFilter{}); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestArticleRepo_TrendingQueriesApprovedOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepo(db)

	mock.ExpectQuery(`WHERE status = 'approved'\s+ORDER BY views DESC, created_at\s+LIMIT \$1`).
		WithArgs(3).
		WillReturnRows(articleRows(
			&models.Article{ID: "a1", Title: "Top", Status: "approved", Views: 300},
			&models.Article{ID: "a2", Title: "Second", Status: "approved", Views: 20},
		))

	articles, err := repo.Trending(context.Background(), 3)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if len(articles) != 2 || articles[0].Views != 300 {
		t.Errorf("unexpected result: %+v", articles)
	}
}

func TestArticleRepo_SetDeclinedStoresReason(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepo(db)

	mock.ExpectExec(`UPDATE articles\s+SET status = 'decline', is_premium = FALSE, decline_reason = \$2`).
		WithArgs("a1", "needs sources").
		WillReturnResult(sqlmock.NewResult(0, 1))

	matched, err := repo.SetDeclined(context.Background(), "a1", "needs sources")
	if err != nil || !matched {
		t.Fatalf("SetDeclined = (%v, %v)", matched, err)
	}
}

func TestArticleRepo_SetApprovedClearsDeclineReason(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepo(db)

	mock.ExpectExec(`SET status = 'approved', is_premium = FALSE, decline_reason = NULL`).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if matched, err := repo.SetApproved(context.Background(), "a1"); err != nil || !matched {
		t.Fatalf("SetApproved = (%v, %v)", matched, err)
	}
}

func TestArticleRepo_TagStatsFansOut(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepo(db)

	mock.ExpectQuery(`jsonb_array_elements_text\(tags\)`).
		WillReturnRows(sqlmock.NewRows([]string{"tag", "count"}).
			AddRow("climate", 2).
			AddRow("policy", 1))

	stats, err := repo.TagStats(context.Background())
	if err != nil {
		t.Fatalf("TagStats failed: %v", err)
	}
	if len(stats) != 2 || stats[0].Tag != "climate" || stats[0].Count != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestArticleRepo_UpsertOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepo(db)

	mock.ExpectExec(`(?s)INSERT INTO articles.+ON CONFLICT \(id\) DO UPDATE SET`).
		WithArgs("a1", "New title", "body", "", "author@x.com", "Tribune", []byte(`["energy"]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), "a1", "author@x.com", models.ArticlePatch{
		Title: "New title", Body: "body", Publisher: "Tribune", Tags: []string{"energy"},
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUserRepo_InsertConflictIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepo(db)

	mock.ExpectExec(`(?s)INSERT INTO users.+ON CONFLICT \(email\) DO NOTHING`).
		WithArgs("u1", "dup@x.com", "Name", "", "user").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Insert(context.Background(), &models.User{
		ID: "u1", Email: "dup@x.com", Name: "Name", Role: "user",
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if created {
		t.Error("conflicting email must report created=false")
	}
}

func TestUserRepo_SetPremiumWritesRoleAndWindowTogether(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepo(db)

	until := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE users SET role = \$2, premium_until = \$3`).
		WithArgs("sub@x.com", models.RolePremium, until).
		WillReturnResult(sqlmock.NewResult(0, 1))

	matched, err := repo.SetPremium(context.Background(), "sub@x.com", until)
	if err != nil || !matched {
		t.Fatalf("SetPremium = (%v, %v)", matched, err)
	}
}

func TestUserRepo_GetByEmailMiss(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "name", "image", "role", "premium_until", "created_at", "updated_at",
		}))

	user, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if user != nil {
		t.Error("miss should return nil without error")
	}
}

func TestUserRepo_DeleteIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepo(db)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Delete(context.Background(), "gone")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("deleted = %d, want 0", n)
	}
}

func TestPublisherRepo_CreateAndList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewPublisherRepo(db)

	mock.ExpectExec(`INSERT INTO publishers`).
		WithArgs("p1", "Daily Planet", "logo.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Publisher{ID: "p1", Name: "Daily Planet", Logo: "logo.png"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mock.ExpectQuery(`SELECT id, name, logo, created_at FROM publishers`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "logo", "created_at"}).
			AddRow("p1", "Daily Planet", "logo.png", time.Now()))

	publishers, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(publishers) != 1 || publishers[0].Name != "Daily Planet" {
		t.Errorf("unexpected result: %+v", publishers)
	}
}
