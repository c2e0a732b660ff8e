package auth

import (
	"testing"
	"time"

	"github.com/ecotimes/news-api/internal/apperr"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("reader@example.com", "Reader")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Email != "reader@example.com" {
		t.Errorf("Email = %q, want reader@example.com", claims.Email)
	}
	if claims.Name != "Reader" {
		t.Errorf("Name = %q, want Reader", claims.Name)
	}
}

func TestTokenService_ExpiryIsOneHour(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue("reader@example.com", "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(issued.Add(time.Hour)) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt.Time, issued.Add(time.Hour))
	}
}

func TestTokenService_ExpiredTokenFails(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue("reader@example.com", "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Move the clock past the expiry
	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }

	_, err = svc.Verify(token)
	if err == nil {
		t.Fatal("Verify should fail for an expired token")
	}
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("error kind = %v, want unauthorized", err)
	}
}

func TestTokenService_WrongSecretFails(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("reader@example.com", "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("Verify should fail for a token signed with a different secret")
	}
}

func TestTokenService_GarbageTokenFails(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(tok); err == nil {
			t.Errorf("Verify(%q) should fail", tok)
		}
	}
}

func TestTokenService_EmailRequired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Issue("", "No Email")
	if err == nil {
		t.Fatal("Issue should fail without an email")
	}
	if !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Errorf("error kind = %v, want invalid_input", err)
	}
}
