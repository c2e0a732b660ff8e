package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ecotimes/news-api/internal/apperr"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    *apperr.Error
		status int
	}{
		{apperr.Unauthorized("x"), http.StatusUnauthorized},
		{apperr.Forbidden("x"), http.StatusForbidden},
		{apperr.NotFound("x"), http.StatusNotFound},
		{apperr.AlreadyExists("x"), http.StatusConflict},
		{apperr.InvalidInput("x"), http.StatusBadRequest},
		{apperr.InvalidPlan("x"), http.StatusBadRequest},
		{apperr.PaymentProvider("x", nil), http.StatusBadGateway},
		{apperr.Storage("x", nil), http.StatusBadGateway},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.err.Kind, got, tc.status)
		}
	}
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("pq: connection refused")
	e := apperr.From(cause)

	if e.Kind != apperr.KindStorage {
		t.Errorf("Kind = %v, want storage", e.Kind)
	}
	// The driver text must stay behind the message, available for logs
	// but not part of the user-facing message
	if e.Message != "internal storage error" {
		t.Errorf("Message = %q, leaks driver detail", e.Message)
	}
	if !errors.Is(e, cause) {
		t.Error("cause should remain unwrappable")
	}
}

func TestFromPreservesAppErrors(t *testing.T) {
	orig := apperr.NotFound("article not found")
	wrapped := fmt.Errorf("loading: %w", orig)

	e := apperr.From(wrapped)
	if e.Kind != apperr.KindNotFound {
		t.Errorf("Kind = %v, want not_found", e.Kind)
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", apperr.InvalidPlan("bad plan"))

	if !apperr.IsKind(err, apperr.KindInvalidPlan) {
		t.Error("IsKind should see through wrapping")
	}
	if apperr.IsKind(err, apperr.KindNotFound) {
		t.Error("IsKind should not match a different kind")
	}
	if apperr.IsKind(errors.New("plain"), apperr.KindInvalidPlan) {
		t.Error("IsKind should not match plain errors")
	}
}
