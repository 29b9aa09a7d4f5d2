package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riftlabs/fantasy-esports/internal/domain/user"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

type stubVerifier struct {
	principal user.Principal
	err       error
}

var _ TokenVerifier = (*stubVerifier)(nil)

func (s *stubVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	return s.principal, s.err
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	handler := RequireAuth(&stubVerifier{}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	handler := RequireAuth(&stubVerifier{}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireAuth_VerifierRejectsToken(t *testing.T) {
	verifier := &stubVerifier{err: fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)}
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireAuth_InjectsPrincipal(t *testing.T) {
	verifier := &stubVerifier{principal: user.Principal{UserID: "user-1", Email: "faker@example.com"}}

	var got user.Principal
	var ok bool
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !ok {
		t.Fatalf("expected principal in request context")
	}
	if got.UserID != "user-1" {
		t.Fatalf("unexpected principal user id: got=%q want=%q", got.UserID, "user-1")
	}
}

func TestRequireInternalJobToken_RejectsMissingToken(t *testing.T) {
	handler := RequireInternalJobToken("secret", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-stats", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireInternalJobToken_RejectsWhenUnconfigured(t *testing.T) {
	handler := RequireInternalJobToken("", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-stats", nil)
	req.Header.Set("X-Internal-Job-Token", "anything")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestRequireInternalJobToken_AcceptsMatchingToken(t *testing.T) {
	handler := RequireInternalJobToken("secret", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-stats", nil)
	req.Header.Set("X-Internal-Job-Token", "secret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}
