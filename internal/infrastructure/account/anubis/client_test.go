package anubis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

func newTestClient(t *testing.T, srv *httptest.Server, cacheTTL time.Duration) *Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.Client(), ClientConfig{
		BaseURL:        srv.URL,
		IntrospectPath: "/v1/auth/introspect",
		CacheTTL:       cacheTTL,
	}, logger)
}

func TestClientVerifyAccessToken_ParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-123",
			"email":   "faker@example.com",
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv, 0)

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}

	if principal.UserID != "user-123" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
	if principal.Email != "faker@example.com" {
		t.Fatalf("unexpected email: %s", principal.Email)
	}
}

func TestClientVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := newTestClient(t, srv, 0)

	_, err := client.VerifyAccessToken(context.Background(), "invalid-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_DeniedIntrospection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, 0)

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("introspection should not be called for empty tokens")
	}))
	defer srv.Close()

	client := newTestClient(t, srv, 0)

	_, err := client.VerifyAccessToken(context.Background(), "   ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientVerifyAccessToken_CachesPrincipal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-123",
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "token-abc"); err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 introspection call, got %d", got)
	}
}

func TestClientVerifyAccessToken_ServerErrorMapsToDependencyUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, 0)

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
