package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riftlabs/fantasy-esports/internal/domain/league"
	"github.com/riftlabs/fantasy-esports/internal/domain/roster"
	"github.com/riftlabs/fantasy-esports/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantHTTP   int
		wantStatus string
	}{
		{name: "invalid input", err: usecase.ErrInvalidInput, wantHTTP: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT"},
		{name: "not found", err: usecase.ErrNotFound, wantHTTP: http.StatusNotFound, wantStatus: "NOT_FOUND"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantHTTP: http.StatusUnauthorized, wantStatus: "UNAUTHENTICATED"},
		{name: "forbidden", err: usecase.ErrForbidden, wantHTTP: http.StatusForbidden, wantStatus: "PERMISSION_DENIED"},
		{name: "dependency unavailable", err: usecase.ErrDependencyUnavailable, wantHTTP: http.StatusServiceUnavailable, wantStatus: "UNAVAILABLE"},
		{name: "roster full", err: roster.ErrRosterFull, wantHTTP: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT"},
		{name: "league already started", err: league.ErrAlreadyStarted, wantHTTP: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT"},
		{name: "wrapped sentinel", err: fmt.Errorf("%w: league lg-1 not found", usecase.ErrNotFound), wantHTTP: http.StatusNotFound, wantStatus: "NOT_FOUND"},
		{name: "unknown error", err: fmt.Errorf("boom"), wantHTTP: http.StatusInternalServerError, wantStatus: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(context.Background(), tt.err)
			if mapped.HTTPStatus != tt.wantHTTP {
				t.Fatalf("unexpected http status: got=%d want=%d", mapped.HTTPStatus, tt.wantHTTP)
			}
			if mapped.Status != tt.wantStatus {
				t.Fatalf("unexpected status: got=%q want=%q", mapped.Status, tt.wantStatus)
			}
		})
	}
}
