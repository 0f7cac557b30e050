package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/packline/packtrace/internal/auth"
	"github.com/packline/packtrace/internal/config"
	"github.com/packline/packtrace/internal/database"
	"github.com/packline/packtrace/internal/packaging"
	ws "github.com/packline/packtrace/internal/websocket"
)

func TestServiceErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", packaging.ErrNotFound, http.StatusNotFound},
		{"invalid state", fmt.Errorf("box is empty: %w", packaging.ErrInvalidState), http.StatusConflict},
		{"not eligible", fmt.Errorf("some boxes not sealed: %w", packaging.ErrNotEligible), http.StatusConflict},
		{"no records", packaging.ErrNoRecords, http.StatusBadRequest},
		{"connectivity", fmt.Errorf("%w: ping failed", packaging.ErrConnectivity), http.StatusServiceUnavailable},
		{"unreachable", fmt.Errorf("%w: ping failed", database.ErrUnreachable), http.StatusServiceUnavailable},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown", errors.New("column does not exist"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, tt.err)
			if rec.Code != tt.status {
				t.Errorf("got status %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestRouteTable(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", Port: "3001"}
	router := NewRouter(nil, cfg, ws.NewHub(), nil)

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/api/products"},
		{"POST", "/api/products"},
		{"PUT", "/api/products/7"},
		{"DELETE", "/api/products/7"},
		{"GET", "/api/products/7/packagings"},
		{"POST", "/api/products/7/packagings"},
		{"PUT", "/api/products/7/packagings/3"},
		{"DELETE", "/api/products/7/packagings/3"},
		{"GET", "/api/admin/users"},
		{"POST", "/api/admin/users"},
		{"PUT", "/api/admin/users/5"},
		{"DELETE", "/api/admin/users/5"},
		{"PUT", "/api/admin/users/5/active"},
		{"PUT", "/api/admin/users/5/pin"},
		{"GET", "/api/admin/roles"},
		{"POST", "/api/admin/roles"},
		{"PUT", "/api/admin/roles/2"},
		{"DELETE", "/api/admin/roles/2"},
	}

	for _, rt := range routes {
		req := httptest.NewRequest(rt.method, rt.path, nil)
		var match mux.RouteMatch
		if !router.Match(req, &match) || match.MatchErr != nil {
			t.Errorf("no route for %s %s", rt.method, rt.path)
		}
	}
}
