package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/bloglist/internal/repository"
)

type mockHealthChecker struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockHealthChecker) PingContext(ctx context.Context) error {
	return m.pingFunc(ctx)
}

type staticTokenVerifier struct {
	userID string
}

func (v *staticTokenVerifier) VerifyToken(token string) (string, error) {
	if token == "valid-token" {
		return v.userID, nil
	}
	return "", errors.New("invalid token")
}

func newTestRouterDeps() *RouterDeps {
	return &RouterDeps{
		HealthChecker:     &mockHealthChecker{pingFunc: func(ctx context.Context) error { return nil }},
		TokenVerifier:     &staticTokenVerifier{userID: "user-1"},
		CORSAllowedOrigin: "http://localhost:3000",
		BlogService:       &mockBlogService{},
		UserService:       &mockUserService{},
		LoginService:      &mockLoginService{},
	}
}

// 未知のルートは404 {"error":"unknown endpoint"}で応答することを検証
func TestRouter_UnknownEndpoint(t *testing.T) {
	router := NewRouter(newTestRouterDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/unknown/path", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body["error"] != "unknown endpoint" {
		t.Errorf("error message = %q, want %q", body["error"], "unknown endpoint")
	}
}

func TestRouter_Health(t *testing.T) {
	router := NewRouter(newTestRouterDeps())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRouter_Health_DatabaseDown(t *testing.T) {
	deps := newTestRouterDeps()
	deps.HealthChecker = &mockHealthChecker{
		pingFunc: func(ctx context.Context) error {
			return errors.New("connection refused")
		},
	}
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

// 変更系ブログルートにのみ認証が要求されることを検証
func TestRouter_AuthRequiredRoutes(t *testing.T) {
	router := NewRouter(newTestRouterDeps())

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "create without token", method: http.MethodPost, path: "/api/blogs"},
		{name: "delete without token", method: http.MethodDelete, path: "/api/blogs/" + testBlogID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response body: %v", err)
			}
			if body["error"] != "token is missing or invalid" {
				t.Errorf("error message = %q, want %q", body["error"], "token is missing or invalid")
			}
		})
	}
}

// 匿名アクセス可能なルートには認証ヘッダーが不要であることを検証
func TestRouter_AnonymousRoutes(t *testing.T) {
	deps := newTestRouterDeps()
	deps.BlogService = &mockBlogService{
		listFunc: func(ctx context.Context) ([]repository.BlogWithOwner, error) {
			return nil, nil
		},
	}
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

// panicを起こすハンドラーでもルーターが500を返すことを検証
func TestRouter_RecoveryIntegration(t *testing.T) {
	deps := newTestRouterDeps()
	deps.BlogService = &mockBlogService{
		listFunc: func(ctx context.Context) ([]repository.BlogWithOwner, error) {
			panic("boom")
		},
	}
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
