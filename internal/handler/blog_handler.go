package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hitoshi/bloglist/internal/blog"
	"github.com/hitoshi/bloglist/internal/middleware"
	"github.com/hitoshi/bloglist/internal/model"
	"github.com/hitoshi/bloglist/internal/repository"
)

// BlogServiceInterface はブログハンドラーが必要とするサービスインターフェース。
type BlogServiceInterface interface {
	// List は全ブログを所有ユーザーの公開情報付きで返す。
	List(ctx context.Context) ([]repository.BlogWithOwner, error)
	// Get は指定IDのブログを返す。見つからない場合はnilを返す。
	Get(ctx context.Context, id string) (*model.Blog, error)
	// Create は認証済みユーザーのブログを作成する。
	Create(ctx context.Context, userID string, in blog.CreateInput) (*model.Blog, error)
	// Update は指定IDのブログを上書き更新する。
	Update(ctx context.Context, id string, in blog.UpdateInput) (*model.Blog, error)
	// Delete は所有権チェック付きでブログを削除する。
	Delete(ctx context.Context, userID, id string) error
}

// BlogHandler はブログ管理のHTTPハンドラー。
type BlogHandler struct {
	service BlogServiceInterface
}

// NewBlogHandler はBlogHandlerを生成する。
func NewBlogHandler(service BlogServiceInterface) *BlogHandler {
	return &BlogHandler{
		service: service,
	}
}

// createBlogRequest はブログ作成リクエストのボディ。
type createBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// updateBlogRequest はブログ更新リクエストのボディ。省略されたフィールドは変更しない。
type updateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// blogResponse はブログのAPIレスポンス。所有者は素のid文字列で返す。
type blogResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   string `json:"user"`
}

// ownerResponse は所有ユーザーの公開プロジェクション。passwordHashは含めない。
type ownerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// blogWithOwnerResponse は所有者を展開したブログのAPIレスポンス。
type blogWithOwnerResponse struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Author string        `json:"author"`
	URL    string        `json:"url"`
	Likes  int           `json:"likes"`
	User   ownerResponse `json:"user"`
}

// toBlogResponse はドメインのBlogをAPIレスポンス型に変換する。
func toBlogResponse(b *model.Blog) blogResponse {
	return blogResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
		User:   b.UserID,
	}
}

// toBlogWithOwnerResponse は所有者情報付きのBlogをAPIレスポンス型に変換する。
func toBlogWithOwnerResponse(bo repository.BlogWithOwner) blogWithOwnerResponse {
	return blogWithOwnerResponse{
		ID:     bo.ID,
		Title:  bo.Title,
		Author: bo.Author,
		URL:    bo.URL,
		Likes:  bo.Likes,
		User: ownerResponse{
			ID:       bo.UserID,
			Username: bo.OwnerUsername,
			Name:     bo.OwnerName,
		},
	}
}

// List は全ブログの一覧を取得する。認証不要。
// GET /api/blogs
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]blogWithOwnerResponse, len(blogs))
	for i, bo := range blogs {
		results[i] = toBlogWithOwnerResponse(bo)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// Get はブログ詳細を取得する。認証不要。
// GET /api/blogs/:id
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		middleware.WriteErrorResponse(w, model.NewMalformedIDError())
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if b == nil {
		middleware.WriteErrorResponse(w, model.NewNotFoundError())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toBlogResponse(b))
}

// Create はブログ作成を処理する。認証必須。
// POST /api/blogs
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, model.NewAuthError())
		return
	}

	var req createBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, model.NewValidationError("invalid request body"))
		return
	}

	b, err := h.service.Create(r.Context(), userID, blog.CreateInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toBlogResponse(b))
}

// Update はブログをリクエスト内容で上書き更新する。認証不要（likes更新を誰でも許可）。
// PUT /api/blogs/:id
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		middleware.WriteErrorResponse(w, model.NewMalformedIDError())
		return
	}

	var req updateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, model.NewValidationError("invalid request body"))
		return
	}

	b, err := h.service.Update(r.Context(), id, blog.UpdateInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toBlogResponse(b))
}

// Delete は所有権チェック付きでブログを削除する。認証必須。
// 対象が存在しない場合も204を返す（冪等）。
// DELETE /api/blogs/:id
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, model.NewAuthError())
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		middleware.WriteErrorResponse(w, model.NewMalformedIDError())
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
