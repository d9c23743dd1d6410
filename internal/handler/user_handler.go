package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/bloglist/internal/middleware"
	"github.com/hitoshi/bloglist/internal/model"
	"github.com/hitoshi/bloglist/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Register は新規ユーザーを登録する。
	Register(ctx context.Context, username, name, password string) (*model.User, error)
	// List は全ユーザーを所有ブログ付きで返す。
	List(ctx context.Context) ([]user.UserWithBlogs, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// registerRequest はユーザー登録リクエストのボディ。
type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// userResponse はユーザーのAPIレスポンス。passwordHashは決して含めない。
type userResponse struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Name     string         `json:"name"`
	Blogs    []blogResponse `json:"blogs"`
}

// toUserResponse はドメインのUserと所有ブログをAPIレスポンス型に変換する。
func toUserResponse(u *model.User, blogs []*model.Blog) userResponse {
	blogResponses := make([]blogResponse, len(blogs))
	for i, b := range blogs {
		blogResponses[i] = toBlogResponse(b)
	}
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Blogs:    blogResponses,
	}
}

// Register はユーザー登録を処理する。認証不要。
// POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, model.NewValidationError("invalid request body"))
		return
	}

	u, err := h.service.Register(r.Context(), req.Username, req.Name, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toUserResponse(u, nil))
}

// List は全ユーザーを所有ブログ（完全なオブジェクト）付きで取得する。認証不要。
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]userResponse, len(users))
	for i, uw := range users {
		results[i] = toUserResponse(uw.User, uw.Blogs)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
