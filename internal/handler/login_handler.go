package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/bloglist/internal/auth"
	"github.com/hitoshi/bloglist/internal/middleware"
	"github.com/hitoshi/bloglist/internal/model"
)

// LoginServiceInterface はログインハンドラーが必要とするサービスインターフェース。
type LoginServiceInterface interface {
	// Login は認証情報を検証し、ベアラートークンを発行する。
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
}

// LoginHandler はログインのHTTPハンドラー。
type LoginHandler struct {
	service LoginServiceInterface
}

// NewLoginHandler はLoginHandlerを生成する。
func NewLoginHandler(service LoginServiceInterface) *LoginHandler {
	return &LoginHandler{
		service: service,
	}
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse はログイン成功時のレスポンス。
type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Login はユーザー名とパスワードによるログインを処理する。
// POST /api/login
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, model.NewValidationError("invalid request body"))
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{
		Token:    result.Token,
		Username: result.Username,
		Name:     result.Name,
	})
}
