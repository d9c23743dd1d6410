// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hitoshi/bloglist/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var userIDContextKey = contextKey("user_id")

// TokenVerifier はベアラートークンの検証に必要なインターフェース。
// auth.TokenServiceの部分集合として定義する。
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// NewAuthMiddleware はAuthorizationヘッダーからベアラートークンを読み取り、
// 検証するミドルウェアを返す。
// 認証済みユーザーIDをリクエストコンテキストに注入する。
// トークン欠落・不正のリクエストには401 {"error":"token is missing or invalid"}を返す。
// 匿名アクセスを許容するルートにはこのミドルウェアを適用しない。
func NewAuthMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Authorizationヘッダーからトークンを抽出
			token := ExtractBearerToken(r)
			if token == "" {
				WriteErrorResponse(w, model.NewAuthError())
				return
			}

			// 2. トークンの署名を検証
			userID, err := verifier.VerifyToken(token)
			if err != nil {
				WriteErrorResponse(w, model.NewAuthError())
				return
			}

			// 3. 認証済みユーザーIDをコンテキストに注入
			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractBearerToken はAuthorizationヘッダーからベアラートークンを取り出す。
// "bearer "プレフィックスは大文字小文字を区別しない。
// ヘッダーが無い、またはベアラー形式でない場合は空文字列を返す。
func ExtractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if len(authorization) < 7 || !strings.EqualFold(authorization[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(authorization[7:])
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
