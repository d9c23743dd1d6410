// Package handler はHTTPハンドラーとルーティングを提供する。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/bloglist/internal/auth"
	"github.com/hitoshi/bloglist/internal/middleware"
	"github.com/hitoshi/bloglist/internal/model"
)

// handleServiceError はサービス層のエラーを中央マッピングでHTTPレスポンスに変換する。
//
//	*model.APIError        → そのステータスとメッセージ
//	auth.ErrInvalidToken   → 400 {"error":"invalid token"}
//	その他                  → 500（詳細はログのみに記録し、クライアントには漏らさない）
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, apiErr)
		return
	}

	if errors.Is(err, auth.ErrInvalidToken) {
		middleware.WriteErrorResponse(w, model.NewInvalidTokenError())
		return
	}

	slog.Error("unhandled service error",
		slog.String("error", err.Error()),
	)
	middleware.WriteInternalServerError(w)
}
