package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/bloglist/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
type ErrorResponseBody struct {
	Error string `json:"error"`
}

// WriteErrorResponse は統一エラーフォーマット {"error": メッセージ} で
// HTTPエラーレスポンスを書き込む。
// メッセージが空の場合（404等）はボディなしでステータスのみ書き込む。
func WriteErrorResponse(w http.ResponseWriter, apiErr *model.APIError) {
	if apiErr.Message == "" {
		w.WriteHeader(apiErr.Status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Error: apiErr.Message,
	})
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, &model.APIError{
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
	})
}
