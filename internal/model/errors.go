// Package model はドメインモデルを定義する。
package model

import "net/http"

// APIError はAPIの統一エラーフォーマットを表す。
// HTTPステータスとクライアントに返すメッセージを保持する。
// ステータス404の場合、レスポンスボディは空にする。
type APIError struct {
	Status  int    // HTTPステータスコード
	Message string // クライアント向けメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return e.Message
}

// NewValidationError は入力バリデーションエラー（400）を生成する。
// メッセージはそのままクライアントに返す。
func NewValidationError(message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// NewNotFoundError はリソース未検出エラー（404、ボディなし）を生成する。
func NewNotFoundError() *APIError {
	return &APIError{
		Status: http.StatusNotFound,
	}
}

// NewAuthError はトークン欠落・不正エラー（401）を生成する。
func NewAuthError() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: "token is missing or invalid",
	}
}

// NewInvalidCredentialsError はログイン失敗エラー（401）を生成する。
// ユーザー不在とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: "invalid username or password",
	}
}

// NewForbiddenError は非所有者による変更操作のエラー（403）を生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Status:  http.StatusForbidden,
		Message: "forbidden: invalid user",
	}
}

// NewMalformedIDError はID形式不正エラー（400）を生成する。
// パスパラメータがUUIDとして解釈できない場合に使用する。
func NewMalformedIDError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: "malformatted id",
	}
}

// NewInvalidTokenError はトークン署名不正エラー（400）を生成する。
// 認証ミドルウェア外でトークン検証エラーが表面化した場合の中央マッピング用。
func NewInvalidTokenError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: "invalid token",
	}
}
