// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はユーザー入力のブログtitle・authorをサニタイズし、
// 一覧表示時のXSSからユーザーを保護する。
// bluemondayライブラリの許可リストベースのポリシーで、タグを一切許可しない。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はテキストフィールドのサニタイズ機能のインターフェースを定義する。
// ブログの保存前（作成・更新）に使用される。
type ContentSanitizerService interface {
	// Sanitize は入力文字列からすべてのHTMLタグを除去したテキストを返す。
	// 前後の空白はトリムする。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// titleやauthorはプレーンテキストとして扱うため、タグを許可しない
// StrictPolicyを使用する。script等は許可リストに含めないことで自動的に除去される。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力文字列からすべてのHTMLタグを除去したテキストを返す。
func (s *contentSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
