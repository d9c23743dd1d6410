// Package auth はパスワード認証、トークン発行・検証を提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher はパスワードの一方向ハッシュ化と照合のインターフェース。
type PasswordHasher interface {
	// Hash は平文パスワードからランダムソルト付きハッシュを生成する。
	// 同一入力でも呼び出しごとに異なるハッシュを返す。
	Hash(password string) (string, error)
	// Verify はハッシュが平文パスワード由来かどうかを返す。
	Verify(password, hash string) bool
}

// BcryptHasher はbcryptを使用したPasswordHasherの実装。
// コストは設定で調整可能（ブルートフォース耐性のため意図的に高コスト）。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher はBcryptHasherを生成する。
// costが0以下の場合はbcrypt.DefaultCostを使用する。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash は平文パスワードからbcryptハッシュを生成する。
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify はハッシュが平文パスワード由来かどうかを返す。
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// compile-time interface check
var _ PasswordHasher = (*BcryptHasher)(nil)
