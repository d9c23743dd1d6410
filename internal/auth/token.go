package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken はトークンが不正または検証不能であることを示す。
var ErrInvalidToken = errors.New("invalid token")

// Claims はトークンに埋め込むユーザー識別情報。
// 有効期限は設定しない（シークレットのローテーションのみで失効する）。
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
}

// TokenService は署名付きベアラートークンの発行・検証のインターフェース。
type TokenService interface {
	// Issue はユーザー識別情報を埋め込んだ署名付きトークンを発行する。
	Issue(userID, username string) (string, error)
	// VerifyToken はトークンを検証し、埋め込まれたユーザーIDを返す。
	// 署名不正・形式不正の場合はErrInvalidTokenを返す。
	VerifyToken(token string) (string, error)
}

// JWTTokenService はHMAC-SHA256署名JWTによるTokenServiceの実装。
// 署名鍵はプロセス全体で共有するシークレットで、起動時に1回読み込む。
type JWTTokenService struct {
	secret []byte
}

// NewJWTTokenService はJWTTokenServiceを生成する。
func NewJWTTokenService(secret string) *JWTTokenService {
	return &JWTTokenService{secret: []byte(secret)}
}

// Issue はユーザー識別情報を埋め込んだ署名付きトークンを発行する。
func (s *JWTTokenService) Issue(userID, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   userID,
		Username: username,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken はトークンを検証し、埋め込まれたユーザーIDを返す。
func (s *JWTTokenService) VerifyToken(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

// compile-time interface check
var _ TokenService = (*JWTTokenService)(nil)
