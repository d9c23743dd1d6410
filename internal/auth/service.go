package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/bloglist/internal/model"
	"github.com/hitoshi/bloglist/internal/repository"
)

// LoginMetrics はログイン失敗の計数インターフェース。
type LoginMetrics interface {
	RecordLoginFailure()
}

// LoginResult はログイン成功時のレスポンス内容。
type LoginResult struct {
	Token    string
	Username string
	Name     string
}

// Service はパスワード認証とトークン発行のビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
	metrics  LoginMetrics
}

// NewService はServiceを生成する。metricsはnil可。
func NewService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenService, metrics LoginMetrics) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		metrics:  metrics,
	}
}

// Login はユーザー名とパスワードを検証し、ベアラートークンを発行する。
// ユーザー不在とパスワード不一致はどちらも同一の401エラーを返す。
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		if s.metrics != nil {
			s.metrics.RecordLoginFailure()
		}
		slog.Warn("login failed",
			slog.String("username", username),
		)
		return nil, model.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}
