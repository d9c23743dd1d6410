// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/bloglist/internal/auth"
	"github.com/hitoshi/bloglist/internal/model"
	"github.com/hitoshi/bloglist/internal/repository"
)

// minCredentialLength はユーザー名・パスワードの最小文字数。
const minCredentialLength = 3

// UserMetrics はユーザー登録の計数インターフェース。
type UserMetrics interface {
	RecordUserRegistered()
}

// UserWithBlogs はユーザーと所有ブログの一覧を結合した構造体。
// 一覧APIのpopulate（ブログ展開）に使用する。
type UserWithBlogs struct {
	*model.User
	Blogs []*model.Blog
}

// Service はユーザー管理のサービス層。
// 登録時のバリデーションチェーンと一覧のブログ展開を提供する。
type Service struct {
	userRepo repository.UserRepository
	blogRepo repository.BlogRepository
	hasher   auth.PasswordHasher
	metrics  UserMetrics
}

// NewService はServiceの新しいインスタンスを生成する。metricsはnil可。
func NewService(userRepo repository.UserRepository, blogRepo repository.BlogRepository, hasher auth.PasswordHasher, metrics UserMetrics) *Service {
	return &Service{
		userRepo: userRepo,
		blogRepo: blogRepo,
		hasher:   hasher,
		metrics:  metrics,
	}
}

// Register は新規ユーザーを登録する。
// バリデーション順序: 存在チェック → 最小文字数（3文字） → ユーザー名一意性。
// 一意性はチェック後INSERTのため、同時登録の競合はスキーマのUNIQUE制約が
// 最終的に防ぐ（その場合は汎用エラーになる）。
func (s *Service) Register(ctx context.Context, username, name, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, model.NewValidationError("Username and password must exist")
	}
	if len(username) < minCredentialLength || len(password) < minCredentialLength {
		return nil, model.NewValidationError("Username and password must be at least 3 characters long")
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	if existing != nil {
		return nil, model.NewValidationError("username must be unique")
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordUserRegistered()
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", username),
	)

	return user, nil
}

// List は全ユーザーを所有ブログ（完全なオブジェクト）付きで返す。
func (s *Service) List(ctx context.Context) ([]UserWithBlogs, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	results := make([]UserWithBlogs, 0, len(users))
	for _, u := range users {
		blogs, err := s.blogRepo.ListByOwner(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list blogs for user %s: %w", u.ID, err)
		}
		results = append(results, UserWithBlogs{User: u, Blogs: blogs})
	}

	return results, nil
}
