// Package blog はブログエントリ管理のドメインロジックを提供する。
package blog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/bloglist/internal/model"
	"github.com/hitoshi/bloglist/internal/repository"
	"github.com/hitoshi/bloglist/internal/security"
)

// BlogMetrics はブログ作成の計数インターフェース。
type BlogMetrics interface {
	RecordBlogCreated()
}

// CreateInput はブログ作成の入力。
// Likesが省略された場合は0で作成する。
type CreateInput struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

// UpdateInput はブログ更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// Service はブログ管理のサービス層。
// 所有権チェック付きの変更操作と、所有関係両側の整合性維持を担う。
type Service struct {
	blogRepo  repository.BlogRepository
	sanitizer security.ContentSanitizerService
	metrics   BlogMetrics
}

// NewService はServiceの新しいインスタンスを生成する。metricsはnil可。
func NewService(blogRepo repository.BlogRepository, sanitizer security.ContentSanitizerService, metrics BlogMetrics) *Service {
	return &Service{
		blogRepo:  blogRepo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// List は全ブログを所有ユーザーの公開情報付きで返す。認証不要。
func (s *Service) List(ctx context.Context) ([]repository.BlogWithOwner, error) {
	blogs, err := s.blogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, nil
}

// Get は指定IDのブログを返す。見つからない場合はnilを返す。認証不要。
func (s *Service) Get(ctx context.Context, id string) (*model.Blog, error) {
	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find blog: %w", err)
	}
	return blog, nil
}

// Create は認証済みユーザーのブログを作成する。
// titleとurlは必須。likesは省略時0。所有者の逆参照リストへの追記は
// リポジトリ層で同一トランザクションとして行われる。
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*model.Blog, error) {
	title := s.sanitizer.Sanitize(in.Title)
	author := s.sanitizer.Sanitize(in.Author)

	if title == "" || in.URL == "" {
		return nil, model.NewValidationError("title and url must exist")
	}

	likes := 0
	if in.Likes != nil {
		likes = *in.Likes
	}

	now := time.Now()
	blog := &model.Blog{
		ID:        uuid.New().String(),
		Title:     title,
		Author:    author,
		URL:       in.URL,
		Likes:     likes,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.blogRepo.CreateWithOwnerRef(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordBlogCreated()
	}

	slog.Info("blog created",
		slog.String("blog_id", blog.ID),
		slog.String("user_id", userID),
	)

	return blog, nil
}

// Update は指定IDのブログをリクエスト内容で上書き更新する。
// 所有権チェックは行わない（誰でもlikesを更新できる仕様）。
// 対象が存在しない場合はNotFoundエラーを返す。
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*model.Blog, error) {
	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find blog: %w", err)
	}
	if blog == nil {
		return nil, model.NewNotFoundError()
	}

	if in.Title != nil {
		blog.Title = s.sanitizer.Sanitize(*in.Title)
	}
	if in.Author != nil {
		blog.Author = s.sanitizer.Sanitize(*in.Author)
	}
	if in.URL != nil {
		blog.URL = *in.URL
	}
	if in.Likes != nil {
		blog.Likes = *in.Likes
	}
	blog.UpdatedAt = time.Now()

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}

	return blog, nil
}

// Delete は認証済みユーザーのブログを削除する。
// 所有者以外による削除はForbiddenエラー。
// 対象が存在しない場合はエラーなしで返る（削除の冪等性）。
// 所有者の逆参照リストからの除去はリポジトリ層で同一トランザクションとして行われる。
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find blog: %w", err)
	}
	if blog == nil {
		return nil
	}

	if blog.UserID != userID {
		return model.NewForbiddenError()
	}

	if err := s.blogRepo.DeleteWithOwnerRef(ctx, id); err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	slog.Info("blog deleted",
		slog.String("blog_id", id),
		slog.String("user_id", userID),
	)

	return nil
}
