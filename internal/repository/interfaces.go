// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/bloglist/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// List は全ユーザーを作成日時昇順で返す。
	List(ctx context.Context) ([]*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
}

// BlogRepository はブログエントリの永続化インターフェース。
// 所有関係の逆参照（user_blogs）の維持も担う。
type BlogRepository interface {
	// FindByID は指定IDのブログを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Blog, error)

	// List は全ブログを所有ユーザー情報付きで作成日時昇順で返す。
	List(ctx context.Context) ([]BlogWithOwner, error)

	// ListByOwner は指定ユーザーの所有ブログを逆参照リストの順序で返す。
	ListByOwner(ctx context.Context, userID string) ([]*model.Blog, error)

	// CreateWithOwnerRef はブログの作成と所有ユーザーの逆参照への追記を
	// 同一トランザクションで行う。
	CreateWithOwnerRef(ctx context.Context, blog *model.Blog) error

	// Update はブログのtitle、author、url、likesを上書き更新する。
	Update(ctx context.Context, blog *model.Blog) error

	// DeleteWithOwnerRef はブログの削除と所有ユーザーの逆参照からの除去を
	// 同一トランザクションで行う。対象が存在しない場合は何もしない。
	DeleteWithOwnerRef(ctx context.Context, id string) error
}

// BlogWithOwner はブログと所有ユーザーの公開情報を結合した構造体。
// 一覧APIのpopulate（所有者展開）に使用する。passwordHashは含めない。
type BlogWithOwner struct {
	model.Blog
	OwnerUsername string
	OwnerName     string
}
