package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/bloglist/internal/model"
)

// PostgresBlogRepo はPostgreSQLを使用したブログリポジトリ。
type PostgresBlogRepo struct {
	db *sql.DB
}

// NewPostgresBlogRepo はPostgresBlogRepoを生成する。
func NewPostgresBlogRepo(db *sql.DB) *PostgresBlogRepo {
	return &PostgresBlogRepo{db: db}
}

// FindByID は指定IDのブログを取得する。見つからない場合はnilを返す。
func (r *PostgresBlogRepo) FindByID(ctx context.Context, id string) (*model.Blog, error) {
	blog := &model.Blog{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, author, url, likes, user_id, created_at, updated_at
		 FROM blogs WHERE id = $1`,
		id,
	).Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find blog by ID: %w", err)
	}

	return blog, nil
}

// List は全ブログを所有ユーザー情報付きで作成日時昇順で返す。
func (r *PostgresBlogRepo) List(ctx context.Context) ([]BlogWithOwner, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at,
		        u.username, u.name
		 FROM blogs b
		 JOIN users u ON u.id = b.user_id
		 ORDER BY b.created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	blogs := []BlogWithOwner{}
	for rows.Next() {
		var bo BlogWithOwner
		if err := rows.Scan(
			&bo.ID, &bo.Title, &bo.Author, &bo.URL, &bo.Likes, &bo.UserID, &bo.CreatedAt, &bo.UpdatedAt,
			&bo.OwnerUsername, &bo.OwnerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, bo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blogs: %w", err)
	}

	return blogs, nil
}

// ListByOwner は指定ユーザーの所有ブログを逆参照リストの順序で返す。
func (r *PostgresBlogRepo) ListByOwner(ctx context.Context, userID string) ([]*model.Blog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at
		 FROM user_blogs ub
		 JOIN blogs b ON b.id = ub.blog_id
		 WHERE ub.user_id = $1
		 ORDER BY ub.position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs by owner: %w", err)
	}
	defer rows.Close()

	blogs := []*model.Blog{}
	for rows.Next() {
		blog := &model.Blog{}
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blogs: %w", err)
	}

	return blogs, nil
}

// CreateWithOwnerRef はブログの作成と所有ユーザーの逆参照への追記を
// 同一トランザクションで行う。positionはユーザー内の末尾に割り当てる。
func (r *PostgresBlogRepo) CreateWithOwnerRef(ctx context.Context, blog *model.Blog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// ブログを作成
	_, err = tx.ExecContext(ctx,
		`INSERT INTO blogs (id, title, author, url, likes, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		blog.ID, blog.Title, blog.Author, blog.URL, blog.Likes, blog.UserID, blog.CreatedAt, blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert blog: %w", err)
	}

	// 所有ユーザーの逆参照リスト末尾に追記
	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_blogs (user_id, blog_id, position)
		 SELECT $1, $2, COALESCE(MAX(position), 0) + 1 FROM user_blogs WHERE user_id = $1`,
		blog.UserID, blog.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert owner reference: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update はブログのtitle、author、url、likesを上書き更新する。
func (r *PostgresBlogRepo) Update(ctx context.Context, blog *model.Blog) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE blogs SET title = $2, author = $3, url = $4, likes = $5, updated_at = $6
		 WHERE id = $1`,
		blog.ID, blog.Title, blog.Author, blog.URL, blog.Likes, blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}

	return nil
}

// DeleteWithOwnerRef はブログの削除と所有ユーザーの逆参照からの除去を
// 同一トランザクションで行う。対象が存在しない場合はエラーなしで返る。
func (r *PostgresBlogRepo) DeleteWithOwnerRef(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 逆参照を先に除去（FK制約のため）
	_, err = tx.ExecContext(ctx,
		`DELETE FROM user_blogs WHERE blog_id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete owner reference: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// compile-time interface check
var _ BlogRepository = (*PostgresBlogRepo)(nil)
