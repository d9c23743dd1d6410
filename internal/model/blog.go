// Package model はドメインモデルを定義する。
package model

import "time"

// Blog はブログエントリを表す。
// UserIDは所有ユーザーへの参照で、作成時に認証済みユーザーから設定される。
// 所有関係の逆参照（ユーザー側のブログ一覧）はuser_blogsテーブルで管理し、
// 作成・削除時にサービス層が両側を同一トランザクションで維持する。
type Blog struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Likes     int
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
