package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hitoshi/bloglist/internal/auth"
	"github.com/hitoshi/bloglist/internal/model"
	"github.com/hitoshi/bloglist/internal/repository"
)

type mockUserRepo struct {
	findByIDFunc       func(ctx context.Context, id string) (*model.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	listFunc           func(ctx context.Context) ([]*model.User, error)
	createFunc         func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.findByUsernameFunc(ctx, username)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	return m.listFunc(ctx)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.createFunc(ctx, user)
}

type mockBlogRepo struct {
	listByOwnerFunc func(ctx context.Context, userID string) ([]*model.Blog, error)
}

func (m *mockBlogRepo) FindByID(ctx context.Context, id string) (*model.Blog, error) {
	return nil, nil
}

func (m *mockBlogRepo) List(ctx context.Context) ([]repository.BlogWithOwner, error) {
	return nil, nil
}

func (m *mockBlogRepo) ListByOwner(ctx context.Context, userID string) ([]*model.Blog, error) {
	return m.listByOwnerFunc(ctx, userID)
}

func (m *mockBlogRepo) CreateWithOwnerRef(ctx context.Context, blog *model.Blog) error {
	return nil
}

func (m *mockBlogRepo) Update(ctx context.Context, blog *model.Blog) error {
	return nil
}

func (m *mockBlogRepo) DeleteWithOwnerRef(ctx context.Context, id string) error {
	return nil
}

type mockUserMetrics struct {
	registered int
}

func (m *mockUserMetrics) RecordUserRegistered() {
	m.registered++
}

func TestService_Register(t *testing.T) {
	var created *model.User
	userRepo := &mockUserRepo{
		findByUsernameFunc: func(ctx context.Context, username string) (*model.User, error) {
			return nil, nil
		},
		createFunc: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}
	metrics := &mockUserMetrics{}
	svc := NewService(userRepo, &mockBlogRepo{}, auth.NewBcryptHasher(4), metrics)

	user, err := svc.Register(context.Background(), "mluukkai", "Matti Luukkainen", "salainen")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if created == nil {
		t.Fatal("Create was not called on the repository")
	}
	if _, err := uuid.Parse(user.ID); err != nil {
		t.Errorf("ID is not a UUID: %q", user.ID)
	}
	if user.Username != "mluukkai" {
		t.Errorf("Username = %q", user.Username)
	}
	if user.Name != "Matti Luukkainen" {
		t.Errorf("Name = %q", user.Name)
	}
	// 平文パスワードは保存されない
	if user.PasswordHash == "salainen" || user.PasswordHash == "" {
		t.Errorf("PasswordHash = %q, want bcrypt hash", user.PasswordHash)
	}
	if !auth.NewBcryptHasher(4).Verify("salainen", user.PasswordHash) {
		t.Error("stored hash does not verify against the original password")
	}
	if metrics.registered != 1 {
		t.Errorf("user registered metric = %d, want 1", metrics.registered)
	}
}

// バリデーションの順序と各エラーメッセージを検証
func TestService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		existing *model.User
		wantMsg  string
	}{
		{
			name:     "missing username",
			username: "",
			password: "salainen",
			wantMsg:  "Username and password must exist",
		},
		{
			name:     "missing password",
			username: "mluukkai",
			password: "",
			wantMsg:  "Username and password must exist",
		},
		{
			name:     "short username",
			username: "ml",
			password: "salainen",
			wantMsg:  "Username and password must be at least 3 characters long",
		},
		{
			name:     "short password",
			username: "mluukkai",
			password: "sa",
			wantMsg:  "Username and password must be at least 3 characters long",
		},
		{
			name:     "duplicate username",
			username: "mluukkai",
			password: "salainen",
			existing: &model.User{ID: "user-1", Username: "mluukkai"},
			wantMsg:  "username must be unique",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepo{
				findByUsernameFunc: func(ctx context.Context, username string) (*model.User, error) {
					return tt.existing, nil
				},
				createFunc: func(ctx context.Context, user *model.User) error {
					t.Fatal("Create must not be called")
					return nil
				},
			}
			svc := NewService(userRepo, &mockBlogRepo{}, auth.NewBcryptHasher(4), nil)

			_, err := svc.Register(context.Background(), tt.username, "Name", tt.password)

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *model.APIError", err)
			}
			if apiErr.Status != 400 {
				t.Errorf("Status = %d, want 400", apiErr.Status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

// 一覧が各ユーザーの所有ブログを完全なオブジェクトで展開することを検証
func TestService_List(t *testing.T) {
	userRepo := &mockUserRepo{
		listFunc: func(ctx context.Context) ([]*model.User, error) {
			return []*model.User{
				{ID: "user-1", Username: "mluukkai", Name: "Matti Luukkainen"},
				{ID: "user-2", Username: "hellas", Name: "Arto Hellas"},
			}, nil
		},
	}
	blogRepo := &mockBlogRepo{
		listByOwnerFunc: func(ctx context.Context, userID string) ([]*model.Blog, error) {
			if userID == "user-1" {
				return []*model.Blog{
					{ID: "blog-1", Title: "Type wars", UserID: "user-1"},
				}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(userRepo, blogRepo, auth.NewBcryptHasher(4), nil)

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}
	if len(users[0].Blogs) != 1 || users[0].Blogs[0].Title != "Type wars" {
		t.Errorf("user-1 blogs = %+v, want Type wars", users[0].Blogs)
	}
	if len(users[1].Blogs) != 0 {
		t.Errorf("user-2 blogs = %+v, want empty", users[1].Blogs)
	}
}
