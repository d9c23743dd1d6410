package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/bloglist/internal/middleware"
	"github.com/hitoshi/bloglist/internal/model"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// メトリクス（nil可）
	MetricsMiddleware func(next http.Handler) http.Handler
	MetricsHandler    http.Handler

	// サービス
	BlogService  BlogServiceInterface
	UserService  UserServiceInterface
	LoginService LoginServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → CORS → Logging → Metrics → RateLimit(General)
//
// 認証ミドルウェアは変更系ブログルート（POST・DELETE）にのみ適用する。
// 一覧・取得・更新、ユーザー登録、ログインは匿名アクセスを許容する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.MetricsMiddleware != nil {
		r.Use(deps.MetricsMiddleware)
	}

	// 未知のルートは404 {"error":"unknown endpoint"}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteErrorResponse(w, &model.APIError{
			Status:  http.StatusNotFound,
			Message: "unknown endpoint",
		})
	})

	blogHandler := NewBlogHandler(deps.BlogService)
	userHandler := NewUserHandler(deps.UserService)
	loginHandler := NewLoginHandler(deps.LoginService)

	// 運用エンドポイント（レート制限の外）
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.HealthChecker != nil {
			if err := deps.HealthChecker.PingContext(req.Context()); err != nil {
				middleware.WriteInternalServerError(w)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// APIルート
	// ミドルウェアスタック: RateLimit(General)、変更系ブログルートのみ + Auth
	r.Route("/api", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		// ブログ管理
		r.Route("/blogs", func(r chi.Router) {
			// 匿名アクセス可
			r.Get("/", blogHandler.List)
			r.Get("/{id}", blogHandler.Get)
			r.Put("/{id}", blogHandler.Update)

			// 要認証（ベアラートークン）
			r.Group(func(r chi.Router) {
				r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))
				r.Post("/", blogHandler.Create)
				r.Delete("/{id}", blogHandler.Delete)
			})
		})

		// ユーザー管理
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)

			// POST /api/users - ユーザー登録（登録専用レート制限を追加）
			if deps.RateLimiter != nil {
				r.With(deps.RateLimiter.RegistrationMiddleware()).Post("/", userHandler.Register)
			} else {
				r.Post("/", userHandler.Register)
			}
		})

		// ログイン
		r.Post("/login", loginHandler.Login)
	})

	return r
}
