package api

import (
	"net/http"
	"time"

	"github.com/KostiukVM/BlogAPI/internal/api/handler"
	"github.com/KostiukVM/BlogAPI/internal/api/middleware"
	"github.com/KostiukVM/BlogAPI/internal/app/service"
	"github.com/KostiukVM/BlogAPI/internal/common"
	"github.com/KostiukVM/BlogAPI/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

type Services struct {
	Auth     *service.AuthService
	Posts    *service.PostService
	Comments *service.CommentService
}

func NewRouter(svc Services, issuer *security.TokenIssuer, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(requestTimeout))
	}

	// Searches "Authorization: Bearer T" and puts the verified token and claims
	// in context; middleware.Authenticator decides per route whether one is needed.
	r.Use(jwtauth.Verifier(issuer.JWTAuth()))
	requireAuth := middleware.Authenticator(svc.Auth)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(svc.Auth)
		authHandler.RegisterRoutes(api, requireAuth)

		postHandler := handler.NewPostHandler(svc.Posts, svc.Comments)
		api.Route("/posts", func(posts chi.Router) {
			postHandler.RegisterRoutes(posts, requireAuth)
		})

		commentHandler := handler.NewCommentHandler(svc.Comments)
		api.Route("/comments", func(comments chi.Router) {
			commentHandler.RegisterRoutes(comments, requireAuth)
		})
	})

	return r
}
