// Package httpapi serves the admin API over HTTP with JSON envelopes.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/dmitrijs2005/adminapi/internal/logging"
	"github.com/dmitrijs2005/adminapi/internal/server/avatars"
	"github.com/dmitrijs2005/adminapi/internal/server/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// BasePath prefixes every API route.
const BasePath = "/api"

const maxAvatarSize = 2 << 20

type Server struct {
	address        string
	users          *users.Service
	avatars        avatars.Store
	validator      *formValidator
	allowedOrigins []string
	logger         logging.Logger
}

type Option func(*Server)

// WithAllowedOrigins limits the browser origins allowed by CORS. The
// default allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

func NewServer(address string, l logging.Logger, us *users.Service, as avatars.Store, opts ...Option) *Server {
	s := &Server{
		address:        address,
		logger:         l.With("module", "http_server"),
		users:          us,
		avatars:        as,
		validator:      newFormValidator(),
		allowedOrigins: []string{"*"},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the routed API, mounted under BasePath.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", common.AuthorizationHeaderName, "Content-Type", common.RequestIDHeaderName},
		ExposedHeaders: []string{common.RequestIDHeaderName},
		MaxAge:         300,
	}))

	r.Route(BasePath, func(r chi.Router) {
		r.Post("/auth/login", s.Login)
		r.Post("/auth/refresh-token", s.RefreshToken)
		r.Get("/auth/captcha", s.Captcha)
		r.Post("/auth/logout", s.accessTokenInterceptor(s.Logout))
		r.Get("/auth/permissions", s.accessTokenInterceptor(s.Permissions))

		r.Get("/users", s.accessTokenInterceptor(s.ListUsers))
		r.Get("/users/{id}", s.accessTokenInterceptor(s.GetUser))
		r.Post("/users", s.adminOnly(s.CreateUser))
		r.Put("/users/{id}", s.adminOnly(s.UpdateUser))
		r.Delete("/users/batch", s.adminOnly(s.BatchDeleteUsers))
		r.Delete("/users/{id}", s.adminOnly(s.DeleteUser))
		r.Post("/users/avatar", s.accessTokenInterceptor(s.UploadAvatar))
		r.Get("/avatars/{name}", s.Avatar)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
