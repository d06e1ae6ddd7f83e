package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/dmitrijs2005/adminapi/internal/server/users"
)

type ctxKey string

const userKey ctxKey = "user"

func userFromContext(ctx context.Context) *users.User {
	u, _ := ctx.Value(userKey).(*users.User)
	return u
}

// accessTokenInterceptor rejects requests without a valid bearer token with
// a bare 401 and stores the caller in the request context.
func (s *Server) accessTokenInterceptor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		accessToken, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || accessToken == "" {
			s.logger.Debug(r.Context(), "missing token", "path", r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		user, err := s.users.Authenticate(r.Context(), accessToken)
		if err != nil {
			s.logger.Debug(r.Context(), "rejected token", "path", r.URL.Path, "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next(w, r.WithContext(ctx))
	}
}

// adminOnly answers 403 to callers without the admin role.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return s.accessTokenInterceptor(func(w http.ResponseWriter, r *http.Request) {
		if !userFromContext(r.Context()).IsAdmin() {
			writeStatus(w, http.StatusForbidden)
			return
		}
		next(w, r)
	})
}

// requestLogger logs every request with its correlation id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get(common.RequestIDHeaderName))
		next.ServeHTTP(w, r)
	})
}
