package auth

import (
	"net/http"
	"strings"
)

type Middleware struct {
	token string
}

func NewMiddleware(token string) Middleware {
	return Middleware{token: token}
}

func (m Middleware) Enabled() bool {
	return m.token != ""
}

// Guard requires the bearer token on requests that change team or battle state.
// Reads stay open, and everything is open when no token is configured.
func (m Middleware) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() || isRead(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		authz := r.Header.Get("Authorization")
		if authz == "" {
			http.Error(w, "missing authorization", http.StatusUnauthorized)
			return
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(authz, prefix) || strings.TrimPrefix(authz, prefix) != m.token {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isRead(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}
